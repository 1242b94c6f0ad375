package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vocabler/internal/domain"
	"vocabler/internal/repository"

	"go.uber.org/zap"
)

// Translator is the external translation gateway
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslatorService translates text, consulting the local dictionary
// before the external provider. The local-first policy lives here, not
// in the gateway.
type TranslatorService struct {
	wordRepo   repository.WordRepository
	translator Translator
	logger     *zap.Logger
}

// NewTranslatorService creates a new translator service
func NewTranslatorService(wordRepo repository.WordRepository, translator Translator, logger *zap.Logger) *TranslatorService {
	return &TranslatorService{
		wordRepo:   wordRepo,
		translator: translator,
		logger:     logger,
	}
}

// Translate returns the text in the target language. Russian targets
// are looked up in the shared dictionary first; only a miss falls
// through to the external provider.
func (s *TranslatorService) Translate(ctx context.Context, text, targetLang string) (*domain.Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text is required: %w", domain.ErrValidation)
	}
	if targetLang == "" {
		targetLang = "ru"
	}

	if targetLang == "ru" {
		word, err := s.wordRepo.FindTranslation(ctx, text)
		if err == nil {
			return &domain.Translation{
				OriginalText:   text,
				TranslatedText: word.Translation,
				TargetLanguage: targetLang,
				Source:         domain.SourceDictionary,
			}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	translated, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil {
		s.logger.Error("External translation failed",
			zap.String("target_lang", targetLang),
			zap.Error(err),
		)
		return nil, err
	}

	return &domain.Translation{
		OriginalText:   text,
		TranslatedText: translated,
		TargetLanguage: targetLang,
		Source:         domain.SourceYandex,
	}, nil
}
