package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"vocabler/internal/domain"
	"vocabler/internal/repository"

	"go.uber.org/zap"
)

// generationWordLimit caps how many learned words feed one story.
const generationWordLimit = 10

// StoryGenerator is the external text-generation gateway
type StoryGenerator interface {
	GenerateStory(ctx context.Context, words map[string]string) (*domain.GeneratedText, error)
}

// GenerationService builds stories from the user's learned words,
// enforcing the daily AI quota.
type GenerationService struct {
	userRepo  repository.UserRepository
	wordRepo  repository.WordRepository
	generator StoryGenerator
	logger    *zap.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	userRepo repository.UserRepository,
	wordRepo repository.WordRepository,
	generator StoryGenerator,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		userRepo:  userRepo,
		wordRepo:  wordRepo,
		generator: generator,
		logger:    logger,
	}
}

// Generate produces a story from up to 10 of the user's least recently
// shown learned words. Returns domain.ErrQuotaExceeded when the daily
// limit is spent and domain.ErrNoWords when the user has no learned
// words in the category. If the provider is unreachable the user still
// gets a deterministic fallback text built from the selected words.
func (s *GenerationService) Generate(ctx context.Context, userID int64, categoryID *int) (*domain.GeneratedText, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	// Check the quota before touching the word pool: fetching generation
	// words marks them as shown, and a refused request must not rotate
	// the user's learned set.
	allowed, err := s.userRepo.CanMakeRequest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("user %d is over the daily limit: %w", userID, domain.ErrQuotaExceeded)
	}

	words, err := s.wordRepo.GetWordsForGeneration(ctx, userID, categoryID, generationWordLimit)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("user %d has no learned words: %w", userID, domain.ErrNoWords)
	}

	// Quota is consumed only once we know a story can be built.
	if err := s.userRepo.IncrementRequestCount(ctx, userID); err != nil {
		return nil, err
	}

	pairs := make(map[string]string, len(words))
	for _, w := range words {
		pairs[w.Word] = w.Translation
	}

	text, err := s.generator.GenerateStory(ctx, pairs)
	if errors.Is(err, domain.ErrProvider) {
		s.logger.Warn("Story provider unavailable, using fallback text",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fallbackText(pairs), nil
	}
	if err != nil {
		return nil, err
	}
	return text, nil
}

// fallbackText builds a deterministic stand-in story from the first
// word pair (alphabetically) when the provider is down.
func fallbackText(pairs map[string]string) *domain.GeneratedText {
	words := make([]string, 0, len(pairs))
	for w := range pairs {
		words = append(words, w)
	}
	sort.Strings(words)

	first := words[0]
	return &domain.GeneratedText{
		EnglishText: fmt.Sprintf("The word '%s' in English.", first),
		RussianText: fmt.Sprintf("Слово '%s' переводится как '%s'.", first, pairs[first]),
		Words:       pairs,
	}
}
