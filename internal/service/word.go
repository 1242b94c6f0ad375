package service

import (
	"context"
	"fmt"
	"strings"

	"vocabler/internal/domain"
	"vocabler/internal/repository"

	"go.uber.org/zap"
)

// WordService handles word selection and custom-word management
type WordService struct {
	wordRepo repository.WordRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, userRepo repository.UserRepository, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetRandomWord returns a random unlearned word from the shared pool
// and records it as viewed. Returns domain.ErrNoWords when the user has
// learned everything in the candidate set.
func (s *WordService) GetRandomWord(ctx context.Context, userID int64, categoryID *int) (*domain.Word, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	word, err := s.wordRepo.GetRandomWord(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	// Viewed tracking is best effort: losing it must not hide the word
	// from the user.
	if err := s.userRepo.AddViewedWord(ctx, userID, word.ID); err != nil {
		s.logger.Warn("Failed to record viewed word",
			zap.Int64("user_id", userID),
			zap.Int("word_id", word.ID),
			zap.Error(err),
		)
	}

	return word, nil
}

// GetRandomWordByCategory resolves the category by name and returns a
// random unlearned word from it. The reserved "My Words" name selects
// from the user's own custom words instead of the shared pool.
func (s *WordService) GetRandomWordByCategory(ctx context.Context, userID int64, category string) (*domain.Word, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if category == domain.MyWordsCategory {
		return s.wordRepo.GetRandomCustomWord(ctx, userID)
	}

	cat, err := s.wordRepo.GetCategoryByName(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.wordRepo.GetRandomWord(ctx, userID, &cat.ID)
}

// GetWordByID returns a word by id
func (s *WordService) GetWordByID(ctx context.Context, wordID int) (*domain.Word, error) {
	return s.wordRepo.GetWordByID(ctx, wordID)
}

// AddCustomWord saves a user-added word-translation pair. When no
// category is given the word lands in "My Words".
func (s *WordService) AddCustomWord(ctx context.Context, userID int64, word, translation string, categoryID *int) (*domain.Word, error) {
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if word == "" || translation == "" {
		return nil, fmt.Errorf("word and translation are required: %w", domain.ErrValidation)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if categoryID == nil {
		cat, err := s.wordRepo.GetCategoryByName(ctx, domain.MyWordsCategory)
		if err != nil {
			return nil, err
		}
		categoryID = &cat.ID
	}

	return s.wordRepo.AddCustomWord(ctx, userID, word, translation, categoryID)
}

// DeleteCustomWord removes a custom word owned by the user. Returns
// domain.ErrNotFound when the word is absent or not theirs.
func (s *WordService) DeleteCustomWord(ctx context.Context, userID int64, wordID int) error {
	return s.wordRepo.DeleteCustomWord(ctx, userID, wordID)
}

// GetAllCustomWords returns the user's custom word list
func (s *WordService) GetAllCustomWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.wordRepo.GetAllCustomWords(ctx, userID)
}

// GetWordsByCategory returns shared-pool words in the named category.
// Returns domain.ErrNotFound when the category has no words.
func (s *WordService) GetWordsByCategory(ctx context.Context, category string) ([]domain.Word, error) {
	words, err := s.wordRepo.GetWordsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("category %q has no words: %w", category, domain.ErrNotFound)
	}
	return words, nil
}
