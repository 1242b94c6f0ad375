package service

import (
	"context"

	"vocabler/internal/domain"
	"vocabler/internal/repository"
)

// UserService handles user registration and vocabulary progress
type UserService struct {
	userRepo repository.UserRepository
	wordRepo repository.WordRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, wordRepo repository.WordRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		wordRepo: wordRepo,
	}
}

// Exists checks if a user is registered
func (s *UserService) Exists(ctx context.Context, userID int64) (bool, error) {
	return s.userRepo.Exists(ctx, userID)
}

// Register creates a new user. Returns domain.ErrConflict when the user
// already exists.
func (s *UserService) Register(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.Create(ctx, userID)
}

// GetByID returns a user by id
func (s *UserService) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// AddWordToVocabulary marks a word as learned for the user. Adding the
// same word twice is a no-op. Returns domain.ErrNotFound when either
// the user or the word does not exist.
func (s *UserService) AddWordToVocabulary(ctx context.Context, userID int64, wordID int) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.wordRepo.GetWordByID(ctx, wordID); err != nil {
		return err
	}
	return s.userRepo.AddLearnedWord(ctx, userID, wordID)
}
