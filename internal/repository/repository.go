package repository

import (
	"context"

	"vocabler/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, userID int64) (*domain.User, error)
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	AddLearnedWord(ctx context.Context, userID int64, wordID int) error
	AddViewedWord(ctx context.Context, userID int64, wordID int) error
	CanMakeRequest(ctx context.Context, userID int64) (bool, error)
	IncrementRequestCount(ctx context.Context, userID int64) error
}

// WordRepository defines word data operations
type WordRepository interface {
	GetRandomWord(ctx context.Context, userID int64, categoryID *int) (*domain.Word, error)
	GetRandomCustomWord(ctx context.Context, userID int64) (*domain.Word, error)
	GetWordsForGeneration(ctx context.Context, userID int64, categoryID *int, limit int) ([]domain.Word, error)
	GetWordByID(ctx context.Context, wordID int) (*domain.Word, error)
	AddCustomWord(ctx context.Context, userID int64, word, translation string, categoryID *int) (*domain.Word, error)
	DeleteCustomWord(ctx context.Context, userID int64, wordID int) error
	GetAllCustomWords(ctx context.Context, userID int64) ([]domain.Word, error)
	GetWordsByCategory(ctx context.Context, category string) ([]domain.Word, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	FindTranslation(ctx context.Context, word string) (*domain.Word, error)
}
