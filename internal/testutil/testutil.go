package testutil

import (
	"time"

	"vocabler/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64) *domain.User {
	return &domain.User{
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

// NewTestWord creates a test word
func NewTestWord(id int, userID int64, word, translation string) *domain.Word {
	return &domain.Word{
		ID:          id,
		UserID:      userID,
		Word:        word,
		Translation: translation,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// NewTestCustomWord creates a test word owned by the user
func NewTestCustomWord(id int, userID int64, word, translation string, categoryID int) *domain.Word {
	w := NewTestWord(id, userID, word, translation)
	w.IsCustom = true
	w.CategoryID = &categoryID
	return w
}
