package service

import (
	"context"
	"fmt"
	"testing"

	"vocabler/internal/domain"
	"vocabler/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGenerationService_Generate(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)
	generator := new(testutil.MockStoryGenerator)
	svc := NewGenerationService(userRepo, wordRepo, generator, testutil.NewTestLogger())

	userID := int64(42)
	learned := []domain.Word{
		*testutil.NewTestWord(1, domain.SystemUserID, "apple", "яблоко"),
	}
	expected := &domain.GeneratedText{
		EnglishText: "I ate an apple today.",
		RussianText: "Сегодня я съел яблоко.",
		Words:       map[string]string{"apple": "яблоко"},
	}

	userRepo.On("GetByID", mock.Anything, userID).Return(testutil.NewTestUser(userID), nil)
	userRepo.On("CanMakeRequest", mock.Anything, userID).Return(true, nil)
	wordRepo.On("GetWordsForGeneration", mock.Anything, userID, (*int)(nil), 10).Return(learned, nil)
	userRepo.On("IncrementRequestCount", mock.Anything, userID).Return(nil)
	generator.On("GenerateStory", mock.Anything, map[string]string{"apple": "яблоко"}).Return(expected, nil)

	text, err := svc.Generate(context.Background(), userID, nil)

	assert.NoError(t, err)
	assert.Equal(t, expected, text)
	userRepo.AssertExpectations(t)
}

func TestGenerationService_Generate_NoLearnedWords(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)
	generator := new(testutil.MockStoryGenerator)
	svc := NewGenerationService(userRepo, wordRepo, generator, testutil.NewTestLogger())

	userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	userRepo.On("CanMakeRequest", mock.Anything, int64(42)).Return(true, nil)
	wordRepo.On("GetWordsForGeneration", mock.Anything, int64(42), (*int)(nil), 10).
		Return([]domain.Word{}, nil)

	text, err := svc.Generate(context.Background(), 42, nil)

	assert.Nil(t, text)
	assert.ErrorIs(t, err, domain.ErrNoWords)
	// Quota must not be consumed when nothing can be generated
	userRepo.AssertNotCalled(t, "IncrementRequestCount")
}

func TestGenerationService_Generate_QuotaExceeded(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)
	generator := new(testutil.MockStoryGenerator)
	svc := NewGenerationService(userRepo, wordRepo, generator, testutil.NewTestLogger())

	userID := int64(42)

	userRepo.On("GetByID", mock.Anything, userID).Return(testutil.NewTestUser(userID), nil)
	userRepo.On("CanMakeRequest", mock.Anything, userID).Return(false, nil)

	text, err := svc.Generate(context.Background(), userID, nil)

	assert.Nil(t, text)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	// A refused request must leave the word pool untouched: fetching
	// generation words bumps last_seen_at, and a retrying over-quota
	// user would otherwise rotate their whole learned set.
	wordRepo.AssertNotCalled(t, "GetWordsForGeneration")
	generator.AssertNotCalled(t, "GenerateStory")
}

func TestGenerationService_Generate_ConcurrentQuotaLoss(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)
	generator := new(testutil.MockStoryGenerator)
	svc := NewGenerationService(userRepo, wordRepo, generator, testutil.NewTestLogger())

	userID := int64(42)
	learned := []domain.Word{*testutil.NewTestWord(1, domain.SystemUserID, "apple", "яблоко")}

	// Pre-check passes but a concurrent request wins the atomic
	// increment; this request still fails with the quota error.
	userRepo.On("GetByID", mock.Anything, userID).Return(testutil.NewTestUser(userID), nil)
	userRepo.On("CanMakeRequest", mock.Anything, userID).Return(true, nil)
	wordRepo.On("GetWordsForGeneration", mock.Anything, userID, (*int)(nil), 10).Return(learned, nil)
	userRepo.On("IncrementRequestCount", mock.Anything, userID).Return(domain.ErrQuotaExceeded)

	text, err := svc.Generate(context.Background(), userID, nil)

	assert.Nil(t, text)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	generator.AssertNotCalled(t, "GenerateStory")
}

func TestGenerationService_Generate_ProviderDownUsesFallback(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)
	generator := new(testutil.MockStoryGenerator)
	svc := NewGenerationService(userRepo, wordRepo, generator, testutil.NewTestLogger())

	userID := int64(42)
	learned := []domain.Word{*testutil.NewTestWord(1, domain.SystemUserID, "apple", "яблоко")}

	userRepo.On("GetByID", mock.Anything, userID).Return(testutil.NewTestUser(userID), nil)
	userRepo.On("CanMakeRequest", mock.Anything, userID).Return(true, nil)
	wordRepo.On("GetWordsForGeneration", mock.Anything, userID, (*int)(nil), 10).Return(learned, nil)
	userRepo.On("IncrementRequestCount", mock.Anything, userID).Return(nil)
	generator.On("GenerateStory", mock.Anything, map[string]string{"apple": "яблоко"}).
		Return(nil, fmt.Errorf("status 503: %w", domain.ErrProvider))

	text, err := svc.Generate(context.Background(), userID, nil)

	assert.NoError(t, err)
	assert.Equal(t, "The word 'apple' in English.", text.EnglishText)
	assert.Equal(t, "Слово 'apple' переводится как 'яблоко'.", text.RussianText)
	assert.Equal(t, map[string]string{"apple": "яблоко"}, text.Words)
}

func TestGenerationService_Generate_MalformedResponseIsAFailure(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	wordRepo := new(testutil.MockWordRepository)
	generator := new(testutil.MockStoryGenerator)
	svc := NewGenerationService(userRepo, wordRepo, generator, testutil.NewTestLogger())

	userID := int64(42)
	learned := []domain.Word{*testutil.NewTestWord(1, domain.SystemUserID, "apple", "яблоко")}

	userRepo.On("GetByID", mock.Anything, userID).Return(testutil.NewTestUser(userID), nil)
	userRepo.On("CanMakeRequest", mock.Anything, userID).Return(true, nil)
	wordRepo.On("GetWordsForGeneration", mock.Anything, userID, (*int)(nil), 10).Return(learned, nil)
	userRepo.On("IncrementRequestCount", mock.Anything, userID).Return(nil)
	generator.On("GenerateStory", mock.Anything, map[string]string{"apple": "яблоко"}).
		Return(nil, fmt.Errorf("english section: %w", domain.ErrMalformedResponse))

	text, err := svc.Generate(context.Background(), userID, nil)

	assert.Nil(t, text)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
