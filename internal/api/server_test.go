package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"vocabler/internal/domain"
	"vocabler/internal/service"
	"vocabler/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	userRepo  *testutil.MockUserRepository
	wordRepo  *testutil.MockWordRepository
	translate *testutil.MockTranslator
	generate  *testutil.MockStoryGenerator
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		userRepo:  new(testutil.MockUserRepository),
		wordRepo:  new(testutil.MockWordRepository),
		translate: new(testutil.MockTranslator),
		generate:  new(testutil.MockStoryGenerator),
	}

	logger := testutil.NewTestLogger()
	server := NewServer(
		service.NewUserService(f.userRepo, f.wordRepo),
		service.NewWordService(f.wordRepo, f.userRepo, logger),
		service.NewTranslatorService(f.wordRepo, f.translate, logger),
		service.NewGenerationService(f.userRepo, f.wordRepo, f.generate, logger),
		logger,
	)
	f.router = server.Router()
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestUserExists(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("Exists", mock.Anything, int64(42)).Return(true, nil)

	rec := f.do(t, http.MethodGet, "/api/user/exists?userId=42", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Body.String())
}

func TestUserExists_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("Exists", mock.Anything, int64(42)).
		Return(false, fmt.Errorf("connection refused"))

	rec := f.do(t, http.MethodGet, "/api/user/exists?userId=42", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAddUser(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("Create", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)

	rec := f.do(t, http.MethodPost, "/api/user/add", map[string]int64{"userId": 42})

	assert.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, int64(42), user.UserID)
}

func TestAddUser_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("Create", mock.Anything, int64(42)).Return(nil, domain.ErrConflict)

	rec := f.do(t, http.MethodPost, "/api/user/add", map[string]int64{"userId": 42})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

	rec := f.do(t, http.MethodGet, "/api/user/999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRandomWord(t *testing.T) {
	f := newFixture(t)
	word := testutil.NewTestWord(1, domain.SystemUserID, "hello", "привет")

	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.wordRepo.On("GetRandomWord", mock.Anything, int64(42), (*int)(nil)).Return(word, nil)
	f.userRepo.On("AddViewedWord", mock.Anything, int64(42), 1).Return(nil)

	rec := f.do(t, http.MethodGet, "/api/word/random?userId=42", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "hello", got.Word)
}

func TestRandomWord_PoolExhausted(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.wordRepo.On("GetRandomWord", mock.Anything, int64(42), (*int)(nil)).Return(nil, domain.ErrNoWords)

	rec := f.do(t, http.MethodGet, "/api/word/random?userId=42", nil)

	// This route reports no remaining words as not-found
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRandomWordByCategory_NoWords(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(7)).Return(testutil.NewTestUser(7), nil)
	f.wordRepo.On("GetRandomCustomWord", mock.Anything, int64(7)).Return(nil, domain.ErrNoWords)

	rec := f.do(t, http.MethodGet, "/api/word/random-word?userId=7&category=My+Words", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRandomWordByCategory_UserMissing(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

	rec := f.do(t, http.MethodGet, "/api/word/random-word?userId=999&category=Travel", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddWordToVocabulary(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.wordRepo.On("GetWordByID", mock.Anything, 7).
		Return(testutil.NewTestWord(7, domain.SystemUserID, "hello", "привет"), nil)
	f.userRepo.On("AddLearnedWord", mock.Anything, int64(42), 7).Return(nil)

	rec := f.do(t, http.MethodPost, "/api/word/vocabulary/add?userId=42&wordId=7", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddWordToVocabulary_WordMissing(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.wordRepo.On("GetWordByID", mock.Anything, 999).Return(nil, domain.ErrNotFound)

	rec := f.do(t, http.MethodPost, "/api/word/vocabulary/add?userId=42&wordId=999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCustomWord(t *testing.T) {
	f := newFixture(t)
	categoryID := 1
	word := testutil.NewTestCustomWord(50, 42, "serendipity", "интуиция", categoryID)

	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.wordRepo.On("GetCategoryByName", mock.Anything, domain.MyWordsCategory).
		Return(&domain.Category{ID: categoryID, Name: domain.MyWordsCategory}, nil)
	f.wordRepo.On("AddCustomWord", mock.Anything, int64(42), "serendipity", "интуиция", &categoryID).
		Return(word, nil)

	rec := f.do(t, http.MethodPost, "/api/word", map[string]any{
		"userId":      42,
		"word":        "serendipity",
		"translation": "интуиция",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 50, got.ID)
	assert.True(t, got.IsCustom)
}

func TestAddCustomWord_UserMissing(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

	rec := f.do(t, http.MethodPost, "/api/word", map[string]any{
		"userId":      999,
		"word":        "serendipity",
		"translation": "интуиция",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCustomWord_NotOwned(t *testing.T) {
	f := newFixture(t)
	f.wordRepo.On("DeleteCustomWord", mock.Anything, int64(999), 50).Return(domain.ErrNotFound)

	rec := f.do(t, http.MethodDelete, "/api/word/50?userId=999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWordsByCategory_Empty(t *testing.T) {
	f := newFixture(t)
	f.wordRepo.On("GetWordsByCategory", mock.Anything, "Travel").Return([]domain.Word{}, nil)

	rec := f.do(t, http.MethodGet, "/api/word/category/Travel", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTranslate(t *testing.T) {
	f := newFixture(t)
	f.wordRepo.On("FindTranslation", mock.Anything, "apple").
		Return(testutil.NewTestWord(1, domain.SystemUserID, "apple", "яблоко"), nil)

	rec := f.do(t, http.MethodPost, "/api/translator/translate", map[string]string{
		"text":           "apple",
		"targetLanguage": "ru",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Translation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "яблоко", got.TranslatedText)
	assert.Equal(t, domain.SourceDictionary, got.Source)
}

func TestTranslate_EmptyText(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/translator/translate", map[string]string{
		"text": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslate_ProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.wordRepo.On("FindTranslation", mock.Anything, "serendipity").Return(nil, domain.ErrNotFound)
	f.translate.On("Translate", mock.Anything, "serendipity", "ru").
		Return("", fmt.Errorf("status 503: %w", domain.ErrProvider))

	rec := f.do(t, http.MethodPost, "/api/translator/translate", map[string]string{
		"text":           "serendipity",
		"targetLanguage": "ru",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateText(t *testing.T) {
	f := newFixture(t)
	learned := []domain.Word{*testutil.NewTestWord(1, domain.SystemUserID, "apple", "яблоко")}
	story := &domain.GeneratedText{
		EnglishText: "An apple a day.",
		RussianText: "Яблоко в день.",
		Words:       map[string]string{"apple": "яблоко"},
	}

	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.userRepo.On("CanMakeRequest", mock.Anything, int64(42)).Return(true, nil)
	f.wordRepo.On("GetWordsForGeneration", mock.Anything, int64(42), (*int)(nil), 10).Return(learned, nil)
	f.userRepo.On("IncrementRequestCount", mock.Anything, int64(42)).Return(nil)
	f.generate.On("GenerateStory", mock.Anything, map[string]string{"apple": "яблоко"}).Return(story, nil)

	rec := f.do(t, http.MethodGet, "/api/textgeneration/generate?userId=42", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.GeneratedText
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, story.EnglishText, got.EnglishText)
	assert.Equal(t, story.Words, got.Words)
}

func TestGenerateText_NoLearnedWords(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.userRepo.On("CanMakeRequest", mock.Anything, int64(42)).Return(true, nil)
	f.wordRepo.On("GetWordsForGeneration", mock.Anything, int64(42), (*int)(nil), 10).
		Return([]domain.Word{}, nil)

	rec := f.do(t, http.MethodGet, "/api/textgeneration/generate?userId=42", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateText_QuotaExceeded(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("GetByID", mock.Anything, int64(42)).Return(testutil.NewTestUser(42), nil)
	f.userRepo.On("CanMakeRequest", mock.Anything, int64(42)).Return(false, nil)

	rec := f.do(t, http.MethodGet, "/api/textgeneration/generate?userId=42", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	f.wordRepo.AssertNotCalled(t, "GetWordsForGeneration")
}

func TestInvalidUserID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/user/exists?userId=abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
