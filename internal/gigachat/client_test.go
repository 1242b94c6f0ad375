package gigachat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vocabler/internal/domain"
	"vocabler/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSource_Fetch(t *testing.T) {
	expiresAt := time.Now().Add(tokenLifetime).UnixMilli()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Basic secret-key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("RqUID"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "GIGACHAT_API_PERS", r.PostFormValue("scope"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_at":   expiresAt,
		})
	}))
	defer srv.Close()

	source := NewTokenSource("secret-key", "GIGACHAT_API_PERS", 10*time.Second)
	source.oauthURL = srv.URL

	tok, err := source.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok.Value)
	// Expiry carries the safety margin
	assert.WithinDuration(t, time.UnixMilli(expiresAt).Add(-safetyMargin), tok.ExpiresAt, time.Second)
}

func TestTokenSource_Fetch_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	source := NewTokenSource("bad-key", "GIGACHAT_API_PERS", 10*time.Second)
	source.oauthURL = srv.URL

	_, err := source.Fetch(context.Background())

	assert.ErrorIs(t, err, domain.ErrProvider)
}

func staticTokenCache(t *testing.T) *token.Cache {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_at":   time.Now().Add(time.Hour).UnixMilli(),
		})
	}))
	t.Cleanup(srv.Close)

	source := NewTokenSource("key", "GIGACHAT_API_PERS", 10*time.Second)
	source.oauthURL = srv.URL
	return token.NewCache(source)
}

func TestClient_GenerateStory(t *testing.T) {
	story := "===ENGLISH_TEXT_START===\nAn apple a day.\n===ENGLISH_TEXT_END===\n" +
		"===RUSSIAN_TEXT_START===\nЯблоко в день.\n===RUSSIAN_TEXT_END===\n" +
		"===USED_WORDS_START===\napple: яблоко\n===USED_WORDS_END==="

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "GigaChat", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "- apple: яблоко")

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: story}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(staticTokenCache(t), 30*time.Second)
	client.apiURL = srv.URL

	text, err := client.GenerateStory(context.Background(), map[string]string{"apple": "яблоко"})

	require.NoError(t, err)
	assert.Equal(t, "An apple a day.", text.EnglishText)
	assert.Equal(t, "Яблоко в день.", text.RussianText)
	assert.Equal(t, map[string]string{"apple": "яблоко"}, text.Words)
}

func TestClient_GenerateStory_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(staticTokenCache(t), 30*time.Second)
	client.apiURL = srv.URL

	text, err := client.GenerateStory(context.Background(), map[string]string{"apple": "яблоко"})

	assert.Nil(t, text)
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestClient_GenerateStory_MalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "no markers here"}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(staticTokenCache(t), 30*time.Second)
	client.apiURL = srv.URL

	text, err := client.GenerateStory(context.Background(), map[string]string{"apple": "яблоко"})

	assert.Nil(t, text)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
