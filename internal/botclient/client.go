// Package botclient is the typed HTTP client the bot uses against the
// backend API.
package botclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vocabler/internal/domain"
)

// Client calls the backend API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a backend client
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// UserExists checks whether the user is registered
func (c *Client) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	err := c.get(ctx, "/api/user/exists", q, &exists)
	return exists, err
}

// AddUser registers a new user
func (c *Client) AddUser(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	body := map[string]int64{"userId": userID}
	if err := c.post(ctx, "/api/user/add", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRandomWord fetches a random unlearned word
func (c *Client) GetRandomWord(ctx context.Context, userID int64, categoryID *int) (*domain.Word, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	if categoryID != nil {
		q.Set("categoryId", strconv.Itoa(*categoryID))
	}
	var word domain.Word
	if err := c.get(ctx, "/api/word/random", q, &word); err != nil {
		return nil, err
	}
	return &word, nil
}

// GetRandomWordByCategory fetches a random word from a named category
func (c *Client) GetRandomWordByCategory(ctx context.Context, userID int64, category string) (*domain.Word, error) {
	q := url.Values{
		"userId":   {strconv.FormatInt(userID, 10)},
		"category": {category},
	}
	var word domain.Word
	if err := c.get(ctx, "/api/word/random-word", q, &word); err != nil {
		return nil, err
	}
	return &word, nil
}

// AddWordToVocabulary marks a word as learned
func (c *Client) AddWordToVocabulary(ctx context.Context, userID int64, wordID int) error {
	q := url.Values{
		"userId": {strconv.FormatInt(userID, 10)},
		"wordId": {strconv.Itoa(wordID)},
	}
	return c.post(ctx, "/api/word/vocabulary/add", q, nil, nil)
}

// AddCustomWord saves a user-added word
func (c *Client) AddCustomWord(ctx context.Context, userID int64, word, translation string) (*domain.Word, error) {
	body := map[string]any{
		"userId":      userID,
		"word":        word,
		"translation": translation,
	}
	var saved domain.Word
	if err := c.post(ctx, "/api/word", nil, body, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteCustomWord removes a user-added word
func (c *Client) DeleteCustomWord(ctx context.Context, userID int64, wordID int) error {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/word/"+strconv.Itoa(wordID)+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// GetCustomWords lists the user's custom words
func (c *Client) GetCustomWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var words []domain.Word
	if err := c.get(ctx, "/api/word/custom", q, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// Translate translates text via the backend
func (c *Client) Translate(ctx context.Context, text, targetLang string) (*domain.Translation, error) {
	body := map[string]string{
		"text":           text,
		"targetLanguage": targetLang,
	}
	var translation domain.Translation
	if err := c.post(ctx, "/api/translator/translate", nil, body, &translation); err != nil {
		return nil, err
	}
	return &translation, nil
}

// GenerateText asks the backend for a story from learned words
func (c *Client) GenerateText(ctx context.Context, userID int64) (*domain.GeneratedText, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var text domain.GeneratedText
	if err := c.get(ctx, "/api/textgeneration/generate", q, &text); err != nil {
		return nil, err
	}
	return &text, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do executes the request and maps non-success statuses back onto the
// domain error taxonomy.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", apiError(resp.Body), domain.ErrValidation)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", apiError(resp.Body), domain.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", apiError(resp.Body), domain.ErrConflict)
	default:
		return fmt.Errorf("backend status %d: %s", resp.StatusCode, apiError(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

func apiError(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return "backend error"
	}
	return payload.Error
}
