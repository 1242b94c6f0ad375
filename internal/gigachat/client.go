// Package gigachat calls the GigaChat API for story generation.
package gigachat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vocabler/internal/domain"
	"vocabler/internal/token"

	"github.com/google/uuid"
)

const (
	defaultOAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	defaultAPIURL   = "https://gigachat.devices.sberbank.ru/api/v1/chat/completions"

	// Provider tokens live 30 minutes; expiry is shortened by the
	// safety margin so a token is never used right at the edge.
	tokenLifetime = 30 * time.Minute
	safetyMargin  = 5 * time.Minute
)

// TokenSource exchanges the configured authorization key for an access
// token via Basic auth.
type TokenSource struct {
	authKey  string
	scope    string
	oauthURL string
	client   *http.Client
}

// NewTokenSource creates a GigaChat token source. timeout bounds the
// exchange request.
func NewTokenSource(authKey, scope string, timeout time.Duration) *TokenSource {
	return &TokenSource{
		authKey:  authKey,
		scope:    scope,
		oauthURL: defaultOAuthURL,
		client:   &http.Client{Timeout: timeout},
	}
}

type oauthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix milliseconds
}

// Fetch implements token.Source.
func (s *TokenSource) Fetch(ctx context.Context) (token.Token, error) {
	form := url.Values{}
	form.Set("scope", s.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return token.Token{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+s.authKey)
	req.Header.Set("RqUID", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return token.Token{}, fmt.Errorf("request token: %w: %w", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return token.Token{}, fmt.Errorf("token exchange status %d: %s: %w", resp.StatusCode, body, domain.ErrProvider)
	}

	var out oauthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return token.Token{}, fmt.Errorf("decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return token.Token{}, fmt.Errorf("empty access token: %w", domain.ErrProvider)
	}

	expiresAt := time.Now().Add(tokenLifetime)
	if out.ExpiresAt > 0 {
		expiresAt = time.UnixMilli(out.ExpiresAt)
	}

	return token.Token{
		Value:     out.AccessToken,
		ExpiresAt: expiresAt.Add(-safetyMargin),
	}, nil
}

// Client generates stories through the chat completion endpoint.
type Client struct {
	tokens *token.Cache
	apiURL string
	client *http.Client
}

// NewClient creates a GigaChat client using the given token cache.
func NewClient(tokens *token.Cache, timeout time.Duration) *Client {
	return &Client{
		tokens: tokens,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateStory asks the model for a short story using the given
// word-translation pairs and parses the delimited response.
func (c *Client) GenerateStory(ctx context.Context, words map[string]string) (*domain.GeneratedText, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	payload, err := json.Marshal(chatRequest{
		Model: "GigaChat",
		Messages: []chatMessage{
			{Role: "user", Content: BuildPrompt(words)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gigachat: %w: %w", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gigachat status %d: %s: %w", resp.StatusCode, body, domain.ErrProvider)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response: %w", domain.ErrMalformedResponse)
	}

	return ParseStory(out.Choices[0].Message.Content)
}
