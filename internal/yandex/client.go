// Package yandex calls the Yandex Cloud translate API.
package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vocabler/internal/domain"
	"vocabler/internal/token"
)

const (
	defaultIAMURL       = "https://iam.api.cloud.yandex.net/iam/v1/tokens"
	defaultTranslateURL = "https://translate.api.cloud.yandex.net/translate/v2/translate"

	// IAM tokens live up to 12 hours; the safety margin keeps a wide
	// buffer so the background refresher always wins the race.
	tokenLifetime = 12 * time.Hour
	safetyMargin  = 30 * time.Minute
)

// TokenSource exchanges the configured OAuth token for an IAM token.
type TokenSource struct {
	oauthToken string
	iamURL     string
	client     *http.Client
}

// NewTokenSource creates a Yandex IAM token source. timeout bounds the
// exchange request.
func NewTokenSource(oauthToken string, timeout time.Duration) *TokenSource {
	return &TokenSource{
		oauthToken: oauthToken,
		iamURL:     defaultIAMURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type iamRequest struct {
	YandexPassportOauthToken string `json:"yandexPassportOauthToken"`
}

type iamResponse struct {
	IAMToken  string    `json:"iamToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Fetch implements token.Source.
func (s *TokenSource) Fetch(ctx context.Context) (token.Token, error) {
	payload, err := json.Marshal(iamRequest{YandexPassportOauthToken: s.oauthToken})
	if err != nil {
		return token.Token{}, fmt.Errorf("marshal iam request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.iamURL, bytes.NewReader(payload))
	if err != nil {
		return token.Token{}, fmt.Errorf("build iam request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return token.Token{}, fmt.Errorf("request iam token: %w: %w", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return token.Token{}, fmt.Errorf("iam token status %d: %s: %w", resp.StatusCode, body, domain.ErrProvider)
	}

	var out iamResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return token.Token{}, fmt.Errorf("decode iam response: %w", err)
	}
	if out.IAMToken == "" {
		return token.Token{}, fmt.Errorf("empty iam token: %w", domain.ErrProvider)
	}

	expiresAt := out.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(tokenLifetime)
	}

	return token.Token{
		Value:     out.IAMToken,
		ExpiresAt: expiresAt.Add(-safetyMargin),
	}, nil
}

// Client translates text through the Yandex translate endpoint.
type Client struct {
	tokens       *token.Cache
	folderID     string
	translateURL string
	client       *http.Client
}

// NewClient creates a Yandex translate client using the given token cache.
func NewClient(tokens *token.Cache, folderID string, timeout time.Duration) *Client {
	return &Client{
		tokens:       tokens,
		folderID:     folderID,
		translateURL: defaultTranslateURL,
		client:       &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	FolderID           string   `json:"folderId"`
	Texts              []string `json:"texts"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate returns the text translated into the target language code.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}

	payload, err := json.Marshal(translateRequest{
		FolderID:           c.folderID,
		Texts:              []string{text},
		TargetLanguageCode: targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.translateURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call translate: %w: %w", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate status %d: %s: %w", resp.StatusCode, body, domain.ErrProvider)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Translations) == 0 {
		return "", fmt.Errorf("no translations in response: %w", domain.ErrMalformedResponse)
	}

	return out.Translations[0].Text, nil
}
