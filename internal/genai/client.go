// Package genai is a thin client for a hosted text-generation API. It is
// used to pick word-game targets, validate guessed words, and write the
// celebration announcements. Every call is a single attempt; callers fall
// back to local behavior when a call fails.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client errors.
var (
	ErrNotConfigured = errors.New("text generation API is not configured")
	ErrEmptyResponse = errors.New("text generation API returned no text")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 15 * time.Second
)

// Config holds the client settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the generateContent endpoint of the API. A client with an
// empty API key is valid but every call returns ErrNotConfigured, which makes
// all callers take their fallback paths.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewClient creates a new text-generation client.
func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the trimmed response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generation request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// SuggestAnswer asks for one common 5-letter word drawn from the candidate
// pool. The returned word is uppercased but not validated; the caller checks
// it against the local dictionary.
func (c *Client) SuggestAnswer(ctx context.Context, pool []string) (string, error) {
	prompt := "Choose a single, common, 5-letter English word suitable for a word game. " +
		"Respond with only the single word and nothing else. Word list:\n" + strings.Join(pool, "\n")
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(text), nil
}

// SuggestWordOfLength asks for one common English word of exactly n letters.
func (c *Client) SuggestWordOfLength(ctx context.Context, n int) (string, error) {
	prompt := fmt.Sprintf("Choose a single, common English word that is exactly %d letters long, "+
		"suitable for a game of hangman. No proper nouns. Respond with only the single word and nothing else.", n)
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(text), nil
}

// IsRealWord asks whether the word is a real, common English word. A negative
// answer is not an error.
func (c *Client) IsRealWord(ctx context.Context, word string) (bool, error) {
	prompt := fmt.Sprintf("Is '%s' a real, common English word? Do not include proper nouns. "+
		"Answer with only the single word 'yes' or 'no'.", word)
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(text), "yes"), nil
}

// BirthdayMessage writes a celebratory birthday announcement for the named
// teammate.
func (c *Client) BirthdayMessage(ctx context.Context, name string) (string, error) {
	prompt := fmt.Sprintf("Generate a fun, enthusiastic birthday message for a colleague named %s. "+
		"The message will be posted in a company chat channel. Include plenty of emojis and end by "+
		"encouraging everyone to wish them a happy birthday. Do not use hashtags. "+
		"Mention the name at least once.", name)
	return c.Generate(ctx, prompt)
}

// AnniversaryMessage writes a work-anniversary announcement for the named
// teammate celebrating the given number of years.
func (c *Client) AnniversaryMessage(ctx context.Context, name string, years int) (string, error) {
	prompt := fmt.Sprintf("Generate a cheerful message for a colleague named %s celebrating their "+
		"%d-year work anniversary. Prominently mention they are celebrating %d years. Include emojis "+
		"and end by encouraging everyone to congratulate them. Do not use hashtags.", name, years, years)
	return c.Generate(ctx, prompt)
}
