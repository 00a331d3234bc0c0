// Package opentdb fetches multiple-choice trivia questions from the Open
// Trivia Database. One fetch per game start, no retries; a failed fetch means
// no trivia session is created.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
)

// Client errors.
var (
	ErrNoQuestions = errors.New("trivia source returned no questions")
)

const (
	defaultBaseURL = "https://opentdb.com"
	defaultTimeout = 10 * time.Second
)

// Question is one multiple-choice trivia question. All text fields are
// HTML-unescaped.
type Question struct {
	Category         string
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Client talks to the opentdb API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new trivia client.
func NewClient(cfg Config) *Client {
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
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type apiResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// FetchQuestions fetches count multiple-choice questions.
func (c *Client) FetchQuestions(ctx context.Context, count int) ([]Question, error) {
	url := fmt.Sprintf("%s/api.php?amount=%d&type=multiple", c.baseURL, count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trivia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia request returned %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode trivia response: %w", err)
	}
	if out.ResponseCode != 0 || len(out.Results) == 0 {
		return nil, fmt.Errorf("%w (response_code=%d)", ErrNoQuestions, out.ResponseCode)
	}

	questions := make([]Question, 0, len(out.Results))
	for _, r := range out.Results {
		q := Question{
			Category:         html.UnescapeString(r.Category),
			Question:         html.UnescapeString(r.Question),
			CorrectAnswer:    html.UnescapeString(r.CorrectAnswer),
			IncorrectAnswers: make([]string, 0, len(r.IncorrectAnswers)),
		}
		for _, a := range r.IncorrectAnswers {
			q.IncorrectAnswers = append(q.IncorrectAnswers, html.UnescapeString(a))
		}
		questions = append(questions, q)
	}
	return questions, nil
}
