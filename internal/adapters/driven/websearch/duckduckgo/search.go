// Package duckduckgo provides a web search adapter using the DuckDuckGo
// Instant Answer API. No API key is required, which makes it the default
// fallback provider.
package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure SearchService implements the interface.
var _ driven.WebSearchService = (*SearchService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.duckduckgo.com"
	DefaultTimeout = 10 * time.Second

	// The Instant Answer API is unauthenticated, so stay well under
	// anything that looks like abuse.
	defaultRequestsPerSecond = 1.0
	defaultBurstSize         = 3
)

// Config holds configuration for the DuckDuckGo search service.
type Config struct {
	// BaseURL is the API base URL (default: https://api.duckduckgo.com).
	BaseURL string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained rate limit (default: 1).
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default: 3).
	BurstSize int
}

// SearchService provides web search using the DuckDuckGo Instant Answer API.
type SearchService struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// instantAnswerResponse is the subset of the Instant Answer API response
// the service consumes.
type instantAnswerResponse struct {
	Heading      string `json:"Heading"`
	AbstractText string `json:"AbstractText"`
	AbstractURL  string `json:"AbstractURL"`
	Answer       string `json:"Answer"`
	AnswerType   string `json:"AnswerType"`

	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

// relatedTopic is one entry of the RelatedTopics list. Category entries
// nest further topics.
type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

// NewSearchService creates a new DuckDuckGo search service.
func NewSearchService(cfg Config) *SearchService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = defaultBurstSize
	}

	return &SearchService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Search runs a web query and returns ranked results.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.WebResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 3
	}

	// The token bucket keeps unauthenticated traffic polite.
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		s.baseURL+"/?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWebSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: duckduckgo returned status %d",
			domain.ErrWebSearchUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var answer instantAnswerResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return collectResults(&answer, limit), nil
}

// collectResults flattens an Instant Answer response into ranked results.
// The abstract (when present) ranks first, then direct answers, then
// related topics in API order.
func collectResults(answer *instantAnswerResponse, limit int) []domain.WebResult {
	results := make([]domain.WebResult, 0, limit)

	if answer.AbstractText != "" {
		results = append(results, domain.WebResult{
			Title:   answer.Heading,
			URL:     answer.AbstractURL,
			Snippet: answer.AbstractText,
		})
	}

	if answer.Answer != "" && len(results) < limit {
		results = append(results, domain.WebResult{
			Title:   answer.Heading,
			Snippet: answer.Answer,
		})
	}

	appendTopics(&results, answer.RelatedTopics, limit)
	return results
}

// appendTopics walks related topics depth-first, honouring the limit.
func appendTopics(results *[]domain.WebResult, topics []relatedTopic, limit int) {
	for _, topic := range topics {
		if len(*results) >= limit {
			return
		}
		if len(topic.Topics) > 0 {
			appendTopics(results, topic.Topics, limit)
			continue
		}
		if topic.Text == "" {
			continue
		}
		*results = append(*results, domain.WebResult{
			Title:   topicTitle(topic.Text),
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}
}

// topicTitle derives a short title from a related topic's text, which
// has the form "Title - description".
func topicTitle(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	return text
}

// Close releases resources.
func (s *SearchService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
