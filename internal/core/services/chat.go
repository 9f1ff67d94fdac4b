package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// DefaultMinScore is the relevance cutoff below which the document is
// considered to have no answer and the web fallback kicks in. The
// value is empirically tuned, not derived.
const DefaultMinScore = 0.1

// defaultWebLimit caps web fallback results.
const defaultWebLimit = 3

// ChatService answers questions over the loaded document with
// per-conversation history and a live web search fallback.
// The llm and web services are optional (can be nil); answers degrade
// gracefully without them.
type ChatService struct {
	retrieval driving.RetrievalService
	history   driven.ConversationStore
	llm       driven.LLMService
	web       driven.WebSearchService

	topK     int
	minScore float64
	webLimit int
}

// ChatOption configures the chat service.
type ChatOption func(*ChatService)

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(k int) ChatOption {
	return func(s *ChatService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithMinScore sets the relevance cutoff for the web fallback.
func WithMinScore(score float64) ChatOption {
	return func(s *ChatService) {
		if score >= 0 {
			s.minScore = score
		}
	}
}

// WithWebLimit caps how many web results feed the fallback answer.
func WithWebLimit(limit int) ChatOption {
	return func(s *ChatService) {
		if limit > 0 {
			s.webLimit = limit
		}
	}
}

// NewChatService creates a chat service. retrieval and history are
// required; llm and web may be nil.
func NewChatService(
	retrieval driving.RetrievalService,
	history driven.ConversationStore,
	llm driven.LLMService,
	web driven.WebSearchService,
	opts ...ChatOption,
) *ChatService {
	s := &ChatService{
		retrieval: retrieval,
		history:   history,
		llm:       llm,
		web:       web,
		topK:      DefaultTopK,
		minScore:  DefaultMinScore,
		webLimit:  defaultWebLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewConversation creates an empty conversation and returns its ID.
func (s *ChatService) NewConversation(_ context.Context) (string, error) {
	return uuid.New().String(), nil
}

// History returns the recorded turns of a conversation.
func (s *ChatService) History(ctx context.Context, conversationID string) ([]domain.Message, error) {
	conv, err := s.history.Get(ctx, conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Message{}, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return conv.Messages, nil
}

// Ask answers a question within a conversation. The document is
// consulted first; when the best retrieval score falls below the
// cutoff the answer comes from live web search instead.
func (s *ChatService) Ask(ctx context.Context, conversationID, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.retrieval == nil {
		return nil, domain.ErrSearchUnavailable
	}

	logger.Section("Chat Turn")
	logger.Debug("Conversation: %s, question: %q", conversationID, question)

	priorTurns, err := s.History(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.appendTurn(ctx, conversationID, domain.RoleUser, question); err != nil {
		return nil, err
	}

	results, err := s.retrieval.Search(ctx, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var answer *domain.Answer
	if len(results) > 0 && results[0].Score >= s.minScore {
		answer = s.answerFromDocument(ctx, question, results, priorTurns)
	} else {
		logger.Info("No document coverage (best %.4f < %.4f), falling back to web",
			bestScore(results), s.minScore)
		answer = s.answerFromWeb(ctx, question, results)
	}

	if err := s.appendTurn(ctx, conversationID, domain.RoleAssistant, answer.Text); err != nil {
		return nil, err
	}
	return answer, nil
}

// answerFromDocument builds a reply from retrieved chunks, generating
// prose through the LLM when one is configured.
func (s *ChatService) answerFromDocument(
	ctx context.Context, question string, results []domain.SimilarityResult, history []domain.Message,
) *domain.Answer {
	passages := make([]string, 0, len(results))
	for _, res := range results {
		if res.Score >= s.minScore {
			passages = append(passages, res.Chunk.Content)
		}
	}

	answer := &domain.Answer{
		Source:      domain.AnswerSourceDocument,
		ContextUsed: results[0].Chunk.Section,
		Results:     results,
	}

	if s.llm != nil {
		text, err := s.llm.Answer(ctx, question, passages, history)
		if err == nil && text != "" {
			answer.Text = text
			return answer
		}
		if err != nil {
			logger.Warn("LLM answer failed: %v (returning best passage)", err)
		}
	}

	// Degraded mode: the best passage speaks for itself.
	best := results[0].Chunk
	if best.Preview != "" {
		answer.Text = best.Preview
	} else {
		answer.Text = best.Content
	}
	return answer
}

// answerFromWeb builds a reply from live web search results.
func (s *ChatService) answerFromWeb(
	ctx context.Context, question string, results []domain.SimilarityResult,
) *domain.Answer {
	answer := &domain.Answer{
		Source:  domain.AnswerSourceWeb,
		Results: results,
	}

	if s.web == nil {
		answer.Source = domain.AnswerSourceDocument
		answer.Text = "The document does not cover this topic, and web search is not configured."
		return answer
	}

	hits, err := s.web.Search(ctx, question, s.webLimit)
	if err != nil || len(hits) == 0 {
		if err != nil {
			logger.Warn("Web search failed: %v", err)
		}
		answer.Text = "The document does not cover this topic, and no web results were found."
		return answer
	}

	if s.llm != nil {
		passages := make([]string, 0, len(hits))
		for _, hit := range hits {
			passages = append(passages, hit.Title+": "+hit.Snippet)
		}
		text, llmErr := s.llm.Answer(ctx, question, passages, nil)
		if llmErr == nil && text != "" {
			answer.Text = text
			return answer
		}
		if llmErr != nil {
			logger.Warn("LLM answer over web results failed: %v", llmErr)
		}
	}

	var b strings.Builder
	b.WriteString("From the web:\n")
	for _, hit := range hits {
		fmt.Fprintf(&b, "- %s (%s)\n", hit.Snippet, hit.URL)
	}
	answer.Text = strings.TrimSpace(b.String())
	return answer
}

// appendTurn records one message in the conversation history.
func (s *ChatService) appendTurn(ctx context.Context, conversationID, role, content string) error {
	msg := domain.Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.history.Append(ctx, conversationID, msg); err != nil {
		return fmt.Errorf("append %s turn: %w", role, err)
	}
	return nil
}

// bestScore returns the top score of a ranked result list, 0 when empty.
func bestScore(results []domain.SimilarityResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].Score
}
