package domain

import "time"

// Message roles within a conversation.
const (
	// RoleUser marks a message written by the person asking questions.
	RoleUser = "user"

	// RoleAssistant marks a message produced by the answer pipeline.
	RoleAssistant = "assistant"
)

// Answer sources returned by the chat pipeline.
const (
	// AnswerSourceDocument means the answer was grounded in retrieved chunks.
	AnswerSourceDocument = "document"

	// AnswerSourceWeb means the answer fell back to live web search.
	AnswerSourceWeb = "web"
)

// Message represents a single chat turn.
type Message struct {
	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the message text.
	Content string

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time
}

// Conversation holds the ordered history of one chat session.
type Conversation struct {
	// ID is the unique conversation identifier.
	ID string

	// Messages are the turns in chronological order.
	Messages []Message

	// CreatedAt is when the conversation started.
	CreatedAt time.Time

	// UpdatedAt is when the last message was appended.
	UpdatedAt time.Time
}

// Answer is the chat pipeline's reply to one question.
type Answer struct {
	// Text is the generated reply.
	Text string

	// Source is AnswerSourceDocument or AnswerSourceWeb.
	Source string

	// ContextUsed is the section label of the best supporting chunk,
	// empty when the answer did not come from the document.
	ContextUsed string

	// Results are the retrieval hits that informed the answer.
	Results []SimilarityResult
}

// WebResult is a single hit from the live web search fallback.
type WebResult struct {
	// Title is the result heading.
	Title string

	// URL is the result location.
	URL string

	// Snippet is a short extract of the result body.
	Snippet string
}
