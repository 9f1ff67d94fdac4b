// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ConversationStarted carries the ID of a freshly created conversation.
type ConversationStarted struct {
	ID  string
	Err error
}

// AnswerRequested is a command to answer a question.
type AnswerRequested struct {
	Question string
}

// AnswerCompleted carries the answer (or failure) back to the model.
type AnswerCompleted struct {
	Question string
	Answer   *domain.Answer
	Err      error
}
