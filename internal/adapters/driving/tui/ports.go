// Package tui provides an interactive chat terminal interface for docchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval provides document search capabilities.
	Retrieval driving.RetrievalService

	// Chat answers questions with conversation history.
	Chat driving.ChatService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(retrieval driving.RetrievalService, chat driving.ChatService) *Ports {
	return &Ports{
		Retrieval: retrieval,
		Chat:      chat,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
