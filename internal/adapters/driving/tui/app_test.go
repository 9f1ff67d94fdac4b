package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *mockChatService) {
	t.Helper()
	chat := &mockChatService{
		answer: &domain.Answer{
			Text:        "Employees get 15 days of paid vacation per year.",
			Source:      domain.AnswerSourceDocument,
			ContextUsed: "VACATION POLICY",
		},
	}
	app, err := NewApp(NewPorts(&mockRetrievalService{}, chat))
	require.NoError(t, err)
	return app, chat
}

// sized returns the app after the initial window size message.
func sized(app *App) *App {
	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(*App)
}

func TestNewApp(t *testing.T) {
	t.Run("invalid ports returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("valid ports creates app", func(t *testing.T) {
		app, _ := newTestApp(t)
		assert.NotNil(t, app)
	})
}

func TestApp_Init_StartsConversation(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := app.Init()
	require.NotNil(t, cmd)

	// Drain the batched commands and look for the conversation message.
	found := drainForConversationStarted(cmd())
	require.NotNil(t, found)
	assert.Equal(t, "conv-1", found.ID)
	assert.NoError(t, found.Err)
}

func drainForConversationStarted(msg tea.Msg) *messages.ConversationStarted {
	switch m := msg.(type) {
	case messages.ConversationStarted:
		return &m
	case tea.BatchMsg:
		for _, cmd := range m {
			if cmd == nil {
				continue
			}
			if found := drainForConversationStarted(cmd()); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)

	assert.True(t, app.ready)
	assert.Equal(t, 100, app.width)
	assert.Equal(t, 40, app.height)
}

func TestApp_Update_ConversationStarted(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(messages.ConversationStarted{ID: "conv-42"})
	app = model.(*App)

	assert.Equal(t, "conv-42", app.ConversationID())
}

func TestApp_Update_ConversationStartFailure(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(messages.ConversationStarted{Err: errors.New("store down")})
	app = model.(*App)

	assert.Error(t, app.Err())
	assert.Empty(t, app.ConversationID())
}

func TestApp_EnterSendsQuestion(t *testing.T) {
	app, chat := newTestApp(t)
	app = sized(app)

	model, _ := app.Update(messages.ConversationStarted{ID: "conv-1"})
	app = model.(*App)

	app.input.SetValue("How many vacation days do I get?")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.True(t, app.Thinking())
	assert.Empty(t, app.input.Value())
	require.NotNil(t, cmd)

	// Run the command; it should ask the chat service and report back.
	msg := cmd()
	completed, ok := msg.(messages.AnswerCompleted)
	require.True(t, ok)
	assert.Equal(t, "How many vacation days do I get?", completed.Question)
	require.NotNil(t, completed.Answer)
	assert.Contains(t, completed.Answer.Text, "15 days")
	assert.Equal(t, []string{"How many vacation days do I get?"}, chat.asked)
}

func TestApp_EnterIgnoredBeforeConversationReady(t *testing.T) {
	app, _ := newTestApp(t)
	app = sized(app)

	app.input.SetValue("too early")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.False(t, app.Thinking())
	assert.Nil(t, cmd)
}

func TestApp_EnterIgnoredWhileThinking(t *testing.T) {
	app, _ := newTestApp(t)
	app = sized(app)

	model, _ := app.Update(messages.ConversationStarted{ID: "conv-1"})
	app = model.(*App)
	app.thinking = true

	app.input.SetValue("another question")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestApp_Update_AnswerCompleted(t *testing.T) {
	app, _ := newTestApp(t)
	app = sized(app)
	app.thinking = true
	app.pending = "How many vacation days?"

	model, _ := app.Update(messages.AnswerCompleted{
		Question: "How many vacation days?",
		Answer: &domain.Answer{
			Text:        "15 days.",
			Source:      domain.AnswerSourceDocument,
			ContextUsed: "VACATION POLICY",
		},
	})
	app = model.(*App)

	assert.False(t, app.Thinking())
	require.Len(t, app.turns, 1)
	assert.Contains(t, app.View(), "15 days.")
	assert.Contains(t, app.View(), "VACATION POLICY")
}

func TestApp_Update_AnswerFailure(t *testing.T) {
	app, _ := newTestApp(t)
	app = sized(app)
	app.thinking = true

	model, _ := app.Update(messages.AnswerCompleted{
		Question: "anything",
		Err:      errors.New("llm timeout"),
	})
	app = model.(*App)

	assert.False(t, app.Thinking())
	assert.Contains(t, app.View(), "llm timeout")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Equal(t, "Loading...", app.View())
}

func TestSourceTag(t *testing.T) {
	tests := []struct {
		name     string
		answer   *domain.Answer
		expected string
	}{
		{
			name:     "web answer",
			answer:   &domain.Answer{Source: domain.AnswerSourceWeb},
			expected: "from web search",
		},
		{
			name:     "document answer with section",
			answer:   &domain.Answer{Source: domain.AnswerSourceDocument, ContextUsed: "SICK LEAVE"},
			expected: "from document · SICK LEAVE",
		},
		{
			name:     "document answer without section",
			answer:   &domain.Answer{Source: domain.AnswerSourceDocument},
			expected: "from document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sourceTag(tt.answer))
		})
	}
}
