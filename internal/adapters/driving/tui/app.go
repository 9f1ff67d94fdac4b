package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// turn is one question/answer exchange shown in the transcript.
type turn struct {
	question string
	answer   *domain.Answer
	err      error
}

// App is the chat TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// input is the question entry field.
	input textinput.Model

	// viewport scrolls the conversation transcript.
	viewport viewport.Model

	// turns is the conversation transcript.
	turns []turn

	// conversationID is the active conversation.
	conversationID string

	// pending is the question currently being answered.
	pending string

	// thinking indicates an answer is in flight.
	thinking bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat TUI with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the document"
	ti.CharLimit = 0
	ti.Focus()

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   styles.DefaultStyles(),
		keys:     keymap.DefaultKeyMap(),
		input:    ti,
		viewport: viewport.New(0, 0),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docchat"),
		textinput.Blink,
		a.startConversation(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ConversationStarted:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.conversationID = msg.ID
		return a, nil

	case messages.AnswerCompleted:
		a.thinking = false
		a.pending = ""
		a.turns = append(a.turns, turn{
			question: msg.Question,
			answer:   msg.Answer,
			err:      msg.Err,
		})
		a.refreshTranscript()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Send):
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.thinking || a.conversationID == "" {
			return a, nil
		}
		a.err = nil
		a.pending = question
		a.thinking = true
		a.input.Reset()
		a.refreshTranscript()
		return a, a.ask(question)

	case key.Matches(msg, a.keys.Clear):
		a.input.Reset()
		return a, nil

	case key.Matches(msg, a.keys.Up), key.Matches(msg, a.keys.Down):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.styles.Title.Render("Docchat") + "  " +
		a.styles.Muted.Render("chat with your document")

	var status string
	switch {
	case a.thinking:
		status = a.styles.StatusBar.Render("Thinking...")
	case a.err != nil:
		status = a.styles.Error.Render("Error: " + a.err.Error())
	default:
		status = a.styles.StatusBar.Render(a.helpLine())
	}

	input := a.styles.InputField.Width(max(20, a.width-2)).Render(a.input.View())

	return header + "\n" + a.viewport.View() + "\n" + input + "\n" + status
}

// startConversation opens a new conversation in the background.
func (a *App) startConversation() tea.Cmd {
	return func() tea.Msg {
		id, err := a.ports.Chat.NewConversation(a.ctx)
		return messages.ConversationStarted{ID: id, Err: err}
	}
}

// ask answers the question in the background.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Chat.Ask(a.ctx, a.conversationID, question)
		return messages.AnswerCompleted{Question: question, Answer: answer, Err: err}
	}
}

// resize recalculates the viewport dimensions.
func (a *App) resize() {
	// Reserve lines for the header, input box and status bar.
	reserved := 1 + 3 + 1
	h := a.height - reserved
	if h < 3 {
		h = 3
	}
	a.viewport.Width = max(20, a.width)
	a.viewport.Height = h
	a.refreshTranscript()
}

// refreshTranscript re-renders the transcript and scrolls to the bottom.
func (a *App) refreshTranscript() {
	a.viewport.SetContent(a.renderTranscript())
	a.viewport.GotoBottom()
}

func (a *App) renderTranscript() string {
	if len(a.turns) == 0 && a.pending == "" {
		return a.styles.Muted.Render("Ask a question about the loaded document.")
	}

	var b strings.Builder
	for i := range a.turns {
		tn := &a.turns[i]
		b.WriteString(a.styles.UserTurn.Render("You: " + tn.question))
		b.WriteString("\n")

		switch {
		case tn.err != nil:
			b.WriteString(a.styles.Error.Render("Error: " + tn.err.Error()))
		case tn.answer != nil:
			b.WriteString(a.styles.AssistantTurn.Render(tn.answer.Text))
			b.WriteString("\n")
			b.WriteString(a.styles.SourceTag.Render(sourceTag(tn.answer)))
		}
		b.WriteString("\n\n")
	}

	if a.pending != "" {
		b.WriteString(a.styles.UserTurn.Render("You: " + a.pending))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("..."))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a *App) helpLine() string {
	parts := make([]string, 0, 4)
	for _, binding := range a.keys.ShortHelp() {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}
	return strings.Join(parts, " · ")
}

// sourceTag describes where an answer came from.
func sourceTag(answer *domain.Answer) string {
	if answer.Source == domain.AnswerSourceWeb {
		return "from web search"
	}
	if answer.ContextUsed != "" {
		return "from document · " + answer.ContextUsed
	}
	return "from document"
}

// Accessors used by tests.

// ConversationID returns the active conversation ID.
func (a *App) ConversationID() string { return a.conversationID }

// Thinking reports whether an answer is in flight.
func (a *App) Thinking() bool { return a.thinking }

// Err returns the last error.
func (a *App) Err() error { return a.err }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
