// Package tui is the interactive terminal surface. It is strictly a
// consumer of the session and store: every state change it renders
// arrives through their change notifications.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/notify"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

type screen int

const (
	screenAuth screen = iota
	screenTasks
)

type inputKind int

const (
	inputNone inputKind = iota
	inputAdd
	inputEdit
)

// Deps are the shared state machines the TUI renders. It owns none of
// them; the CLI hands over the same instances its commands use.
type Deps struct {
	Session *session.Session
	Store   *store.Store
	Notify  *notify.Hub
}

// Model is the Bubble Tea model for the interactive mode.
type Model struct {
	deps Deps

	screen screen

	// Auth screen state.
	registering bool
	authFocus   int
	username    textinput.Model
	password    textinput.Model
	authErr     string

	// Task screen state.
	tasks     []store.Task
	cursor    int
	input     textinput.Model
	inputMode inputKind
	editID    string
	loading   bool
	busy      bool

	status   string
	storeErr string

	spin     spinner.Model
	changes  chan struct{}
	notices  chan string
	quitting bool
}

// New creates the TUI model and wires it into the change
// notifications.
func New(deps Deps) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	input := textinput.New()
	input.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		deps:     deps,
		username: username,
		password: password,
		input:    input,
		spin:     sp,
		changes:  make(chan struct{}, 8),
		notices:  make(chan string, 8),
	}

	if deps.Session.Active() {
		m.screen = screenTasks
		m.tasks = deps.Store.Tasks()
	}

	// Store changes arrive on any goroutine; forward them into the
	// program loop without blocking the store.
	deps.Store.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	deps.Notify.SetSink(notify.Func(func(msg string) {
		select {
		case m.notices <- msg:
		default:
		}
	}))

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.listenChanges(), m.listenNotices())
}

func (m Model) listenChanges() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return storeChangedMsg{}
	}
}

func (m Model) listenNotices() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.notices)
	}
}

// Run starts the interactive mode and blocks until the user quits.
func Run(deps Deps) error {
	_, err := tea.NewProgram(New(deps), tea.WithAltScreen()).Run()
	return err
}
