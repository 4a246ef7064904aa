package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type storeChangedMsg struct{}

type noticeMsg string

type authDoneMsg struct{ err error }

type opDoneMsg struct{ err error }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case storeChangedMsg:
		m.syncFromStore()
		return m, m.listenChanges()

	case noticeMsg:
		m.status = string(msg)
		return m, m.listenNotices()

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.authErr = msg.err.Error()
			return m, nil
		}
		m.authErr = ""
		m.password.SetValue("")
		m.screen = screenTasks
		m.syncFromStore()
		return m, nil

	case opDoneMsg:
		m.busy = false
		m.syncFromStore()
		return m, nil

	case tea.KeyMsg:
		if m.screen == screenAuth {
			return m.updateAuth(msg)
		}
		return m.updateTasks(msg)
	}

	return m, nil
}

// syncFromStore re-reads the authoritative snapshot. The store is the
// single source of truth; the model never mutates task state itself.
func (m *Model) syncFromStore() {
	m.tasks = m.deps.Store.Tasks()
	m.loading = m.deps.Store.Loading()
	if err := m.deps.Store.Err(); err != nil {
		m.storeErr = err.Error()
	} else {
		m.storeErr = ""
	}
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if !m.deps.Session.Active() {
		m.screen = screenAuth
	}
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.authFocus = 1 - m.authFocus
		if m.authFocus == 0 {
			m.username.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.username.Blur()
		}
		return m, nil

	case "ctrl+r":
		m.registering = !m.registering
		m.authErr = ""
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		username := m.username.Value()
		password := m.password.Value()
		m.busy = true
		register := m.registering
		return m, func() tea.Msg {
			var err error
			if register {
				err = m.deps.Session.Register(context.Background(), username, password)
			} else {
				err = m.deps.Session.Login(context.Background(), username, password)
			}
			return authDoneMsg{err: err}
		}
	}

	var cmd tea.Cmd
	if m.authFocus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.updateInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case " ", "enter":
		task, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			return opDoneMsg{err: m.deps.Store.ToggleComplete(context.Background(), task.ID)}
		}

	case "a":
		m.inputMode = inputAdd
		m.input.Placeholder = "new task"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.deps.Store.StartEdit(task.ID)
		m.inputMode = inputEdit
		m.editID = task.ID
		m.input.Placeholder = ""
		m.input.SetValue(task.Text)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "d":
		task, ok := m.selected()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			return opDoneMsg{err: m.deps.Store.DeleteTask(context.Background(), task.ID)}
		}

	case "K":
		if task, ok := m.selected(); ok {
			m.deps.Store.MoveTaskUp(task.ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}
		return m, nil

	case "J":
		if task, ok := m.selected(); ok {
			m.deps.Store.MoveTaskDown(task.ID)
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		}
		return m, nil

	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			return opDoneMsg{err: m.deps.Store.LoadTasks(context.Background())}
		}

	case "ctrl+l":
		m.deps.Session.Logout()
		m.screen = screenAuth
		m.username.Focus()
		m.password.Blur()
		m.authFocus = 0
		return m, nil
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil

	case "enter":
		text := m.input.Value()
		kind := m.inputMode
		editID := m.editID
		m.inputMode = inputNone
		m.input.Blur()
		if text == "" || m.busy {
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			switch kind {
			case inputAdd:
				return opDoneMsg{err: m.deps.Store.AddTask(context.Background(), text, "")}
			case inputEdit:
				return opDoneMsg{err: m.deps.Store.EditTask(context.Background(), editID, text)}
			}
			return opDoneMsg{}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) selected() (taskAt, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return taskAt{}, false
	}
	t := m.tasks[m.cursor]
	return taskAt{ID: t.ID, Text: t.Text}, true
}

type taskAt struct {
	ID   string
	Text string
}
