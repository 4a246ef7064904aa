package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	editingStyle   = lipgloss.NewStyle().Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("72"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
	labelStyle     = lipgloss.NewStyle().Width(10)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenAuth {
		return m.viewAuth()
	}
	return m.viewTasks()
}

func (m Model) viewAuth() string {
	var b strings.Builder

	title := "taskflow · log in"
	if m.registering {
		title = "taskflow · create account"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("username"))
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("password"))
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View())
		b.WriteString(" signing in...\n")
	}
	if m.authErr != "" {
		b.WriteString(errorStyle.Render(m.authErr))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter submit · tab switch field · ctrl+r toggle register · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTasks() string {
	var b strings.Builder

	header := "taskflow"
	if user, ok := m.deps.Session.User(); ok {
		header = fmt.Sprintf("taskflow · %s", user.Username)
	}
	b.WriteString(titleStyle.Render(header))
	if m.loading {
		b.WriteString(" ")
		b.WriteString(m.spin.View())
	}
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(helpStyle.Render("no tasks. press a to add one"))
		b.WriteString("\n")
	}

	for i, task := range m.tasks {
		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, task.Text)
		switch {
		case task.Completed:
			line = completedStyle.Render(line)
		case task.IsEditing:
			line = editingStyle.Render(line)
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch m.inputMode {
	case inputAdd:
		b.WriteString("add: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case inputEdit:
		b.WriteString("edit: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.storeErr != "" {
		b.WriteString(errorStyle.Render(m.storeErr))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space toggle · a add · e edit · d delete · K/J move · r reload · ctrl+l logout · q quit"))
	b.WriteString("\n")
	return b.String()
}
