// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/store"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TEXT}\n" (4-wide right-aligned number, two
// spaces, checkbox, title).
func FormatTask(w io.Writer, num int, task store.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, box, normalizeTitle(task.Text))
}

// FormatTaskDetail prints the full record of a single task.
func FormatTaskDetail(w io.Writer, task store.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Text))
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	state := "open"
	if task.Completed {
		state = "completed"
	}
	fmt.Fprintf(w, "state:       %s\n", state)
	if task.CreatedAt != "" {
		fmt.Fprintf(w, "created:     %s\n", task.CreatedAt)
	}
	if task.UpdatedAt != "" {
		fmt.Fprintf(w, "updated:     %s\n", task.UpdatedAt)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
