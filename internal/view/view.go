// Package view renders the task list and reminder messages for a terminal.
package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todo_reminder/internal/domain"
)

const EmptyState = "No tasks yet. Add one above!"

// Renderer rebuilds the whole list on every call; it keeps no state between renders.
type Renderer struct {
	// ShowIDs prints the task id so it can be passed to toggle/rm.
	ShowIDs bool
}

func (r Renderer) Render(w io.Writer, tasks []domain.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, EmptyState)
		return err
	}

	for i, t := range tasks {
		if _, err := fmt.Fprintln(w, r.line(i+1, t)); err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) line(n int, t domain.Task) string {
	var b strings.Builder

	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	fmt.Fprintf(&b, "%2d. %s %s", n, mark, ItemText(t))
	fmt.Fprintf(&b, "  (%s | ✖)", ToggleLabel(t))
	if r.ShowIDs {
		fmt.Fprintf(&b, "  id=%s", t.ID)
	}
	return b.String()
}

// ItemText is the task text followed by its date and time annotations.
func ItemText(t domain.Task) string {
	text := t.Text
	if t.Date != "" {
		text += " 📅 " + t.Date
	}
	if t.Time != "" {
		text += " ⏰ " + t.Time
	}
	return text
}

// ToggleLabel names the action the toggle control performs.
func ToggleLabel(t domain.Task) string {
	if t.Completed {
		return "Undo"
	}
	return "Done"
}

// FormatSchedule describes a due instant, e.g. "Scheduled for January 1, 2025 at 09:00".
func FormatSchedule(due time.Time) string {
	return "Scheduled for " + due.Format("January 2, 2006") + " at " + due.Format("15:04")
}

// ReminderMessage is the body of the notification for a due task.
func ReminderMessage(t domain.Task, due time.Time) string {
	return t.Text + "\n\n" + FormatSchedule(due)
}
