package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"todo_reminder/internal/view"
)

const reminderTitle = "🔔 Reminder!"

// DialogNotifier prints a boxed dialog for every reminder.
type DialogNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewDialogNotifier(w io.Writer) *DialogNotifier {
	return &DialogNotifier{w: w}
}

func (n *DialogNotifier) Notify(_ context.Context, r Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return view.Dialog(n.w, reminderTitle, view.ReminderMessage(r.Task, r.Due))
}

// LogNotifier records reminders as structured log entries.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.Logger.InfoContext(ctx, "task due", "id", r.Task.ID, "text", r.Task.Text, "due", r.Due)
	return nil
}

// MultiNotifier fans a reminder out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, r Reminder) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
