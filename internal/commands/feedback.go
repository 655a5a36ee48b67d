package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"todo_reminder/internal/client"
	"todo_reminder/internal/exitcode"
	"todo_reminder/internal/view"
)

const errorTitle = "❌ Error"

// fail shows an error dialog and maps err to an exit code. Every failed
// mutation goes through here so the user always gets feedback.
func fail(errOut io.Writer, fallback string, err error) int {
	msg := fallback
	code := exitcode.BackendError

	switch {
	case client.IsNotFound(err):
		msg = "Task not found. It may have been deleted."
		code = exitcode.UserError
	case client.IsValidation(err):
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = "Invalid task: " + apiErr.Message + "."
		}
		code = exitcode.UserError
	}

	_ = view.Dialog(errOut, errorTitle, msg)
	return code
}

func userError(errOut io.Writer, msg string) int {
	_ = view.Dialog(errOut, errorTitle, msg)
	return exitcode.UserError
}

// rerender fetches the full list and draws it again.
func rerender(ctx context.Context, env *Env, out, errOut io.Writer) int {
	tasks, err := env.API.List(ctx)
	if err != nil {
		return fail(errOut, "Failed to load tasks.", err)
	}
	if err := (view.Renderer{ShowIDs: true}).Render(out, tasks); err != nil {
		return exitcode.BackendError
	}
	return exitcode.Success
}

var errNoSuchPosition = errors.New("no task at position")

// resolveID accepts either a task id or the 1-based position shown by list.
func resolveID(ctx context.Context, env *Env, ref string) (string, error) {
	n, err := strconv.Atoi(ref)
	if err != nil || n <= 0 {
		return ref, nil
	}

	tasks, err := env.API.List(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range tasks {
		if t.ID == ref {
			return ref, nil
		}
	}
	if n > len(tasks) {
		return "", fmt.Errorf("%w: %d", errNoSuchPosition, n)
	}
	return tasks[n-1].ID, nil
}
