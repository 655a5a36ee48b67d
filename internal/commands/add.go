package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todo_reminder/internal/domain"
	"todo_reminder/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd creates a task and re-renders the list.
type AddCmd struct {
	date string
	time string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todo add [--date YYYY-MM-DD] [--time HH:MM] [--] <text...>"
}

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.time, "time", "", "")
	fs.StringVar(&c.time, "t", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return userError(errOut, "Please enter a task description.")
	}

	task, err := env.API.Create(ctx, domain.CreateTaskInput{Text: text, Date: c.date, Time: c.time})
	if err != nil {
		return fail(errOut, "Failed to add task. Please try again.", err)
	}
	env.Logger.Debug("task created", "id", task.ID)

	if env.Config.Quiet {
		return exitcode.Success
	}
	return rerender(ctx, env, out, errOut)
}
