package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"todo_reminder/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd flips a task between done and not done.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string                   { return "toggle" }
func (c *ToggleCmd) Aliases() []string              { return []string{"done", "undo"} }
func (c *ToggleCmd) Synopsis() string               { return "Mark a task done, or undo it" }
func (c *ToggleCmd) Usage() string                  { return "todo toggle <id|position>" }
func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return userError(errOut, "Usage: "+c.Usage())
	}

	id, err := resolveID(ctx, env, args[0])
	if errors.Is(err, errNoSuchPosition) {
		return userError(errOut, "Task not found. It may have been deleted.")
	}
	if err != nil {
		return fail(errOut, "Failed to update task. Please try again.", err)
	}

	if _, err := env.API.Toggle(ctx, id); err != nil {
		return fail(errOut, "Failed to update task. Please try again.", err)
	}

	if env.Config.Quiet {
		return exitcode.Success
	}
	return rerender(ctx, env, out, errOut)
}
