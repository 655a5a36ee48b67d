package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"todo_reminder/internal/exitcode"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd permanently removes a task.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string                   { return "rm" }
func (c *DeleteCmd) Aliases() []string              { return []string{"delete"} }
func (c *DeleteCmd) Synopsis() string               { return "Delete a task" }
func (c *DeleteCmd) Usage() string                  { return "todo rm <id|position>" }
func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return userError(errOut, "Usage: "+c.Usage())
	}

	id, err := resolveID(ctx, env, args[0])
	if errors.Is(err, errNoSuchPosition) {
		return userError(errOut, "Task not found. It may have been deleted.")
	}
	if err != nil {
		return fail(errOut, "Failed to delete task. Please try again.", err)
	}

	if err := env.API.Delete(ctx, id); err != nil {
		return fail(errOut, "Failed to delete task. Please try again.", err)
	}

	if env.Config.Quiet {
		return exitcode.Success
	}
	return rerender(ctx, env, out, errOut)
}
