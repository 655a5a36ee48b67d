package commands

import (
	"context"
	"flag"
	"io"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd renders the full task list.
type ListCmd struct{}

func (c *ListCmd) Name() string                   { return "list" }
func (c *ListCmd) Aliases() []string              { return []string{"ls"} }
func (c *ListCmd) Synopsis() string               { return "Show all tasks, newest first" }
func (c *ListCmd) Usage() string                  { return "todo list" }
func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return rerender(ctx, env, out, errOut)
}
