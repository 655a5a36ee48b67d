package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo_reminder/internal/exitcode"
)

func init() {
	Register(&HealthCmd{})
}

type HealthCmd struct{}

func (c *HealthCmd) Name() string                   { return "health" }
func (c *HealthCmd) Aliases() []string              { return nil }
func (c *HealthCmd) Synopsis() string               { return "Check that the API is up" }
func (c *HealthCmd) Usage() string                  { return "todo health" }
func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	h, err := env.API.Health(ctx)
	if err != nil {
		return fail(errOut, "API is unavailable.", err)
	}
	fmt.Fprintf(out, "%s (%s) at %s\n", h.Status, h.Version, h.Timestamp)
	return exitcode.Success
}
