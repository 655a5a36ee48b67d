// Package commands provides the todo CLI commands.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"todo_reminder/internal/client"
	"todo_reminder/internal/config"
	"todo_reminder/internal/domain"
)

// API is the subset of client.Client used by commands.
type API interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, in domain.CreateTaskInput) (domain.Task, error)
	Toggle(ctx context.Context, id string) (domain.Task, error)
	Delete(ctx context.Context, id string) error
	Health(ctx context.Context) (client.Health, error)
}

// Env is what every command runs against.
type Env struct {
	Config *config.ClientConfig
	API    API
	Logger *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	Name() string
	Aliases() []string
	Synopsis() string
	Usage() string

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args and returns the exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
