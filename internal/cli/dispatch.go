// Package cli parses the todo command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo_reminder/internal/commands"
	"todo_reminder/internal/config"
	"todo_reminder/internal/exitcode"
	"todo_reminder/internal/logger"
)

// APIFactory builds the API client for a run. Tests inject an httptest-backed client.
type APIFactory func(cfg *config.ClientConfig) commands.API

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	cfg      *config.ClientConfig
	factory  APIFactory
}

func NewDispatcher(registry *commands.Registry, cfg *config.ClientConfig, factory APIFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		cfg:      cfg,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// No arguments means "list". Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmd, ok := d.registry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := *d.cfg
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "")
	debug := fs.Bool("debug", false, "")

	cmd.RegisterFlags(fs)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		errStr := err.Error()
		if strings.HasPrefix(errStr, "flag provided but not defined: ") {
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", strings.TrimPrefix(errStr, "flag provided but not defined: "))
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	if *debug {
		cfg.LogLevel = "debug"
	}

	env := &commands.Env{
		Config: &cfg,
		API:    d.factory(&cfg),
		Logger: logger.New(errOut, cfg.LogLevel, false),
	}
	return cmd.Run(ctx, env, positional, out, errOut)
}

// parseInterspersed accepts flags before, between and after positional
// arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
