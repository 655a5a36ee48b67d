// Command todo is a terminal client for the todo API with reminder alerts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todo_reminder/internal/cli"
	"todo_reminder/internal/client"
	"todo_reminder/internal/commands"
	"todo_reminder/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadClient()
	factory := func(cfg *config.ClientConfig) commands.API {
		return client.New(cfg.APIURL, cfg.HTTPTimeout)
	}

	code := cli.NewDispatcher(commands.DefaultRegistry, cfg, factory).Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
