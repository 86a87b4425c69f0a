// Package main is the entry point for the tasker CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"tasker/internal/backend/filestore"
	"tasker/internal/backend/googletasks"
	"tasker/internal/cli"
	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return filestore.New(ctx, cfg.StorePath())
	}
	commands.RemoteFactory = func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
