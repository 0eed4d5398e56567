// Package main is the entry point for the performate CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"performate/internal/backend/restapi"
	"performate/internal/cli"
	"performate/internal/commands"
	"performate/internal/config"
	"performate/internal/logging"
	"performate/internal/service"
	"performate/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Local overrides (API root, debug) may come from a .env file.
	_ = godotenv.Load()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		log := logging.New(os.Stderr, cfg.Debug)
		store := session.NewStore(cfg, log)
		store.Load()
		if !store.Authenticated() {
			return nil, session.ErrNotAuthenticated
		}
		return restapi.New(cfg.APIRoot, store.TokenSource(), log), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	os.Exit(dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
