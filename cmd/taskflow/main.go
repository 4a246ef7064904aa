// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskflow/internal/backend/taskflowapi"
	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/notify"
	"taskflow/internal/session"
	"taskflow/internal/storage"
	"taskflow/internal/store"
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

	factory := func(ctx context.Context, cfg *config.Config, hub *notify.Hub) (*commands.App, func(), error) {
		if err := cfg.EnsureDir(); err != nil {
			return nil, nil, err
		}
		record, err := storage.Open(cfg.SessionDBPath())
		if err != nil {
			return nil, nil, err
		}

		svc := taskflowapi.New(cfg.BaseURL)
		sess := session.New(svc, record, hub)
		st := store.New(svc, sess)

		app := &commands.App{
			Session: sess,
			Store:   st,
			Service: svc,
			Notify:  hub,
		}

		// Restoring an existing session also triggers the initial
		// task load via the store's session subscription.
		sess.Restore()

		return app, func() { _ = record.Close() }, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
