// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/badger-vote/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Register the webhook and serve Telegram updates over HTTP",
		Long: `Register the webhook with Telegram and serve updates over HTTP.

WEBHOOK_URL must be the public address of /telegram/webhook, for example:
  WEBHOOK_URL=https://bot.example.com/telegram/webhook badger-vote serve`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.WebhookURL == "" {
		return errors.New("WEBHOOK_URL required (use --webhook-url or WEBHOOK_URL env)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := newBot(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	secret := webhookSecret(cfg)
	if err := b.gateway.RegisterWebhook(ctx, cfg.WebhookURL, secret); err != nil {
		return err
	}

	// Create server
	server := http.Server{
		Handler: router.NewRouter(b.dispatcher, b.ledger, secret, b.gateway.Username()),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed", "error", err)
	return nil
}
