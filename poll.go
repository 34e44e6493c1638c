// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Receive Telegram updates by long polling",
		Long: `Receive updates by long polling instead of a webhook.

Any registered webhook is removed first. Useful for local development
where Telegram cannot reach the bot.`,
		RunE: runPoll,
	}
}

func runPoll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := newBot(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	return b.gateway.Poll(ctx, b.dispatcher.Handle)
}
