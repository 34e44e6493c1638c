// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/badger-vote/auth"
	"github.com/danielhkuo/badger-vote/cliparse"
	"github.com/danielhkuo/badger-vote/db"
	"github.com/danielhkuo/badger-vote/handlers"
	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/rounds"
	"github.com/danielhkuo/badger-vote/router"
	"github.com/danielhkuo/badger-vote/telegram"
)

// bot is the assembled application
type bot struct {
	conn       *sql.DB
	ledger     *ledger.Ledger
	gateway    *telegram.Gateway
	dispatcher *router.Dispatcher
}

func openDatabase(cfg cliparse.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)
	return conn, nil
}

func newBot(ctx context.Context, cfg cliparse.Config) (*bot, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	admins, err := auth.ParseAdminList(cfg.Admins)
	if err != nil {
		return nil, err
	}
	if admins.Len() == 0 {
		slog.Warn("no administrators configured, /results, /clear and /remove are disabled")
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	store := db.NewSQLStore(conn)
	l, err := ledger.Open(ctx, store, time.Now)
	if err != nil {
		conn.Close()
		return nil, err
	}
	coordinator, err := rounds.Open(ctx, store)
	if err != nil {
		conn.Close()
		return nil, err
	}

	gw, err := telegram.New(cfg.BotToken, "")
	if err != nil {
		conn.Close()
		return nil, err
	}

	d := router.NewDispatcher(
		handlers.NewSuggestionHandler(l, coordinator, gw),
		handlers.NewVotingHandler(l, coordinator, gw),
		handlers.NewResultsHandler(l, gw),
		admins,
	)

	return &bot{conn: conn, ledger: l, gateway: gw, dispatcher: d}, nil
}

func (b *bot) Close() error {
	return b.conn.Close()
}

// webhookSecret returns the configured secret or derives one from the token
func webhookSecret(cfg cliparse.Config) string {
	if cfg.WebhookSecret != "" {
		return cfg.WebhookSecret
	}
	return auth.GenerateWebhookSecret(cfg.BotToken, cfg.WebhookSalt)
}
