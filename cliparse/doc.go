// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

RegisterFlags binds every Config field to a pflag FlagSet; ApplyEnv then
fills what the flags left unset. The cobra root command in package main
does both:

	cfg.RegisterFlags(rootCmd.PersistentFlags())
	// in PersistentPreRunE
	err := cfg.ApplyEnv()

serve and poll additionally call RequireToken.

# Config Fields

  - Port: Webhook listen port (default: 8443)
  - DatabaseURL: connection string (default for sqlite: file:badger-vote.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - BotToken: Telegram bot token (required)
  - WebhookURL: public URL Telegram posts updates to
  - WebhookSecret / WebhookSalt: explicit secret, or salt to derive one
  - Admins: user ids and @usernames allowed to run privileged commands
  - Debug: debug logging

# CLI Flags

	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  sqlite or postgres
	--webhook-url        Public webhook URL
	--token              Bot token
	--webhook-secret     Webhook secret token
	--webhook-salt       Webhook secret salt
	--admins             Administrator list
	--debug              Debug logging

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	WEBHOOK_URL    → --webhook-url
	TG_TOKEN       → --token
	WEBHOOK_SECRET → --webhook-secret
	WEBHOOK_SALT   → --webhook-salt
	ADMINS         → --admins
	DEBUG          → --debug

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file first; values already in the environment win.

# Validation

ApplyEnv returns an error if:

  - PORT or DEBUG cannot be parsed
  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_URL is missing for postgres

RequireToken returns an error if TG_TOKEN is missing.
*/
package cliparse
