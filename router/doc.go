// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router dispatches chat events and defines the HTTP routes.

# Dispatcher

Dispatcher maps command names to handlers and serializes events, so the
ledger sees one command or poll answer at a time. /results, /clear and
/remove are only run for users on the admin allow-list; other users and
unknown commands are ignored.

# Routes

	GET  /health            → ledger counts as JSON
	POST /telegram/webhook  → Telegram update, checked against the secret token
	GET  /                  → banner

The webhook always answers 200 once the secret is valid and the body
parses, so Telegram does not redeliver updates the bot has handled.
*/
package router
