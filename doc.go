// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the badger-vote command.

badger-vote is a Telegram bot where a group suggests tracks for the
morning wake-up, votes on them through a poll, and an administrator
announces and clears the winner.

# Commands

	badger-vote serve    # register the webhook and serve HTTP
	badger-vote poll     # long polling, no public URL needed
	badger-vote migrate  # create the schema and exit

# Configuration

Flags fall back to environment variables, which may come from a .env
file in the working directory:

  - TG_TOKEN (--token): bot token, required for serve and poll
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string, defaults to file:badger-vote.db for sqlite
  - WEBHOOK_URL (--webhook-url): public URL of /telegram/webhook, required for serve
  - WEBHOOK_SECRET (--webhook-secret): secret token, derived from TG_TOKEN and WEBHOOK_SALT when empty
  - ADMINS (--admins): user ids and @usernames allowed to run /results, /clear and /remove
  - PORT (-p): HTTP port (default: 8443)
  - DEBUG (--debug): debug logging

# Architecture

  - ledger: suggestions, votes and the round rules
  - rounds: poll id to suggestion id mapping
  - db: schema and the SQL store behind both
  - handlers: command and poll answer handlers
  - router: event dispatcher and HTTP routes
  - telegram: Bot API gateway
  - auth, middleware, models, cliparse: supporting packages

See package documentation for each component.
*/
package main
