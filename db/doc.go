// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and the SQL-backed store.

# Connecting

Open selects the driver from the database type and pings the server:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:badger-vote.db")

PostgreSQL uses github.com/lib/pq, SQLite uses the pure Go modernc.org/sqlite.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - suggestion: proposed tracks
  - vote: one live vote per user (user_id primary key)
  - id_counter: high-water mark of issued suggestion ids
  - poll_round: open polls and the suggestion ids behind their options

# Store

SQLStore implements ledger.Store and rounds.Store. Each ledger Commit runs in
one transaction, so clearing a round (delete winner, delete all votes) either
happens completely or not at all.
*/
package db
