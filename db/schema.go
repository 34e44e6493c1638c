// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Statements stick to the subset shared by PostgreSQL and SQLite
const schema = `
-- Suggestions
CREATE TABLE IF NOT EXISTS suggestion (
    id BIGINT PRIMARY KEY,
    text TEXT NOT NULL,
    creator_id BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_suggestion_creator_id ON suggestion(creator_id);

-- Votes (one live vote per user)
CREATE TABLE IF NOT EXISTS vote (
    user_id BIGINT PRIMARY KEY,
    suggestion_id BIGINT NOT NULL,
    cast_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_suggestion_id ON vote(suggestion_id);

-- Id counters (never decremented, so ids are not reused)
CREATE TABLE IF NOT EXISTS id_counter (
    name TEXT PRIMARY KEY,
    value BIGINT NOT NULL
);

-- Open polls and the suggestion ids behind their options
CREATE TABLE IF NOT EXISTS poll_round (
    poll_id TEXT PRIMARY KEY,
    chat_id BIGINT NOT NULL,
    message_id BIGINT NOT NULL,
    suggestion_ids TEXT NOT NULL,
    answers INTEGER NOT NULL DEFAULT 0,
    opened_at TIMESTAMP NOT NULL
);
`
