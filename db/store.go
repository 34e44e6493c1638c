// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/models"
)

const suggestionCounter = "suggestion"

// SQLStore persists the ledger and the poll rounds.
// It implements ledger.Store and rounds.Store.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load reads suggestions, votes and the id counter
func (s *SQLStore) Load(ctx context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	var err error

	snap.Suggestions, err = s.loadSuggestions(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	snap.Votes, err = s.loadVotes(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT value FROM id_counter WHERE name = $1
	`, suggestionCounter).Scan(&snap.LastID)
	if err != nil && err != sql.ErrNoRows {
		return ledger.Snapshot{}, fmt.Errorf("failed to query id counter: %w", err)
	}

	return snap, nil
}

func (s *SQLStore) loadSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, creator_id, created_at
		FROM suggestion
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var list []models.Suggestion
	for rows.Next() {
		var sg models.Suggestion
		if err := rows.Scan(&sg.ID, &sg.Text, &sg.CreatorID, &sg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		list = append(list, sg)
	}
	return list, rows.Err()
}

func (s *SQLStore) loadVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, suggestion_id, cast_at
		FROM vote
		ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var list []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.UserID, &v.SuggestionID, &v.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Commit applies changes in a single transaction
func (s *SQLStore) Commit(ctx context.Context, changes ledger.Changes) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range changes.RemoveSuggestions {
		if _, err = tx.ExecContext(ctx, `DELETE FROM vote WHERE suggestion_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete votes for suggestion: %w", err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM suggestion WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete suggestion: %w", err)
		}
	}

	if changes.ClearVotes {
		if _, err = tx.ExecContext(ctx, `DELETE FROM vote`); err != nil {
			return fmt.Errorf("failed to clear votes: %w", err)
		}
	}

	for _, sg := range changes.AddSuggestions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO suggestion (id, text, creator_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, sg.ID, sg.Text, sg.CreatorID, sg.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert suggestion: %w", err)
		}
	}

	for _, v := range changes.PutVotes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (user_id, suggestion_id, cast_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET suggestion_id = excluded.suggestion_id, cast_at = excluded.cast_at
		`, v.UserID, v.SuggestionID, v.CastAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to upsert vote: %w", err)
		}
	}

	if changes.LastID > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO id_counter (name, value)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET value = excluded.value
		`, suggestionCounter, changes.LastID)
		if err != nil {
			return fmt.Errorf("failed to update id counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadRounds reads every registered poll round
func (s *SQLStore) LoadRounds(ctx context.Context) ([]models.Round, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, chat_id, message_id, suggestion_ids, answers, opened_at
		FROM poll_round
		ORDER BY opened_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var list []models.Round
	for rows.Next() {
		var r models.Round
		var idsJSON string
		if err := rows.Scan(&r.PollID, &r.ChatID, &r.MessageID, &idsJSON, &r.Answers, &r.OpenedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if err := json.Unmarshal([]byte(idsJSON), &r.SuggestionIDs); err != nil {
			return nil, fmt.Errorf("failed to parse suggestion ids of poll %s: %w", r.PollID, err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// SaveRound inserts or replaces a round
func (s *SQLStore) SaveRound(ctx context.Context, round models.Round) error {
	idsJSON, err := json.Marshal(round.SuggestionIDs)
	if err != nil {
		return fmt.Errorf("failed to encode suggestion ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poll_round (poll_id, chat_id, message_id, suggestion_ids, answers, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (poll_id) DO UPDATE
		SET chat_id = excluded.chat_id,
		    message_id = excluded.message_id,
		    suggestion_ids = excluded.suggestion_ids,
		    answers = excluded.answers,
		    opened_at = excluded.opened_at
	`, round.PollID, round.ChatID, round.MessageID, string(idsJSON), round.Answers, round.OpenedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}
	return nil
}

// IncrementAnswers bumps the answer counter of a round
func (s *SQLStore) IncrementAnswers(ctx context.Context, pollID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE poll_round SET answers = answers + 1 WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to increment answers: %w", err)
	}
	return nil
}
