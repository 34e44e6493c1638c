// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"

	"github.com/danielhkuo/badger-vote/models"
)

// Store is the durable backing of a Ledger.
// Commit must apply all of Changes or none of it.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Commit(ctx context.Context, changes Changes) error
}

// Snapshot is the persisted ledger state
type Snapshot struct {
	Suggestions []models.Suggestion
	Votes       []models.Vote
	LastID      int64 // highest suggestion id ever issued
}

// Changes describes one logical ledger mutation
type Changes struct {
	AddSuggestions    []models.Suggestion
	RemoveSuggestions []int64 // votes for these suggestions are removed too
	PutVotes          []models.Vote
	ClearVotes        bool // applied before PutVotes
	LastID            int64
}
