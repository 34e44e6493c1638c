// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rounds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/badger-vote/models"
)

// ErrNotFound is returned for unknown polls and out-of-range options
var ErrNotFound = errors.New("round not found")

// Store persists rounds across restarts
type Store interface {
	LoadRounds(ctx context.Context) ([]models.Round, error)
	SaveRound(ctx context.Context, round models.Round) error
	IncrementAnswers(ctx context.Context, pollID string) error
}

// Coordinator maps poll ids to the ordered suggestion ids behind their options
type Coordinator struct {
	mu     sync.Mutex
	store  Store
	now    func() time.Time
	rounds map[string]models.Round
}

// NewCoordinator creates a memory-only Coordinator. Rounds are lost on restart.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		now:    time.Now,
		rounds: make(map[string]models.Round),
	}
}

// Open creates a Coordinator backed by store and loads the known rounds
func Open(ctx context.Context, store Store) (*Coordinator, error) {
	c := NewCoordinator()
	c.store = store

	list, err := store.LoadRounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds: %w", err)
	}
	for _, r := range list {
		c.rounds[r.PollID] = r
	}

	slog.Info("rounds loaded", "count", len(c.rounds))
	return c, nil
}

// OpenRound registers a poll sent by the gateway
func (c *Coordinator) OpenRound(ctx context.Context, pollID string, chatID int64, messageID int, suggestionIDs []int64) (models.Round, error) {
	if pollID == "" {
		return models.Round{}, errors.New("poll id is required")
	}

	round := models.Round{
		PollID:        pollID,
		ChatID:        chatID,
		MessageID:     messageID,
		SuggestionIDs: append([]int64(nil), suggestionIDs...),
		OpenedAt:      c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SaveRound(ctx, round); err != nil {
			return models.Round{}, fmt.Errorf("failed to save round: %w", err)
		}
	}
	c.rounds[pollID] = round

	slog.Info("round opened", "poll_id", pollID, "chat_id", chatID, "options", len(round.SuggestionIDs))
	return round, nil
}

// Round returns a copy of the round registered for pollID
func (c *Coordinator) Round(pollID string) (models.Round, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.rounds[pollID]
	if !ok {
		return models.Round{}, false
	}
	r.SuggestionIDs = append([]int64(nil), r.SuggestionIDs...)
	return r, true
}

// Resolve maps a poll option index to its suggestion id
func (c *Coordinator) Resolve(pollID string, optionIndex int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.rounds[pollID]
	if !ok {
		return 0, fmt.Errorf("poll %s: %w", pollID, ErrNotFound)
	}
	if optionIndex < 0 || optionIndex >= len(r.SuggestionIDs) {
		return 0, fmt.Errorf("poll %s option %d: %w", pollID, optionIndex, ErrNotFound)
	}
	return r.SuggestionIDs[optionIndex], nil
}

// RecordAnswer bumps the answer counter of a round
func (c *Coordinator) RecordAnswer(ctx context.Context, pollID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.rounds[pollID]
	if !ok {
		return fmt.Errorf("poll %s: %w", pollID, ErrNotFound)
	}

	if c.store != nil {
		if err := c.store.IncrementAnswers(ctx, pollID); err != nil {
			return fmt.Errorf("failed to count answer: %w", err)
		}
	}
	r.Answers++
	c.rounds[pollID] = r

	slog.Debug("poll answered",
		"poll_id", pollID,
		"answers", r.Answers,
		"opened", humanize.Time(r.OpenedAt),
	)
	return nil
}
