// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/badger-vote/models"
)

// Clock returns the current time
type Clock func() time.Time

// Ledger holds suggestions and votes and enforces the rules over them.
// All methods are safe for concurrent use.
type Ledger struct {
	mu          sync.Mutex
	store       Store
	now         Clock
	suggestions map[int64]models.Suggestion
	votes       map[int64]models.Vote // user_id -> vote
	lastID      int64
}

// New creates a memory-only Ledger. A nil clock means time.Now.
func New(clock Clock) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{
		now:         clock,
		suggestions: make(map[int64]models.Suggestion),
		votes:       make(map[int64]models.Vote),
	}
}

// Open creates a Ledger backed by store and loads its current state
func Open(ctx context.Context, store Store, clock Clock) (*Ledger, error) {
	l := New(clock)
	l.store = store

	snap, err := store.Load(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	for _, s := range snap.Suggestions {
		l.suggestions[s.ID] = s
		if s.ID > l.lastID {
			l.lastID = s.ID
		}
	}
	for _, v := range snap.Votes {
		l.votes[v.UserID] = v
	}
	if snap.LastID > l.lastID {
		l.lastID = snap.LastID
	}

	slog.Info("ledger loaded",
		"suggestions", len(l.suggestions),
		"votes", len(l.votes),
		"last_id", l.lastID,
	)
	return l, nil
}

// AddSuggestion validates and stores a new suggestion
func (l *Ledger) AddSuggestion(ctx context.Context, text string, creatorID int64) (models.Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Suggestion{}, ErrEmptyText
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// Elapsed time, not calendar date: a suggestion at 23:00 blocks until 23:00 next day
	for _, s := range l.suggestions {
		if s.CreatorID == creatorID && now.Sub(s.CreatedAt) < models.SuggestionWindow {
			return models.Suggestion{}, &RateLimitError{
				CreatorID: creatorID,
				RetryAt:   s.CreatedAt.Add(models.SuggestionWindow),
			}
		}
	}

	suggestion := models.Suggestion{
		ID:        l.lastID + 1,
		Text:      text,
		CreatorID: creatorID,
		CreatedAt: now,
	}

	err := l.commit(ctx, "add suggestion", Changes{
		AddSuggestions: []models.Suggestion{suggestion},
		LastID:         suggestion.ID,
	})
	if err != nil {
		return models.Suggestion{}, err
	}

	l.lastID = suggestion.ID
	l.suggestions[suggestion.ID] = suggestion
	return suggestion, nil
}

// ListSuggestions returns live suggestions in ascending id order
func (l *Ledger) ListSuggestions() []models.Suggestion {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listLocked()
}

func (l *Ledger) listLocked() []models.Suggestion {
	list := make([]models.Suggestion, 0, len(l.suggestions))
	for _, s := range l.suggestions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Suggestion looks up a live suggestion by id
func (l *Ledger) Suggestion(id int64) (models.Suggestion, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.suggestions[id]
	return s, ok
}

// RecordVote replaces any previous vote by userID
func (l *Ledger) RecordVote(ctx context.Context, userID, suggestionID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.suggestions[suggestionID]; !ok {
		return fmt.Errorf("vote for %d: %w", suggestionID, ErrUnknownSuggestion)
	}

	vote := models.Vote{
		UserID:       userID,
		SuggestionID: suggestionID,
		CastAt:       l.now(),
	}
	if err := l.commit(ctx, "record vote", Changes{PutVotes: []models.Vote{vote}}); err != nil {
		return err
	}

	l.votes[userID] = vote
	return nil
}

// Vote returns the live vote of userID
func (l *Ledger) Vote(userID int64) (models.Vote, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.votes[userID]
	return v, ok
}

// Votes returns all live votes ordered by user id
func (l *Ledger) Votes() []models.Vote {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := make([]models.Vote, 0, len(l.votes))
	for _, v := range l.votes {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserID < list[j].UserID })
	return list
}

// Tally counts live votes per suggestion text. Every live suggestion is
// present, including those with no votes. Suggestions sharing a text share
// an entry.
func (l *Ledger) Tally() models.Tally {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tallyLocked()
}

func (l *Ledger) tallyLocked() models.Tally {
	tally := models.Tally{}
	index := make(map[string]int)
	for _, s := range l.listLocked() {
		if _, seen := index[s.Text]; !seen {
			index[s.Text] = len(tally)
			tally = append(tally, models.TallyEntry{Text: s.Text})
		}
	}

	for _, v := range l.votes {
		s, ok := l.suggestions[v.SuggestionID]
		if !ok {
			continue
		}
		tally[index[s.Text]].Count++
	}
	return tally
}

// ClearRound picks the most voted suggestion, removes it and all votes, and
// returns its text. With no suggestions it returns models.NoSuggestions.
// Ties go to the suggestion listed first.
func (l *Ledger) ClearRound(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tally := l.tallyLocked()
	changes := Changes{ClearVotes: true}

	winner := models.NoSuggestions
	var winnerID int64
	if len(tally) > 0 {
		best := tally[0]
		for _, e := range tally[1:] {
			if e.Count > best.Count {
				best = e
			}
		}
		winner = best.Text

		for _, s := range l.listLocked() {
			if s.Text == winner {
				winnerID = s.ID
				break
			}
		}
		changes.RemoveSuggestions = []int64{winnerID}
	}

	if err := l.commit(ctx, "clear round", changes); err != nil {
		return "", err
	}

	if winnerID != 0 {
		delete(l.suggestions, winnerID)
	}
	cleared := len(l.votes)
	l.votes = make(map[int64]models.Vote)

	slog.Info("round cleared", "winner", winner, "winner_id", winnerID, "votes_cleared", cleared)
	return winner, nil
}

// RemoveSuggestion deletes a suggestion and the votes pointing at it.
// Removing an unknown id is a no-op.
func (l *Ledger) RemoveSuggestion(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.suggestions[id]; !ok {
		return nil
	}

	if err := l.commit(ctx, "remove suggestion", Changes{RemoveSuggestions: []int64{id}}); err != nil {
		return err
	}

	delete(l.suggestions, id)
	for userID, v := range l.votes {
		if v.SuggestionID == id {
			delete(l.votes, userID)
		}
	}
	return nil
}

// commit persists changes before memory is touched. Caller holds mu.
func (l *Ledger) commit(ctx context.Context, op string, changes Changes) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Commit(ctx, changes); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
