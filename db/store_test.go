// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/badger-vote/db"
	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/models"
	"github.com/danielhkuo/badger-vote/rounds"
	"github.com/danielhkuo/badger-vote/testutil"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema() error = %v", err)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := db.Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestLoad_Empty(t *testing.T) {
	store := db.NewSQLStore(testutil.SetupTestDB(t))

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Suggestions) != 0 || len(snap.Votes) != 0 || snap.LastID != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestCommit_RoundTrip(t *testing.T) {
	store := db.NewSQLStore(testutil.SetupTestDB(t))
	ctx := context.Background()
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	err := store.Commit(ctx, ledger.Changes{
		AddSuggestions: []models.Suggestion{
			{ID: 1, Text: "Track A", CreatorID: 10, CreatedAt: created},
			{ID: 2, Text: "Track B", CreatorID: 11, CreatedAt: created.Add(time.Minute)},
		},
		LastID: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Second vote by the same user replaces the first
	for _, sid := range []int64{1, 2} {
		err = store.Commit(ctx, ledger.Changes{
			PutVotes: []models.Vote{{UserID: 5, SuggestionID: sid, CastAt: created}},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(snap.Suggestions))
	}
	if snap.Suggestions[0].Text != "Track A" || !snap.Suggestions[0].CreatedAt.Equal(created) {
		t.Errorf("suggestion[0] = %+v", snap.Suggestions[0])
	}
	if len(snap.Votes) != 1 || snap.Votes[0].SuggestionID != 2 {
		t.Errorf("votes = %+v, want one vote for 2", snap.Votes)
	}
	if snap.LastID != 2 {
		t.Errorf("LastID = %d, want 2", snap.LastID)
	}
}

func TestCommit_RemoveDropsVotes(t *testing.T) {
	store := db.NewSQLStore(testutil.SetupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	store.Commit(ctx, ledger.Changes{
		AddSuggestions: []models.Suggestion{
			{ID: 1, Text: "Track A", CreatorID: 10, CreatedAt: now},
			{ID: 2, Text: "Track B", CreatorID: 11, CreatedAt: now},
		},
		PutVotes: []models.Vote{
			{UserID: 5, SuggestionID: 1, CastAt: now},
			{UserID: 6, SuggestionID: 2, CastAt: now},
		},
		LastID: 2,
	})

	if err := store.Commit(ctx, ledger.Changes{RemoveSuggestions: []int64{1}}); err != nil {
		t.Fatal(err)
	}

	snap, _ := store.Load(ctx)
	if len(snap.Suggestions) != 1 || snap.Suggestions[0].ID != 2 {
		t.Errorf("suggestions = %+v", snap.Suggestions)
	}
	if len(snap.Votes) != 1 || snap.Votes[0].UserID != 6 {
		t.Errorf("votes = %+v", snap.Votes)
	}
	if snap.LastID != 2 {
		t.Errorf("counter moved back: %d", snap.LastID)
	}
}

func TestCommit_Rollback(t *testing.T) {
	store := db.NewSQLStore(testutil.SetupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	store.Commit(ctx, ledger.Changes{
		AddSuggestions: []models.Suggestion{{ID: 1, Text: "Track A", CreatorID: 10, CreatedAt: now}},
		PutVotes:       []models.Vote{{UserID: 5, SuggestionID: 1, CastAt: now}},
		LastID:         1,
	})

	// Duplicate primary key fails after the votes were cleared in the same transaction
	err := store.Commit(ctx, ledger.Changes{
		ClearVotes:     true,
		AddSuggestions: []models.Suggestion{{ID: 1, Text: "Dup", CreatorID: 10, CreatedAt: now}},
	})
	if err == nil {
		t.Fatal("expected duplicate id to fail")
	}

	snap, _ := store.Load(ctx)
	if len(snap.Votes) != 1 {
		t.Errorf("partial commit: votes = %+v", snap.Votes)
	}
}

func TestLedger_SurvivesRestart(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	clock := testutil.NewClock()
	ctx := context.Background()

	first, err := ledger.Open(ctx, db.NewSQLStore(conn), clock.Now)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := first.AddSuggestion(ctx, "Track A", 1)
	b, _ := first.AddSuggestion(ctx, "Track B", 2)
	first.RecordVote(ctx, 5, b.ID)
	if winner, err := first.ClearRound(ctx); err != nil || winner != "Track B" {
		t.Fatalf("ClearRound() = %q, %v", winner, err)
	}

	second, err := ledger.Open(ctx, db.NewSQLStore(conn), clock.Now)
	if err != nil {
		t.Fatal(err)
	}
	list := second.ListSuggestions()
	if len(list) != 1 || list[0].ID != a.ID {
		t.Errorf("suggestions after restart = %+v", list)
	}
	if len(second.Votes()) != 0 {
		t.Error("votes survived the clear")
	}

	// Daily limit still applies after restart
	if _, err := second.AddSuggestion(ctx, "Track C", 1); !errors.Is(err, ledger.ErrDuplicateToday) {
		t.Errorf("expected ErrDuplicateToday, got %v", err)
	}

	// Id of the cleared winner is not reused
	clock.Advance(25 * time.Hour)
	c, err := second.AddSuggestion(ctx, "Track C", 1)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID <= b.ID {
		t.Errorf("ID = %d reuses a cleared id (last was %d)", c.ID, b.ID)
	}
}

func TestRounds_RoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	first, err := rounds.Open(ctx, db.NewSQLStore(conn))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.OpenRound(ctx, "5812", 42, 77, []int64{3, 9}); err != nil {
		t.Fatal(err)
	}
	if err := first.RecordAnswer(ctx, "5812"); err != nil {
		t.Fatal(err)
	}

	second, err := rounds.Open(ctx, db.NewSQLStore(conn))
	if err != nil {
		t.Fatal(err)
	}
	r, ok := second.Round("5812")
	if !ok {
		t.Fatal("round lost after restart")
	}
	if r.ChatID != 42 || r.MessageID != 77 || r.Answers != 1 {
		t.Errorf("round = %+v", r)
	}
	if id, err := second.Resolve("5812", 1); err != nil || id != 9 {
		t.Errorf("Resolve() = %d, %v, want 9", id, err)
	}
}
