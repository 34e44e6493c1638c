// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the single source of truth for suggestions and votes.

# Rules

  - A suggestion needs non-empty text after trimming (ErrEmptyText).
  - A creator may add one suggestion per rolling 24 hours. The check uses
    elapsed time, not calendar dates (RateLimitError, ErrDuplicateToday).
  - Suggestion ids come from a per-ledger counter and are never reused.
  - Each user has at most one live vote; a new vote replaces the old one.

# Tally and Rounds

Tally counts live votes by suggestion text. Every live suggestion appears,
including those without votes, and suggestions with identical text share an
entry.

ClearRound picks the entry with the highest count (ties go to the earliest
listed suggestion), removes that suggestion and every vote, and returns its
text, or models.NoSuggestions when nothing was suggested.

# Persistence

A Ledger created with New lives in memory only. Open attaches a Store and
loads its snapshot:

	l, err := ledger.Open(ctx, store, time.Now)

Every mutation is committed to the store first, as one Changes value, and
applied in memory only when the commit succeeds. A failed commit returns a
*PersistenceError and leaves the ledger unchanged.
*/
package ledger
