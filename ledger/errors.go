// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyText         = errors.New("suggestion text is empty")
	ErrDuplicateToday    = errors.New("creator already suggested within the last day")
	ErrUnknownSuggestion = errors.New("suggestion not found")
)

// RateLimitError is returned when a creator suggests again too early
type RateLimitError struct {
	CreatorID int64
	RetryAt   time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("creator %d may suggest again at %s", e.CreatorID, e.RetryAt.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return ErrDuplicateToday
}

// PersistenceError wraps a backing store failure. In-memory state is left
// as it was before the operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
