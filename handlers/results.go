// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/models"
)

// ResultsHandler serves the privileged commands. Callers must check the
// admin allow-list first.
type ResultsHandler struct {
	ledger *ledger.Ledger
	msg    Messenger
}

func NewResultsHandler(l *ledger.Ledger, m Messenger) *ResultsHandler {
	return &ResultsHandler{ledger: l, msg: m}
}

// Results handles /results
func (h *ResultsHandler) Results(ctx context.Context, cmd models.Command) error {
	tally := h.ledger.Tally()
	if len(tally) == 0 {
		return reply(ctx, h.msg, cmd, msgNoResults, false)
	}
	return reply(ctx, h.msg, cmd, FormatTally(tally), false)
}

// Clear handles /clear
func (h *ResultsHandler) Clear(ctx context.Context, cmd models.Command) error {
	winner, err := h.ledger.ClearRound(ctx)
	if err != nil {
		slog.Error("failed to clear round", "error", err)
		if sendErr := reply(ctx, h.msg, cmd, msgFailure, false); sendErr != nil {
			slog.Warn("failed to send failure notice", "error", sendErr)
		}
		return err
	}
	return reply(ctx, h.msg, cmd, fmt.Sprintf(msgMostPopular, winner), false)
}

// Remove handles /remove <id>
func (h *ResultsHandler) Remove(ctx context.Context, cmd models.Command) error {
	id, err := strconv.ParseInt(strings.TrimSpace(cmd.Args), 10, 64)
	if err != nil {
		return reply(ctx, h.msg, cmd, msgRemoveUsage, false)
	}

	if err := h.ledger.RemoveSuggestion(ctx, id); err != nil {
		slog.Error("failed to remove suggestion", "error", err, "suggestion_id", id)
		if sendErr := reply(ctx, h.msg, cmd, msgFailure, false); sendErr != nil {
			slog.Warn("failed to send failure notice", "error", sendErr)
		}
		return err
	}

	slog.Info("suggestion removed", "suggestion_id", id, "by", cmd.UserID)
	return reply(ctx, h.msg, cmd, fmt.Sprintf(msgRemoved, id), false)
}

// FormatTally renders one "<text>: <count>" line per entry
func FormatTally(tally models.Tally) string {
	lines := make([]string, len(tally))
	for i, e := range tally {
		lines[i] = fmt.Sprintf("%s: %d", e.Text, e.Count)
	}
	return strings.Join(lines, "\n")
}
