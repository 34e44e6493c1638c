// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/models"
	"github.com/danielhkuo/badger-vote/rounds"
)

type VotingHandler struct {
	ledger *ledger.Ledger
	rounds *rounds.Coordinator
	msg    Messenger
}

func NewVotingHandler(l *ledger.Ledger, c *rounds.Coordinator, m Messenger) *VotingHandler {
	return &VotingHandler{ledger: l, rounds: c, msg: m}
}

// PollAnswer records the vote behind a poll answer and confirms it
// under the poll message. Answers to unknown polls are ignored.
func (h *VotingHandler) PollAnswer(ctx context.Context, answer models.PollAnswer) error {
	round, ok := h.rounds.Round(answer.PollID)
	if !ok {
		slog.Debug("answer for unknown poll ignored", "poll_id", answer.PollID)
		return nil
	}

	// Retracted vote: the previous vote stays live
	if len(answer.OptionIDs) == 0 {
		slog.Debug("vote retraction ignored", "poll_id", answer.PollID, "user_id", answer.UserID)
		return nil
	}

	recorded := 0
	for _, option := range answer.OptionIDs {
		suggestionID, err := h.rounds.Resolve(answer.PollID, option)
		if errors.Is(err, rounds.ErrNotFound) {
			slog.Warn("poll option out of range", "poll_id", answer.PollID, "option", option)
			continue
		}
		if err != nil {
			return err
		}

		err = h.ledger.RecordVote(ctx, answer.UserID, suggestionID)
		if errors.Is(err, ledger.ErrUnknownSuggestion) {
			slog.Info("vote for removed suggestion ignored",
				"poll_id", answer.PollID,
				"suggestion_id", suggestionID,
			)
			continue
		}
		if err != nil {
			slog.Error("failed to record vote", "error", err, "user_id", answer.UserID)
			return err
		}
		recorded++
	}

	if recorded == 0 {
		return nil
	}

	if err := h.rounds.RecordAnswer(ctx, answer.PollID); err != nil {
		// The vote is in; the counter is informational
		slog.Warn("failed to count poll answer", "error", err, "poll_id", answer.PollID)
	}

	slog.Info("vote recorded", "poll_id", answer.PollID, "user_id", answer.UserID)

	return h.msg.SendText(ctx, models.OutgoingText{
		ChatID:   round.ChatID,
		Text:     msgVoteAccepted,
		ReplyTo:  round.MessageID,
		Keyboard: true,
	})
}
