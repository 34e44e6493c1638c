// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/models"
	"github.com/danielhkuo/badger-vote/rounds"
)

// MaxPollOptions is the most options a Telegram poll accepts
const MaxPollOptions = 10

// MaxOptionLength is the longest poll option label Telegram accepts, in characters
const MaxOptionLength = 100

// PollDuration is how long a poll stays open on the client
const PollDuration = 24 * time.Hour

type SuggestionHandler struct {
	ledger *ledger.Ledger
	rounds *rounds.Coordinator
	msg    Messenger
	now    func() time.Time
}

func NewSuggestionHandler(l *ledger.Ledger, c *rounds.Coordinator, m Messenger) *SuggestionHandler {
	return &SuggestionHandler{ledger: l, rounds: c, msg: m, now: time.Now}
}

// Start handles /start
func (h *SuggestionHandler) Start(ctx context.Context, cmd models.Command) error {
	name := cmd.FullName
	if name == "" {
		name = cmd.Username
	}
	return reply(ctx, h.msg, cmd, fmt.Sprintf(msgGreeting, name), true)
}

// Help handles /help
func (h *SuggestionHandler) Help(ctx context.Context, cmd models.Command) error {
	return h.msg.SendText(ctx, models.OutgoingText{
		ChatID:   cmd.ChatID,
		Text:     helpText,
		Markdown: true,
		Keyboard: true,
	})
}

// List handles /list
// Two or more suggestions are sent as a poll and registered as a round
func (h *SuggestionHandler) List(ctx context.Context, cmd models.Command) error {
	suggestions := h.ledger.ListSuggestions()

	switch len(suggestions) {
	case 0:
		return reply(ctx, h.msg, cmd, msgNoSuggestions, false)
	case 1:
		return reply(ctx, h.msg, cmd, fmt.Sprintf(msgOnlyOne, suggestions[0].Text), false)
	}

	if len(suggestions) > MaxPollOptions {
		slog.Warn("too many suggestions for one poll, listing the oldest",
			"suggestions", len(suggestions),
			"limit", MaxPollOptions,
		)
		suggestions = suggestions[:MaxPollOptions]
	}

	texts := make([]string, len(suggestions))
	ids := make([]int64, len(suggestions))
	for i, s := range suggestions {
		texts[i] = optionLabel(s.Text)
		ids[i] = s.ID
	}

	sent, err := h.msg.SendPoll(ctx, models.OutgoingPoll{
		ChatID:   cmd.ChatID,
		Question: msgPollQuestion,
		Options:  texts,
		CloseAt:  h.now().Add(PollDuration),
	})
	if err != nil {
		slog.Error("failed to send poll", "error", err, "chat_id", cmd.ChatID)
		h.notifyFailure(ctx, cmd)
		return fmt.Errorf("failed to send poll: %w", err)
	}

	if _, err := h.rounds.OpenRound(ctx, sent.PollID, cmd.ChatID, sent.MessageID, ids); err != nil {
		slog.Error("failed to register round", "error", err, "poll_id", sent.PollID)
		h.notifyFailure(ctx, cmd)
		return err
	}
	return nil
}

// optionLabel cuts text to MaxOptionLength runes
func optionLabel(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxOptionLength {
		return text
	}
	return string(runes[:MaxOptionLength-1]) + "…"
}

// Add handles /add <text>
func (h *SuggestionHandler) Add(ctx context.Context, cmd models.Command) error {
	s, err := h.ledger.AddSuggestion(ctx, cmd.Args, cmd.UserID)

	var rle *ledger.RateLimitError
	switch {
	case err == nil:
		slog.Info("suggestion added", "suggestion_id", s.ID, "creator_id", s.CreatorID)
		return reply(ctx, h.msg, cmd, msgAdded, true)
	case errors.Is(err, ledger.ErrEmptyText):
		return reply(ctx, h.msg, cmd, msgTooShort, true)
	case errors.As(err, &rle):
		retry := humanize.RelTime(rle.RetryAt, h.now(), "ago", "from now")
		return reply(ctx, h.msg, cmd, fmt.Sprintf(msgOncePerDay, retry), true)
	default:
		slog.Error("failed to add suggestion", "error", err, "user_id", cmd.UserID)
		h.notifyFailure(ctx, cmd)
		return err
	}
}

func (h *SuggestionHandler) notifyFailure(ctx context.Context, cmd models.Command) {
	if err := reply(ctx, h.msg, cmd, msgFailure, true); err != nil {
		slog.Warn("failed to send failure notice", "error", err)
	}
}
