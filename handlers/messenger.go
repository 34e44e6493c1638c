// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"

	"github.com/danielhkuo/badger-vote/models"
)

// Messenger sends messages through the chat platform
type Messenger interface {
	SendText(ctx context.Context, msg models.OutgoingText) error
	SendPoll(ctx context.Context, poll models.OutgoingPoll) (models.SentPoll, error)
}

// User-visible texts
const (
	msgGreeting      = "Hi, %s!"
	msgNoSuggestions = "No suggestions yet."
	msgOnlyOne       = "There is only one suggestion so far: %s"
	msgPollQuestion  = "Suggestions:"
	msgTooShort      = "Title is too short! Example: /add Imperial March"
	msgAdded         = "Added!"
	msgOncePerDay    = "You can only add one suggestion per day. Try again %s."
	msgVoteAccepted  = "Vote accepted!"
	msgNoResults     = "No suggestions!"
	msgMostPopular   = "Most popular: %s"
	msgRemoved       = "Removed: %d"
	msgRemoveUsage   = "Usage: /remove <id>"
	msgFailure       = "Something went wrong, please try again later."
)

const helpText = `Suggest a track for the morning wake-up here.

*Commands*
/help : show this message
/list : see the suggestions and vote
/add ` + "`<track title>`" + ` : add your suggestion

*Rules*
You can suggest only one track per day.
Vote as often as you like, only your latest vote counts.
Results stay hidden to keep the suspense.`

func reply(ctx context.Context, m Messenger, cmd models.Command, text string, keyboard bool) error {
	return m.SendText(ctx, models.OutgoingText{
		ChatID:   cmd.ChatID,
		Text:     text,
		Keyboard: keyboard,
	})
}
