// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, event, and message types shared by the bot.

# Domain Types

  - Suggestion: a proposed track with its creator and creation time
  - Vote: the single live choice of a user
  - Round: an open poll and the suggestion ids behind its options
  - Tally / TallyEntry: per-text vote counts, ordered by listing position

# Events

Inbound events are produced by the messaging gateway:

  - Command: /start, /help, /list, /add, /results, /clear, /remove
  - PollAnswer: poll id, user, selected option indices

An Event carries exactly one of them plus a correlation ID.

# Outbound Messages

  - OutgoingText: plain or Markdown text, optional reply and keyboard
  - OutgoingPoll: single-answer poll with a close time
  - SentPoll: the gateway-assigned poll id and message id

# Constants

	NoSuggestions    = "No suggestions"
	SuggestionWindow = 24 * time.Hour
*/
package models
