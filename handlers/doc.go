// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers turns chat commands and poll answers into ledger
operations and replies.

# Handler Types

Each handler is a struct holding the ledger, the round coordinator and a
Messenger:

  - SuggestionHandler: /start, /help, /list, /add
  - VotingHandler: poll answers
  - ResultsHandler: /results, /clear, /remove (admins only)

Handlers are created via constructor functions:

	suggest := handlers.NewSuggestionHandler(l, coordinator, gateway)

# Rounds

/list sends every live suggestion as a single-answer poll, oldest first,
and registers the poll id with the coordinator. Answers are mapped back
to suggestion ids through that registration, so answers to polls the
coordinator does not know are dropped.

# Failures

User mistakes (empty title, second suggestion of the day, bad id) get a
reply and a nil error. Persistence failures get a generic apology and
the error is returned to the caller for logging.
*/
package handlers
