// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/badger-vote/auth"
	"github.com/danielhkuo/badger-vote/handlers"
	"github.com/danielhkuo/badger-vote/models"
)

type commandFunc func(ctx context.Context, cmd models.Command) error

type route struct {
	handle commandFunc
	admin  bool
}

// Dispatcher routes events to handlers one at a time, in delivery order
type Dispatcher struct {
	mu       sync.Mutex
	commands map[string]route
	answer   func(ctx context.Context, answer models.PollAnswer) error
	admins   auth.AdminList
}

func NewDispatcher(
	suggest *handlers.SuggestionHandler,
	voting *handlers.VotingHandler,
	results *handlers.ResultsHandler,
	admins auth.AdminList,
) *Dispatcher {
	return &Dispatcher{
		commands: map[string]route{
			models.CommandStart:   {handle: suggest.Start},
			models.CommandHelp:    {handle: suggest.Help},
			models.CommandList:    {handle: suggest.List},
			models.CommandAdd:     {handle: suggest.Add},
			models.CommandResults: {handle: results.Results, admin: true},
			models.CommandClear:   {handle: results.Clear, admin: true},
			models.CommandRemove:  {handle: results.Remove, admin: true},
		},
		answer: voting.PollAnswer,
		admins: admins,
	}
}

// Dispatch handles one event. Handler errors are logged and returned.
func (d *Dispatcher) Dispatch(ctx context.Context, ev models.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	var err error
	switch {
	case ev.PollAnswer != nil:
		err = d.answer(ctx, *ev.PollAnswer)
	case ev.Command != nil:
		err = d.command(ctx, ev.ID, *ev.Command)
	default:
		slog.Debug("empty event ignored", "event_id", ev.ID)
		return nil
	}

	if err != nil {
		slog.Error("event failed", "event_id", ev.ID, "error", err)
	}
	return err
}

func (d *Dispatcher) command(ctx context.Context, eventID string, cmd models.Command) error {
	r, ok := d.commands[cmd.Name]
	if !ok {
		slog.Debug("unknown command ignored", "event_id", eventID, "command", cmd.Name)
		return nil
	}

	if r.admin && !d.admins.Allows(cmd.UserID, cmd.Username) {
		slog.Warn("privileged command from non-admin ignored",
			"event_id", eventID,
			"command", cmd.Name,
			"user_id", cmd.UserID,
			"username", cmd.Username,
		)
		return nil
	}

	slog.Debug("dispatching command", "event_id", eventID, "command", cmd.Name, "user_id", cmd.UserID)
	return r.handle(ctx, cmd)
}

// Handle dispatches ev and drops the error, which Dispatch already logged
func (d *Dispatcher) Handle(ctx context.Context, ev models.Event) {
	d.Dispatch(ctx, ev)
}
