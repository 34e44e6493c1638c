// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/badger-vote/models"
)

// EventHandler receives converted updates
type EventHandler func(ctx context.Context, ev models.Event)

// EventFromUpdate converts an update into an event. Updates that are
// neither a slash command nor a poll answer report false, as do commands
// addressed to a bot other than botName (as in /list@otherbot).
func EventFromUpdate(u tgbotapi.Update, botName string) (models.Event, bool) {
	if a := u.PollAnswer; a != nil {
		return models.Event{PollAnswer: &models.PollAnswer{
			PollID:    a.PollID,
			UserID:    a.User.ID,
			Username:  a.User.UserName,
			OptionIDs: append([]int(nil), a.OptionIDs...),
		}}, true
	}

	m := u.Message
	if m == nil || m.From == nil || m.Chat == nil || !m.IsCommand() {
		return models.Event{}, false
	}

	name, target, addressed := strings.Cut(m.CommandWithAt(), "@")
	if addressed && !strings.EqualFold(target, botName) {
		return models.Event{}, false
	}

	return models.Event{Command: &models.Command{
		Name:      strings.ToLower(name),
		Args:      strings.TrimSpace(m.CommandArguments()),
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		UserID:    m.From.ID,
		Username:  m.From.UserName,
		FullName:  strings.TrimSpace(m.From.FirstName + " " + m.From.LastName),
	}}, true
}

// RegisterWebhook points Telegram at webhookURL. Deliveries carry secret
// in the X-Telegram-Bot-Api-Secret-Token header.
func (g *Gateway) RegisterWebhook(ctx context.Context, webhookURL, secret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if webhookURL == "" {
		return errors.New("webhook URL is required")
	}

	params := tgbotapi.Params{}
	params.AddNonEmpty("url", webhookURL)
	params.AddNonEmpty("secret_token", secret)
	if err := params.AddInterface("allowed_updates", AllowedUpdates); err != nil {
		return err
	}

	if _, err := g.bot.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	slog.Info("webhook registered", "url", webhookURL)
	return nil
}

// Poll receives updates by long polling until ctx is cancelled. Any
// registered webhook is removed first.
func (g *Gateway) Poll(ctx context.Context, handle EventHandler) error {
	if _, err := g.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	cfg.AllowedUpdates = AllowedUpdates

	updates := g.bot.GetUpdatesChan(cfg)
	defer g.bot.StopReceivingUpdates()

	slog.Info("long polling started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("long polling stopped")
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			ev, ok := EventFromUpdate(u, g.Username())
			if !ok {
				slog.Debug("update ignored", "update_id", u.UpdateID)
				continue
			}
			handle(ctx, ev)
		}
	}
}
