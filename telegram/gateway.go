// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/badger-vote/models"
)

// AllowedUpdates are the update types the bot subscribes to
var AllowedUpdates = []string{"message", "poll_answer"}

// Gateway sends messages and polls through the Bot API
type Gateway struct {
	bot *tgbotapi.BotAPI
}

// New authorizes the bot token. An empty endpoint uses the public Bot API.
func New(token, endpoint string) (*Gateway, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	if err := tgbotapi.SetLogger(slogLogger{}); err != nil {
		return nil, err
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}

	slog.Info("telegram bot authorized", "username", bot.Self.UserName, "id", bot.Self.ID)
	return &Gateway{bot: bot}, nil
}

// Username is the bot's own name, without the @
func (g *Gateway) Username() string {
	return g.bot.Self.UserName
}

// SendText implements handlers.Messenger
func (g *Gateway) SendText(ctx context.Context, msg models.OutgoingText) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	m.ReplyToMessageID = msg.ReplyTo
	if msg.Markdown {
		m.ParseMode = tgbotapi.ModeMarkdown
	}
	if msg.Keyboard {
		m.ReplyMarkup = commandKeyboard()
	}

	if _, err := g.bot.Send(m); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", msg.ChatID, err)
	}
	return nil
}

// SendPoll implements handlers.Messenger. Polls are non-anonymous and
// single answer so each answer can be attributed to one user.
func (g *Gateway) SendPoll(ctx context.Context, poll models.OutgoingPoll) (models.SentPoll, error) {
	if err := ctx.Err(); err != nil {
		return models.SentPoll{}, err
	}

	p := tgbotapi.NewPoll(poll.ChatID, poll.Question, poll.Options...)
	p.IsAnonymous = false
	p.AllowsMultipleAnswers = false
	if !poll.CloseAt.IsZero() {
		p.CloseDate = int(poll.CloseAt.Unix())
	}

	sent, err := g.bot.Send(p)
	if err != nil {
		return models.SentPoll{}, fmt.Errorf("failed to send poll to chat %d: %w", poll.ChatID, err)
	}
	if sent.Poll == nil {
		return models.SentPoll{}, errors.New("telegram returned a message without a poll")
	}

	return models.SentPoll{PollID: sent.Poll.ID, MessageID: sent.MessageID}, nil
}

func commandKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/help"),
			tgbotapi.NewKeyboardButton("/list"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// slogLogger routes the client library's own logging to slog
type slogLogger struct{}

func (slogLogger) Println(v ...interface{}) {
	slog.Debug(fmt.Sprint(v...), "component", "telegram")
}

func (slogLogger) Printf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "telegram")
}
