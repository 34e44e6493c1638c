// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package telegram connects the bot to the Telegram Bot API.

Gateway wraps a go-telegram-bot-api client and implements
handlers.Messenger. Updates arrive either through the webhook served by
the router or through Gateway.Poll, and are converted to events with
EventFromUpdate:

	gw, err := telegram.New(cfg.BotToken, "")
	err = gw.RegisterWebhook(ctx, cfg.WebhookURL, secret)

Only messages and poll answers are requested from Telegram; see
AllowedUpdates.
*/
package telegram
