// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/badger-vote/auth"
	"github.com/danielhkuo/badger-vote/cliparse"
	"github.com/danielhkuo/badger-vote/ledger"
	"github.com/danielhkuo/badger-vote/middleware"
	"github.com/danielhkuo/badger-vote/models"
	"github.com/danielhkuo/badger-vote/telegram"
)

// SecretHeader carries the webhook secret on every Telegram delivery
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// NewRouter builds the HTTP routes. botName is the bot's username; commands
// addressed to other bots are dropped.
func NewRouter(d *Dispatcher, l *ledger.Ledger, webhookSecret, botName string) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:      "ok",
			Suggestions: len(l.ListSuggestions()),
			Votes:       len(l.Votes()),
		})
	})

	// Telegram updates
	mux.HandleFunc("POST "+cliparse.DefaultWebhookPath, middleware.WithLogging(webhook(d, webhookSecret, botName)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("badger-vote bot"))
	})

	return mux
}

func webhook(d *Dispatcher, secret, botName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.ValidateWebhookSecret(r.Header.Get(SecretHeader), secret); err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid secret token")
			return
		}

		var update tgbotapi.Update
		if err := middleware.ParseJSONBody(r, &update); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid update")
			return
		}

		ev, ok := telegram.EventFromUpdate(update, botName)
		if !ok {
			slog.Debug("update ignored", "update_id", update.UpdateID)
			w.WriteHeader(http.StatusOK)
			return
		}
		ev.ID = middleware.RequestID(r.Context())

		d.Handle(r.Context(), ev)
		w.WriteHeader(http.StatusOK)
	}
}
