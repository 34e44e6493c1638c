// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/badger-vote/models"
)

// fakeBotAPI answers Bot API methods and records the submitted forms
type fakeBotAPI struct {
	mu      sync.Mutex
	calls   map[string]url.Values
	replies map[string]string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)
	r.ParseForm()

	f.mu.Lock()
	f.calls[method] = r.PostForm
	result, ok := f.replies[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		return
	}
	w.Write([]byte(`{"ok":true,"result":` + result + `}`))
}

func (f *fakeBotAPI) form(t *testing.T, method string) url.Values {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	form, ok := f.calls[method]
	if !ok {
		t.Fatalf("Method %s was not called", method)
	}
	return form
}

func setupGateway(t *testing.T) (*Gateway, *fakeBotAPI) {
	t.Helper()
	fake := &fakeBotAPI{
		calls: make(map[string]url.Values),
		replies: map[string]string{
			"getMe":       `{"id":1,"is_bot":true,"first_name":"Badger","username":"badger_bot"}`,
			"sendMessage": `{"message_id":10,"date":0,"chat":{"id":42,"type":"group"}}`,
			"sendPoll": `{"message_id":11,"date":0,"chat":{"id":42,"type":"group"},
				"poll":{"id":"5812","question":"Suggestions:","options":[],"total_voter_count":0,
				"is_closed":false,"is_anonymous":false,"type":"regular","allows_multiple_answers":false}}`,
			"setWebhook": `true`,
		},
	}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	gw, err := New("123456:test-token", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return gw, fake
}

func TestSendText(t *testing.T) {
	gw, fake := setupGateway(t)

	err := gw.SendText(context.Background(), models.OutgoingText{
		ChatID:   42,
		Text:     "Vote accepted!",
		ReplyTo:  501,
		Markdown: true,
		Keyboard: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	form := fake.form(t, "sendMessage")
	if form.Get("chat_id") != "42" || form.Get("text") != "Vote accepted!" {
		t.Errorf("Unexpected form %v", form)
	}
	if form.Get("reply_to_message_id") != "501" {
		t.Errorf("reply_to_message_id = %q", form.Get("reply_to_message_id"))
	}
	if form.Get("parse_mode") != "Markdown" {
		t.Errorf("parse_mode = %q", form.Get("parse_mode"))
	}
	if markup := form.Get("reply_markup"); !strings.Contains(markup, "/help") || !strings.Contains(markup, "/list") {
		t.Errorf("reply_markup = %q", markup)
	}
}

func TestSendText_Plain(t *testing.T) {
	gw, fake := setupGateway(t)

	if err := gw.SendText(context.Background(), models.OutgoingText{ChatID: 42, Text: "Added!"}); err != nil {
		t.Fatal(err)
	}

	form := fake.form(t, "sendMessage")
	if form.Get("parse_mode") != "" || form.Get("reply_markup") != "" || form.Get("reply_to_message_id") != "" {
		t.Errorf("Expected a plain message, got %v", form)
	}
}

func TestSendPoll(t *testing.T) {
	gw, fake := setupGateway(t)
	closeAt := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	sent, err := gw.SendPoll(context.Background(), models.OutgoingPoll{
		ChatID:   42,
		Question: "Suggestions:",
		Options:  []string{"Track A", "Track B"},
		CloseAt:  closeAt,
	})
	if err != nil {
		t.Fatal(err)
	}
	if sent.PollID != "5812" || sent.MessageID != 11 {
		t.Errorf("SentPoll = %+v", sent)
	}

	form := fake.form(t, "sendPoll")
	var options []string
	if err := json.Unmarshal([]byte(form.Get("options")), &options); err != nil {
		t.Fatalf("options = %q: %v", form.Get("options"), err)
	}
	if len(options) != 2 || options[0] != "Track A" || options[1] != "Track B" {
		t.Errorf("options = %v", options)
	}
	if form.Get("is_anonymous") == "true" {
		t.Error("Expected a non-anonymous poll")
	}
	if form.Get("allows_multiple_answers") == "true" {
		t.Error("Expected a single answer poll")
	}
	if form.Get("close_date") != "1741683600" {
		t.Errorf("close_date = %q", form.Get("close_date"))
	}
}

func TestSendText_CancelledContext(t *testing.T) {
	gw, fake := setupGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := gw.SendText(ctx, models.OutgoingText{ChatID: 42, Text: "x"}); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if _, called := fake.calls["sendMessage"]; called {
		t.Error("Expected no request")
	}
}

func TestRegisterWebhook(t *testing.T) {
	gw, fake := setupGateway(t)

	err := gw.RegisterWebhook(context.Background(), "https://bot.example.com/telegram/webhook", "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	form := fake.form(t, "setWebhook")
	if form.Get("url") != "https://bot.example.com/telegram/webhook" {
		t.Errorf("url = %q", form.Get("url"))
	}
	if form.Get("secret_token") != "s3cret" {
		t.Errorf("secret_token = %q", form.Get("secret_token"))
	}
	var allowed []string
	json.Unmarshal([]byte(form.Get("allowed_updates")), &allowed)
	if len(allowed) != 2 || allowed[0] != "message" || allowed[1] != "poll_answer" {
		t.Errorf("allowed_updates = %v", allowed)
	}

	if err := gw.RegisterWebhook(context.Background(), "", "s3cret"); err == nil {
		t.Error("Expected error for empty URL")
	}
}

func TestNew_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	if _, err := New("bad", srv.URL+"/bot%s/%s"); err == nil {
		t.Fatal("Expected error for rejected token")
	}
}
