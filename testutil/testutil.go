// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/badger-vote/auth"
	"github.com/danielhkuo/badger-vote/cliparse"
	"github.com/danielhkuo/badger-vote/db"
	"github.com/danielhkuo/badger-vote/models"
)

// TestDBURL is an in-memory SQLite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8443,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		BotToken:      "123456:test-token",
		WebhookSecret: "test-webhook-secret",
		Admins:        "1000,@admin",
	}
}

// GetTestAdmins returns the allow-list of GetTestConfig
func GetTestAdmins(t *testing.T) auth.AdminList {
	t.Helper()
	admins, err := auth.ParseAdminList(GetTestConfig().Admins)
	if err != nil {
		t.Fatalf("Failed to parse admin list: %v", err)
	}
	return admins
}

// Clock is a settable clock
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Messenger records outgoing messages instead of sending them
type Messenger struct {
	mu       sync.Mutex
	Texts    []models.OutgoingText
	Polls    []models.OutgoingPoll
	SendErr  error
	PollErr  error
	nextPoll int
}

func (m *Messenger) SendText(ctx context.Context, msg models.OutgoingText) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Texts = append(m.Texts, msg)
	return nil
}

func (m *Messenger) SendPoll(ctx context.Context, poll models.OutgoingPoll) (models.SentPoll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return models.SentPoll{}, m.SendErr
	}
	if m.PollErr != nil {
		return models.SentPoll{}, m.PollErr
	}
	m.Polls = append(m.Polls, poll)
	m.nextPoll++
	return models.SentPoll{
		PollID:    fmt.Sprintf("poll-%d", m.nextPoll),
		MessageID: 500 + m.nextPoll,
	}, nil
}

// LastText returns the most recent text message, failing the test if none was sent
func (m *Messenger) LastText(t *testing.T) models.OutgoingText {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Texts) == 0 {
		t.Fatal("No text message was sent")
	}
	return m.Texts[len(m.Texts)-1]
}

// Command builds a command event from a user in chat 42
func Command(name, args string, userID int64, username string) models.Command {
	return models.Command{
		Name:      name,
		Args:      args,
		ChatID:    42,
		MessageID: 1,
		UserID:    userID,
		Username:  username,
		FullName:  "Test User",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
