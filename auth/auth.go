// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidWebhookSecret = errors.New("invalid webhook secret")
	ErrInvalidAdminEntry    = errors.New("invalid admin entry")
)

// GenerateWebhookSecret derives the secret Telegram echoes back in the
// X-Telegram-Bot-Api-Secret-Token header. It is deterministic, so the
// webhook can be verified without storing the secret.
func GenerateWebhookSecret(botToken, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(botToken))
	sum := h.Sum(nil)
	// URL-safe base64 without padding only uses the [A-Za-z0-9_-] Telegram accepts
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateWebhookSecret compares the received secret in constant time
func ValidateWebhookSecret(got, expected string) error {
	if expected == "" || !hmac.Equal([]byte(got), []byte(expected)) {
		return ErrInvalidWebhookSecret
	}
	return nil
}

// AdminList is the set of users allowed to run privileged commands
type AdminList struct {
	ids       map[int64]bool
	usernames map[string]bool
}

// ParseAdminList reads a comma or space separated list of numeric user ids
// and @usernames, e.g. "12345, @vtamarin"
func ParseAdminList(s string) (AdminList, error) {
	list := AdminList{
		ids:       make(map[int64]bool),
		usernames: make(map[string]bool),
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, f := range fields {
		if name, ok := strings.CutPrefix(f, "@"); ok {
			if name == "" {
				return AdminList{}, fmt.Errorf("%w: %q", ErrInvalidAdminEntry, f)
			}
			list.usernames[strings.ToLower(name)] = true
			continue
		}

		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return AdminList{}, fmt.Errorf("%w: %q", ErrInvalidAdminEntry, f)
		}
		list.ids[id] = true
	}

	return list, nil
}

// Allows reports whether the user is an administrator.
// Usernames are matched case-insensitively, with or without the leading @.
func (a AdminList) Allows(userID int64, username string) bool {
	if a.ids[userID] {
		return true
	}
	username = strings.ToLower(strings.TrimPrefix(username, "@"))
	return username != "" && a.usernames[username]
}

// Len returns the number of entries
func (a AdminList) Len() int {
	return len(a.ids) + len(a.usernames)
}
