// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth decides who may run privileged commands and verifies webhook calls.

# Administrators

Privileged commands (/results, /clear, /remove) are limited to an allow-list
read from configuration:

	admins, err := auth.ParseAdminList("12345, @vtamarin")
	if admins.Allows(userID, username) { ... }

Entries are numeric user ids or @usernames (case-insensitive).

# Webhook Secrets

Telegram echoes a secret token in the X-Telegram-Bot-Api-Secret-Token header
of every webhook call. When none is configured it is derived with
HMAC-SHA256 from the bot token and a salt:

	secret := auth.GenerateWebhookSecret(botToken, salt)
	err := auth.ValidateWebhookSecret(r.Header.Get(...), secret)

The result is URL-safe base64 without padding, which fits the character set
Telegram accepts. Comparison is constant time.
*/
package auth
