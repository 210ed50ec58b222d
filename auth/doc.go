// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies the origin of inbound requests.

Every identity-bearing request carries Telegram Mini App init data in the
X-Telegram-Init-Data header. ValidateInitData checks the two-step HMAC
chain (the bot token keyed with "WebAppData" signs the sorted key=value
check string), rejects payloads older than MaxInitDataAge, and returns the
WebAppUser identity embedded in the payload:

	user, err := auth.ValidateInitData(r.Header.Get("X-Telegram-Init-Data"), cfg.BotToken)

The rest of the application treats (user.ID, user.DisplayName()) as
authenticated and never re-validates.
*/
package auth
