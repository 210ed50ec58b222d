// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify sends owners best-effort Telegram messages: the share link
after creating a poll, a heads-up when a vote arrives or changes, and a
confirmation after deletion.

Handlers depend on the Notifier interface and treat every failure as a
logged warning; a recipient who blocked the bot must never fail the
operation that triggered the message. Nop satisfies the interface for
tests.
*/
package notify
