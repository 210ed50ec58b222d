/*
DayFinder is a scheduling-poll service: an owner creates a poll with a set
of candidate days and shares a link; participants vote yes, no, or maybe
per day; the owner sees aggregated results with the best day(s)
highlighted.

The binary serves the HTTP API consumed by the Telegram Mini App frontend.
All poll state lives in an in-memory store that writes through to SQLite
or PostgreSQL so it survives restarts. Owner notifications go out through
the Telegram Bot API on a best-effort basis.

Run with a database, a public web URL for share links, and a bot token:

	dayfinder -d dayfinder.db -web-url https://dayfinder.example -p 8080

Secrets (BOT_TOKEN) are usually provided through the environment or a
.env file instead of flags.
*/
package main
