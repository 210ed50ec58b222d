// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the DayFinder API.

# Handler Types

Each handler is a struct holding the store, config, and (where it sends
messages) a notifier:

  - PollHandler: poll lifecycle (create, list, delete) and the admin dump
  - VotingHandler: vote submission and the caller's own vote
  - ResultsHandler: per-day tallies with best days

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(st, cfg, notifier)

# Authentication

Identity-bearing routes require signed Telegram Mini App init data in the
X-Telegram-Init-Data header; results are public by poll ID (the ID is the
share link secret). Admin routes additionally check the caller against
the configured admin IDs.

# Routes

	POST   /polls              → CreatePoll
	GET    /polls              → GetMyPolls (newest first, capped at 20)
	DELETE /polls/{id}         → DeletePoll (owner only)
	PUT    /polls/{id}/vote    → SubmitVote (create or edit in place)
	GET    /polls/{id}/vote    → GetMyVote
	GET    /polls/{id}/results → GetResults
	GET    /admin/dump         → Dump (admin IDs only)

# Notifications

Poll creation and deletion message the caller; a new or changed vote
messages the poll owner when the poll has notifications enabled. An
identical resubmission never notifies. All deliveries are best effort.
*/
package handlers
