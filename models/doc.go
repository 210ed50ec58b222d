// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models contains the DayFinder domain types and the request/response
shapes of the HTTP API.

# Domain Model

An Event is a scheduling poll: a fixed, ordered list of candidate days
(YYYY-MM-DD strings) plus the votes cast on them. Each participant holds at
most one EventVote per event, mapping every candidate day to a VoteType
(yes, no, or maybe). Resubmitting edits the existing record in place:

	created, changed, err := event.SubmitVote(userID, name, choices)

# Best-Day Selection

BestDays implements the aggregation the whole service exists for:

 1. Find the maximum yes count over all days. Zero means no best day.
 2. Keep the days with that yes count.
 3. Break ties by the maximum maybe count within the tied set.
 4. Days still tied are all winners; callers render each of them as best.

Ties are a first-class outcome, never resolved by day order.

# Invariants

  - Days is non-empty and duplicate-free (NewEvent dedups, first-seen order).
  - Every EventVote's choice keys equal Days exactly; SubmitVote rejects
    anything else with ErrDaysMismatch before mutating.
  - At most one EventVote per (event, user).

The tally methods (NumVotes, MaxVotes, BestDays) are pure queries and
recompute from scratch on every call; poll sizes are small enough that no
caching is warranted.
*/
package models
