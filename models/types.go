// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Days        []string `json:"days"`
	Notify      bool     `json:"notify"`
}

type SubmitVoteRequest struct {
	Choices map[string]VoteType `json:"choices"`
}

// Response types

type CreatePollResponse struct {
	PollID   string `json:"poll_id"`
	ShareURL string `json:"share_url"`
	Warning  string `json:"warning,omitempty"`
}

type SubmitVoteResponse struct {
	Created bool   `json:"created"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type MyVoteResponse struct {
	ResultsURL string              `json:"results_url"`
	Choices    map[string]VoteType `json:"choices"`
}

type DeletePollResponse struct {
	Message string `json:"message"`
}

// DayResult is one row of a results view: the vote tallies for a single
// candidate day. Best marks the day(s) the aggregation picked as winners.
type DayResult struct {
	Day   string `json:"day"`
	Yes   int    `json:"yes"`
	Maybe int    `json:"maybe"`
	No    int    `json:"no"`
	Best  bool   `json:"best"`
}

type ResultsResponse struct {
	PollID     string      `json:"poll_id"`
	Title      string      `json:"title"`
	Days       []DayResult `json:"days"`
	BestDays   []string    `json:"best_days"`
	VoterCount int         `json:"voter_count"`
}

// PollSummary is a compact listing entry for an owner's polls.
type PollSummary struct {
	PollID     string    `json:"poll_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedAgo string    `json:"created_ago"`
	VoterCount int       `json:"voter_count"`
	ResultsURL string    `json:"results_url"`
}

type ListPollsResponse struct {
	Polls     []PollSummary `json:"polls"`
	Truncated bool          `json:"truncated"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
