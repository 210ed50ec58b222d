// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// VoteType is the closed set of per-day vote values. The string form is
// stable and used for both JSON and the durable snapshot.
type VoteType string

const (
	VoteYes   VoteType = "yes"
	VoteNo    VoteType = "no"
	VoteMaybe VoteType = "maybe"
)

// Valid reports whether v is one of the three known vote types.
func (v VoteType) Valid() bool {
	switch v {
	case VoteYes, VoteNo, VoteMaybe:
		return true
	}
	return false
}

var (
	ErrNoDays       = errors.New("event needs at least one candidate day")
	ErrDaysMismatch = errors.New("choices do not match the event's candidate days")
	ErrBadVoteType  = errors.New("invalid vote type")
)

// EventVote is one participant's per-day choices for one event.
// There is at most one EventVote per (event, user); a resubmission by the
// same user edits the existing record in place.
type EventVote struct {
	UserID    int64               `json:"user_id"`
	UserName  string              `json:"user_name"`
	Choices   map[string]VoteType `json:"choices"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Event is a scheduling poll: a fixed, ordered list of candidate days
// (YYYY-MM-DD) that participants vote on.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	OwnerID     int64        `json:"owner_id"`
	Days        []string     `json:"days"`
	Notify      bool         `json:"notify"`
	Votes       []*EventVote `json:"votes"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewEvent builds an event with a fresh ID. Duplicate days are dropped,
// keeping first-seen order; an empty day list after dedup is rejected.
func NewEvent(title, description string, days []string, notify bool, ownerID int64) (*Event, error) {
	days = dedupDays(days)
	if len(days) == 0 {
		return nil, ErrNoDays
	}
	return &Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Days:        days,
		Notify:      notify,
		CreatedAt:   time.Now(),
	}, nil
}

func dedupDays(days []string) []string {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Vote returns the user's existing vote record, or nil if the user has not
// voted on this event.
func (e *Event) Vote(userID int64) *EventVote {
	for _, v := range e.Votes {
		if v.UserID == userID {
			return v
		}
	}
	return nil
}

// NumVotes counts the votes on day whose choice is one of types. With no
// types given, every vote is counted. Day must be one of e.Days; unknown
// days always count zero.
func (e *Event) NumVotes(day string, types ...VoteType) int {
	n := 0
	for _, v := range e.Votes {
		choice, ok := v.Choices[day]
		if !ok {
			continue
		}
		if len(types) == 0 || slices.Contains(types, choice) {
			n++
		}
	}
	return n
}

// MaxVotes returns the maximum NumVotes over all candidate days.
func (e *Event) MaxVotes(types ...VoteType) int {
	most := 0
	for _, day := range e.Days {
		if n := e.NumVotes(day, types...); n > most {
			most = n
		}
	}
	return most
}

// BestDays returns the most suitable days for the event: the days with the
// largest number of yes votes. If several days tie on yes votes, the ones
// with the largest number of maybe votes among them win. Remaining ties are
// all returned, in candidate-day order; rendering every co-winner as "best"
// is intended. With no yes votes anywhere there is no best day and the
// result is empty.
func (e *Event) BestDays() []string {
	maxYes := e.MaxVotes(VoteYes)
	if maxYes == 0 {
		return nil
	}

	var best []string
	for _, day := range e.Days {
		if e.NumVotes(day, VoteYes) == maxYes {
			best = append(best, day)
		}
	}
	if len(best) == 1 {
		// Just one best day, no tie-break needed.
		return best
	}

	// max maybe count must be taken over the tied set, not all days
	maxMaybe := 0
	for _, day := range best {
		if n := e.NumVotes(day, VoteMaybe); n > maxMaybe {
			maxMaybe = n
		}
	}
	out := make([]string, 0, len(best))
	for _, day := range best {
		if e.NumVotes(day, VoteMaybe) == maxMaybe {
			out = append(out, day)
		}
	}
	return out
}

// SubmitVote records or edits the user's vote. The choice keys must match
// e.Days exactly; anything else is rejected before any state changes.
// For an existing record the choices are overwritten in place, preserving
// the record's identity and creation time. The returned flags report
// whether a new record was created and whether the stored choices actually
// differ from what was there before (an identical resubmission is a no-op
// for notification purposes).
func (e *Event) SubmitVote(userID int64, userName string, choices map[string]VoteType) (created, changed bool, err error) {
	if err := e.validateChoices(choices); err != nil {
		return false, false, err
	}

	now := time.Now()
	if existing := e.Vote(userID); existing != nil {
		changed = !maps.Equal(existing.Choices, choices)
		existing.Choices = choices
		existing.UpdatedAt = now
		return false, changed, nil
	}

	e.Votes = append(e.Votes, &EventVote{
		UserID:    userID,
		UserName:  userName,
		Choices:   choices,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return true, true, nil
}

func (e *Event) validateChoices(choices map[string]VoteType) error {
	if len(choices) != len(e.Days) {
		return ErrDaysMismatch
	}
	for _, day := range e.Days {
		choice, ok := choices[day]
		if !ok {
			return ErrDaysMismatch
		}
		if !choice.Valid() {
			return fmt.Errorf("%w: %q", ErrBadVoteType, string(choice))
		}
	}
	return nil
}

// Clone returns a deep copy of the event. The store hands clones to
// read-only callers so they never observe a concurrent mutation.
func (e *Event) Clone() *Event {
	c := *e
	c.Days = slices.Clone(e.Days)
	c.Votes = make([]*EventVote, len(e.Votes))
	for i, v := range e.Votes {
		vc := *v
		vc.Choices = maps.Clone(v.Choices)
		c.Votes[i] = &vc
	}
	return &c
}
