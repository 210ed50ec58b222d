// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/danielhkuo/dayfinder/cliparse"
	"github.com/danielhkuo/dayfinder/middleware"
	"github.com/danielhkuo/dayfinder/models"
	"github.com/danielhkuo/dayfinder/store"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewResultsHandler(st *store.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg}
}

// GetResults handles GET /polls/{id}/results
// Public by poll ID: anyone holding the share link may see the tallies.
// Returns per-day yes/maybe/no counts with the best day(s) flagged.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	ev, err := h.store.GetEvent(pollID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "This poll does not exist (anymore)")
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load poll")
		return
	}

	best := ev.BestDays()
	days := make([]models.DayResult, 0, len(ev.Days))
	for _, day := range ev.Days {
		days = append(days, models.DayResult{
			Day:   day,
			Yes:   ev.NumVotes(day, models.VoteYes),
			Maybe: ev.NumVotes(day, models.VoteMaybe),
			No:    ev.NumVotes(day, models.VoteNo),
			Best:  slices.Contains(best, day),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:     ev.ID,
		Title:      ev.Title,
		Days:       days,
		BestDays:   best,
		VoterCount: len(ev.Votes),
	})
}
