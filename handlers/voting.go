// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dayfinder/cliparse"
	"github.com/danielhkuo/dayfinder/middleware"
	"github.com/danielhkuo/dayfinder/models"
	"github.com/danielhkuo/dayfinder/notify"
	"github.com/danielhkuo/dayfinder/store"
)

type VotingHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewVotingHandler(st *store.Store, cfg cliparse.Config, notifier notify.Notifier) *VotingHandler {
	return &VotingHandler{store: st, cfg: cfg, notifier: notifier}
}

// SubmitVote handles PUT /polls/{id}/vote
// Creates the caller's vote record, or edits it in place on resubmission.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	user, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Choices) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choices cannot be empty")
		return
	}

	created, changed, err := h.store.SubmitVote(pollID, user.ID, user.DisplayName(), req.Choices)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "This poll does not exist (anymore)")
		return
	}
	if errors.Is(err, models.ErrDaysMismatch) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Days do not match the days of the poll")
		return
	}
	if errors.Is(err, models.ErrBadVoteType) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Votes must be yes, no, or maybe")
		return
	}

	resp := models.SubmitVoteResponse{
		Created: created,
		Changed: changed,
		Message: "Vote updated",
	}
	if created {
		resp.Message = "Vote recorded"
	}
	if err != nil {
		slog.Error("durable write failed for vote", "poll_id", pollID, "user_id", user.ID, "error", err)
		resp.Warning = "Vote recorded, but saving to durable storage failed"
	}

	slog.Info("vote submitted", "poll_id", pollID, "user_id", user.ID, "created", created, "changed", changed)

	// Only notify the owner when the poll asks for it and the choices
	// actually changed; an identical resubmission stays silent.
	if changed {
		if ev, gerr := h.store.GetEvent(pollID); gerr == nil && ev.Notify {
			kind := "Edited"
			if created {
				kind = "New"
			}
			text := fmt.Sprintf("%s vote on your poll %q by %s!\n\n"+
				"You can view the results of your polls at any time from the poll list.",
				kind, ev.Title, user.DisplayName())
			if nerr := h.notifier.SendMessage(r.Context(), ev.OwnerID, text); nerr != nil {
				// Owner probably blocked the bot, this is fine.
				slog.Warn("could not send vote notification", "owner_id", ev.OwnerID, "error", nerr)
			}
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, resp)
}

// GetMyVote handles GET /polls/{id}/vote
// Returns the caller's existing choices (empty when they have not voted)
// along with the results link.
func (h *VotingHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	user, ok := authenticate(w, r, h.cfg)
	if !ok {
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

	resp := models.MyVoteResponse{
		ResultsURL: h.cfg.WebURL + "/results?poll_id=" + ev.ID,
		Choices:    map[string]models.VoteType{},
	}
	if vote := ev.Vote(user.ID); vote != nil {
		resp.Choices = vote.Choices
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
