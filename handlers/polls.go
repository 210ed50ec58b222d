// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dayfinder/auth"
	"github.com/danielhkuo/dayfinder/cliparse"
	"github.com/danielhkuo/dayfinder/middleware"
	"github.com/danielhkuo/dayfinder/models"
	"github.com/danielhkuo/dayfinder/notify"
	"github.com/danielhkuo/dayfinder/store"
)

// InitDataHeader carries the signed Telegram Mini App init data on every
// identity-bearing request.
const InitDataHeader = "X-Telegram-Init-Data"

// maxListedPolls caps the owner's poll listing to the most recent entries.
const maxListedPolls = 20

// authenticate verifies the request's init data and returns the caller.
// On failure it writes the error response and returns ok=false.
func authenticate(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (auth.WebAppUser, bool) {
	user, err := auth.ValidateInitData(r.Header.Get(InitDataHeader), cfg.BotToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredInitData) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Init data is too old")
		} else {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid init data")
		}
		return auth.WebAppUser{}, false
	}
	return user, true
}

type PollHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewPollHandler(st *store.Store, cfg cliparse.Config, notifier notify.Notifier) *PollHandler {
	return &PollHandler{store: st, cfg: cfg, notifier: notifier}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Days) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "days is required")
		return
	}
	for _, day := range req.Days {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid day "+day+" (want YYYY-MM-DD)")
			return
		}
	}

	ev, err := h.store.CreateEvent(req.Title, req.Description, req.Days, req.Notify, user.ID)
	if errors.Is(err, models.ErrNoDays) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "days is required")
		return
	}

	resp := models.CreatePollResponse{
		PollID:   ev.ID,
		ShareURL: h.cfg.WebURL + "/vote?poll_id=" + ev.ID,
	}
	if err != nil {
		// The in-memory store already holds the poll; warn instead of fail.
		slog.Error("durable write failed for new poll", "poll_id", ev.ID, "error", err)
		resp.Warning = "Poll created, but saving to durable storage failed"
	}

	slog.Info("poll created", "poll_id", ev.ID, "owner_id", user.ID, "days", len(ev.Days))

	text := fmt.Sprintf("Created new poll %q!\n\n"+
		"You can share the link to the poll with your friends:\n%s\n\n"+
		"Use the poll list to view the results of your polls at any time.",
		ev.Title, resp.ShareURL)
	if nerr := h.notifier.SendMessage(r.Context(), user.ID, text); nerr != nil {
		slog.Warn("could not send creation message", "owner_id", user.ID, "error", nerr)
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetMyPolls handles GET /polls
// Lists the authenticated owner's polls, newest first, capped at 20.
func (h *PollHandler) GetMyPolls(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	events := h.store.EventsByOwner(user.ID)
	truncated := len(events) > maxListedPolls
	if truncated {
		events = events[:maxListedPolls]
	}

	polls := make([]models.PollSummary, 0, len(events))
	for _, ev := range events {
		polls = append(polls, models.PollSummary{
			PollID:     ev.ID,
			Title:      ev.Title,
			CreatedAt:  ev.CreatedAt,
			CreatedAgo: humanize.Time(ev.CreatedAt),
			VoterCount: len(ev.Votes),
			ResultsURL: h.cfg.WebURL + "/results?poll_id=" + ev.ID,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPollsResponse{
		Polls:     polls,
		Truncated: truncated,
	})
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	user, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}

	ev, err := h.store.DeleteEvent(pollID, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "This poll does not exist (anymore)")
		return
	}
	if errors.Is(err, store.ErrNotOwner) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You are not the owner of this poll")
		return
	}
	if err != nil {
		slog.Error("durable delete failed", "poll_id", pollID, "error", err)
	}

	slog.Info("poll deleted", "poll_id", pollID, "owner_id", user.ID)

	text := fmt.Sprintf("Deleted poll %q.", ev.Title)
	if nerr := h.notifier.SendMessage(r.Context(), user.ID, text); nerr != nil {
		slog.Warn("could not send deletion message", "owner_id", user.ID, "error", nerr)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeletePollResponse{
		Message: "Poll deleted",
	})
}

// Dump handles GET /admin/dump
// Returns the full store contents; restricted to configured admin IDs.
func (h *PollHandler) Dump(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticate(w, r, h.cfg)
	if !ok {
		return
	}
	if !h.cfg.IsAdmin(user.ID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin access required")
		return
	}

	slog.Info("store dump requested", "admin_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, h.store.Dump())
}
