// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/dayfinder/cliparse"
	"github.com/danielhkuo/dayfinder/handlers"
	"github.com/danielhkuo/dayfinder/middleware"
	"github.com/danielhkuo/dayfinder/notify"
	"github.com/danielhkuo/dayfinder/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config, notifier notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st, cfg, notifier)
	votingHandler := handlers.NewVotingHandler(st, cfg, notifier)
	resultsHandler := handlers.NewResultsHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management (owner operations)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.GetMyPolls))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Voting operations
	mux.HandleFunc("PUT /polls/{id}/vote", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{id}/vote", middleware.WithLogging(votingHandler.GetMyVote))

	// Results (public via share link)
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Admin
	mux.HandleFunc("GET /admin/dump", middleware.WithLogging(pollHandler.Dump))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dayfinder API v1"))
	})

	return mux
}
