// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/handlers"
	"github.com/danielhkuo/ballot-ledger/middleware"
)

func NewRouter(ledger handlers.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	logged := middleware.WithLogging(cfg.IPHashSalt)

	// Initialize handlers
	ballotHandler := handlers.NewBallotHandler(ledger, cfg)
	voterHandler := handlers.NewVoterHandler(ledger, cfg)
	votingHandler := handlers.NewVotingHandler(ledger, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.MetricsEnabled && ledger.Metrics != nil {
		mux.Handle("GET /metrics", ledger.Metrics.Handler())
	}

	// Ballot lifecycle
	mux.HandleFunc("POST /ballots", logged(ballotHandler.CreateBallot))
	mux.HandleFunc("GET /ballots/{id}", logged(ballotHandler.GetBallot))
	mux.HandleFunc("GET /ballots/{id}/options", logged(ballotHandler.GetOptions))
	mux.HandleFunc("POST /ballots/{id}/close", logged(ballotHandler.CloseBallot))
	mux.HandleFunc("GET /ballots/{id}/results", logged(ballotHandler.GetResults))

	// Roster (creator only, except lookups)
	mux.HandleFunc("POST /ballots/{id}/voters", logged(voterHandler.Enroll))
	mux.HandleFunc("DELETE /ballots/{id}/voters/{voter}", logged(voterHandler.Revoke))
	mux.HandleFunc("GET /ballots/{id}/voters/{voter}", logged(voterHandler.GetVoter))

	// Spending allowance
	mux.HandleFunc("POST /ballots/{id}/votes", logged(votingHandler.Vote))
	mux.HandleFunc("POST /ballots/{id}/delegations", logged(votingHandler.Delegate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-ledger API v1"))
	})

	return mux
}
