// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/models"
)

// VotingHandler spends allowance, either on an option or by handing it to
// another identity.
type VotingHandler struct {
	ledger Ledger
	cfg    cliparse.Config
}

func NewVotingHandler(ledger Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{ledger: ledger, cfg: cfg}
}

// Vote handles POST /ballots/{id}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_index is required")
		return
	}

	callers, err := callerAccounts(r, h.cfg.CallerKeySalt)
	if err != nil {
		unauthorized(w, r, err)
		return
	}

	if err := h.ledger.Registry.Vote(id, callers, *req.OptionIndex); err != nil {
		h.ledger.fail(w, r, "vote", err)
		return
	}

	h.ledger.committed(w, r, "vote", id, http.StatusCreated, mutation(id))
}

// Delegate handles POST /ballots/{id}/delegations
// The delegate need not be enrolled; it gains a roster entry.
func (h *VotingHandler) Delegate(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.DelegateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Delegate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "delegate is required")
		return
	}

	callers, err := callerAccounts(r, h.cfg.CallerKeySalt)
	if err != nil {
		unauthorized(w, r, err)
		return
	}

	if err := h.ledger.Registry.Delegate(id, ballot.Identity(req.Delegate), callers); err != nil {
		h.ledger.fail(w, r, "delegate", err)
		return
	}

	h.ledger.committed(w, r, "delegate", id, http.StatusCreated, mutation(id))
}
