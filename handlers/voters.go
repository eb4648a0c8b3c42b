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

// VoterHandler manages a ballot's roster.
type VoterHandler struct {
	ledger Ledger
	cfg    cliparse.Config
}

func NewVoterHandler(ledger Ledger, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{ledger: ledger, cfg: cfg}
}

// Enroll handles POST /ballots/{id}/voters
// Re-enrolling a voter resets their allowance to one.
func (h *VoterHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.EnrollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Voter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter is required")
		return
	}

	callers, err := callerAccounts(r, h.cfg.CallerKeySalt)
	if err != nil {
		unauthorized(w, r, err)
		return
	}

	if err := h.ledger.Registry.Enroll(id, ballot.Identity(req.Voter), callers); err != nil {
		h.ledger.fail(w, r, "enroll", err)
		return
	}

	h.ledger.committed(w, r, "enroll", id, http.StatusCreated, mutation(id))
}

// Revoke handles DELETE /ballots/{id}/voters/{voter}
func (h *VoterHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	callers, err := callerAccounts(r, h.cfg.CallerKeySalt)
	if err != nil {
		unauthorized(w, r, err)
		return
	}

	voter := ballot.Identity(r.PathValue("voter"))
	if err := h.ledger.Registry.Revoke(id, voter, callers); err != nil {
		h.ledger.fail(w, r, "revoke", err)
		return
	}

	h.ledger.committed(w, r, "revoke", id, http.StatusOK, mutation(id))
}

// GetVoter handles GET /ballots/{id}/voters/{voter}
// Anyone may ask whether an identity is enrolled.
func (h *VoterHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.ledger.Registry.Get(id)
	if err != nil {
		h.ledger.fail(w, r, "voter", err)
		return
	}

	voter := ballot.Identity(r.PathValue("voter"))
	status := models.VoterStatus{BallotID: id, Voter: string(voter)}
	if v, ok := b.Voter(voter); ok {
		status.Enrolled = true
		status.Remaining = &v.Remaining
		if v.Delegate != nil {
			d := string(*v.Delegate)
			status.Delegate = &d
		}
	}
	h.ledger.Metrics.Observe("voter", nil)

	middleware.JSONResponse(w, http.StatusOK, status)
}
