// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/models"
)

type BallotHandler struct {
	ledger Ledger
	cfg    cliparse.Config
}

func NewBallotHandler(ledger Ledger, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{ledger: ledger, cfg: cfg}
}

// CreateBallot handles POST /ballots
func (h *BallotHandler) CreateBallot(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	callers, err := callerAccounts(r, h.cfg.CallerKeySalt)
	if err != nil {
		unauthorized(w, r, err)
		return
	}

	id, err := h.ledger.Registry.Create(req.Title, req.Options, req.ResultsRestricted, callers)
	if err != nil {
		h.ledger.fail(w, r, "create", err)
		return
	}
	h.ledger.Metrics.BallotCreated()

	creator := string(callers[0].Key)
	slog.Info("ballot created", "ballot_id", id, "creator", creator, "options", len(req.Options))

	h.ledger.committed(w, r, "create", id, http.StatusCreated, func(uint64) any {
		return models.CreateBallotResponse{BallotID: id, Creator: creator}
	})
}

// GetBallot handles GET /ballots/{id}
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.ledger.Registry.Get(id)
	if err != nil {
		h.ledger.fail(w, r, "get", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotSummary{
		ID:                b.ID(),
		Title:             b.Title(),
		Creator:           string(b.Creator()),
		Open:              b.IsOpen(),
		ResultsRestricted: b.Restricted(),
		Options:           b.Options(),
	})
}

// GetOptions handles GET /ballots/{id}/options
func (h *BallotHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	id, err := ballotIDFromPath(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	options, err := h.ledger.Registry.Options(id)
	if err != nil {
		h.ledger.fail(w, r, "options", err)
		return
	}
	h.ledger.Metrics.Observe("options", nil)

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{BallotID: id, Options: options})
}

// CloseBallot handles POST /ballots/{id}/close
// Only the creator may close; closing twice succeeds.
func (h *BallotHandler) CloseBallot(w http.ResponseWriter, r *http.Request) {
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

	if err := h.ledger.Registry.Close(id, callers); err != nil {
		h.ledger.fail(w, r, "close", err)
		return
	}

	h.ledger.committed(w, r, "close", id, http.StatusOK, mutation(id))
}

// GetResults handles GET /ballots/{id}/results
// Restricted ballots only answer enrolled callers, open or closed.
func (h *BallotHandler) GetResults(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.ledger.Registry.Results(id, callers)
	if err != nil {
		h.ledger.fail(w, r, "results", err)
		return
	}
	h.ledger.Metrics.Observe("results", nil)

	b, err := h.ledger.Registry.Get(id)
	if err != nil {
		h.ledger.fail(w, r, "results", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resultsResponse(b, res))
}

func resultsResponse(b *ballot.Ballot, res ballot.Results) models.ResultsResponse {
	options := b.Options()
	out := models.ResultsResponse{
		BallotID: b.ID(),
		Open:     b.IsOpen(),
		Options:  make([]models.OptionResult, len(options)),
		Tally:    res.Tally,
	}
	for i, text := range options {
		out.Options[i] = models.OptionResult{Index: i, Text: text, Votes: res.Votes(i)}
	}
	return out
}
