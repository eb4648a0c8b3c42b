// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballot-ledger/auth"
	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/db"
	"github.com/danielhkuo/ballot-ledger/metrics"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/models"
)

// Ledger bundles what every handler needs. Store and Metrics may be nil.
type Ledger struct {
	Registry *ballot.Registry
	Store    *db.Store
	Metrics  *metrics.Recorder
}

var errInvalidBallotID = errors.New("invalid ballot id")

func ballotIDFromPath(r *http.Request) (ballot.ID, error) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, errInvalidBallotID
	}
	return ballot.ID(n), nil
}

// callerAccounts authenticates the X-Caller headers. A request without
// X-Caller yields no accounts and the ledger answers NO_CALLER.
func callerAccounts(r *http.Request, salt string) ([]ballot.Account, error) {
	return auth.Authenticate(
		ballot.Identity(r.Header.Get(models.HeaderCaller)),
		r.Header.Get(models.HeaderCallerToken),
		salt,
	)
}

// statusFor maps a ledger error code to an HTTP status.
func statusFor(code ballot.Code) int {
	switch code {
	case ballot.CodeNoCaller:
		return http.StatusUnauthorized
	case ballot.CodeBallotNotFound, ballot.CodeVoterNotFound:
		return http.StatusNotFound
	case ballot.CodeNotCreator, ballot.CodeVoterNotAllowed:
		return http.StatusForbidden
	case ballot.CodeBallotClosed, ballot.CodeNoAllowanceLeft:
		return http.StatusConflict
	case ballot.CodeOptionIndexOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail records and writes a ledger rejection.
func (l Ledger) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	l.Metrics.Observe(op, err)

	code := ballot.CodeOf(err)
	if code == "" {
		slog.Error("ballot operation failed",
			"request_id", middleware.RequestID(r.Context()), "operation", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	slog.Info("ballot operation rejected",
		"request_id", middleware.RequestID(r.Context()), "operation", op, "code", code, "error", err)
	middleware.CodedErrorResponse(w, statusFor(code), string(code), err.Error())
}

// unauthorized writes a 401 for a caller token that failed to verify.
func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	slog.Info("caller authentication failed",
		"request_id", middleware.RequestID(r.Context()),
		"caller", r.Header.Get(models.HeaderCaller),
		"error", err)
	middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
}

// persist saves the ballot's current snapshot when a store is configured and
// returns the version written.
func (l Ledger) persist(ctx context.Context, id ballot.ID) (uint64, error) {
	b, err := l.Registry.Get(id)
	if err != nil {
		return 0, err
	}
	snap := b.Snapshot()
	if l.Store == nil {
		return snap.Version, nil
	}
	if err := l.Store.Save(ctx, snap); err != nil {
		return 0, err
	}
	return snap.Version, nil
}

// committed records a successful mutation, persists it and writes the
// response. A failed save is reported as 500 even though the ballot changed
// in memory.
func (l Ledger) committed(w http.ResponseWriter, r *http.Request, op string, id ballot.ID, status int, body func(version uint64) any) {
	l.Metrics.Observe(op, nil)

	version, err := l.persist(r.Context(), id)
	if err != nil {
		slog.Error("failed to persist ballot",
			"request_id", middleware.RequestID(r.Context()), "operation", op, "ballot_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ballot updated but could not be saved")
		return
	}

	slog.Info("ballot updated", "operation", op, "ballot_id", id, "version", version)
	middleware.JSONResponse(w, status, body(version))
}

func mutation(id ballot.ID) func(uint64) any {
	return func(version uint64) any {
		return models.MutationResponse{BallotID: id, Version: version}
	}
}
