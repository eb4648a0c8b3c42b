// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"fmt"
)

// Code is a machine-readable reason for a ledger failure.
type Code string

const (
	CodeNoCaller              Code = "NO_CALLER"
	CodeBallotNotFound        Code = "BALLOT_NOT_FOUND"
	CodeNotCreator            Code = "NOT_CREATOR"
	CodeBallotClosed          Code = "BALLOT_CLOSED"
	CodeVoterNotAllowed       Code = "VOTER_NOT_ALLOWED"
	CodeVoterNotFound         Code = "VOTER_NOT_FOUND"
	CodeNoAllowanceLeft       Code = "NO_ALLOWANCE_LEFT"
	CodeOptionIndexOutOfRange Code = "OPTION_INDEX_OUT_OF_RANGE"
)

var messages = map[Code]string{
	CodeNoCaller:              "no caller identity supplied",
	CodeBallotNotFound:        "ballot not found",
	CodeNotCreator:            "caller is not the ballot creator",
	CodeBallotClosed:          "ballot is closed",
	CodeVoterNotAllowed:       "voter is not enrolled",
	CodeVoterNotFound:         "voter not found",
	CodeNoAllowanceLeft:       "no allowance left",
	CodeOptionIndexOutOfRange: "option index out of range",
}

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrNoCaller              = &Error{Code: CodeNoCaller}
	ErrBallotNotFound        = &Error{Code: CodeBallotNotFound}
	ErrNotCreator            = &Error{Code: CodeNotCreator}
	ErrBallotClosed          = &Error{Code: CodeBallotClosed}
	ErrVoterNotAllowed       = &Error{Code: CodeVoterNotAllowed}
	ErrVoterNotFound         = &Error{Code: CodeVoterNotFound}
	ErrNoAllowanceLeft       = &Error{Code: CodeNoAllowanceLeft}
	ErrOptionIndexOutOfRange = &Error{Code: CodeOptionIndexOutOfRange}
)

// Error is the single error kind returned by the ledger.
type Error struct {
	Code   Code
	Ballot ID
	// Identity is the voter or caller the failure refers to, if any.
	Identity Identity
	Option   int
	hasID    bool
}

func newError(code Code, id ID) *Error {
	return &Error{Code: code, Ballot: id, hasID: true}
}

func (e *Error) withIdentity(identity Identity) *Error {
	e.Identity = identity
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := messages[e.Code]
	if msg == "" {
		msg = string(e.Code)
	}
	switch {
	case e.Code == CodeOptionIndexOutOfRange && e.hasID:
		return fmt.Sprintf("ballot %d: %s: %d", e.Ballot, msg, e.Option)
	case e.Identity != "" && e.hasID:
		return fmt.Sprintf("ballot %d: %s: %s", e.Ballot, msg, e.Identity)
	case e.hasID:
		return fmt.Sprintf("ballot %d: %s", e.Ballot, msg)
	}
	return msg
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
