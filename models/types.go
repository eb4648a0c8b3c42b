// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/danielhkuo/ballot-ledger/ballot"

// Caller headers
const (
	HeaderCaller      = "X-Caller"
	HeaderCallerToken = "X-Caller-Token"
)

// Request types

type CreateBallotRequest struct {
	Title             string   `json:"title"`
	Options           []string `json:"options"`
	ResultsRestricted bool     `json:"results_restricted"`
}

type EnrollRequest struct {
	Voter string `json:"voter"`
}

// OptionIndex is a pointer so a missing field can be told apart from 0.
type VoteRequest struct {
	OptionIndex *int `json:"option_index"`
}

type DelegateRequest struct {
	Delegate string `json:"delegate"`
}

// Response types

type CreateBallotResponse struct {
	BallotID ballot.ID `json:"ballot_id"`
	Creator  string    `json:"creator"`
}

// MutationResponse acknowledges a state change. Version is the ballot's
// mutation counter after the change.
type MutationResponse struct {
	BallotID ballot.ID `json:"ballot_id"`
	Version  uint64    `json:"version"`
}

type BallotSummary struct {
	ID                ballot.ID `json:"id"`
	Title             string    `json:"title"`
	Creator           string    `json:"creator"`
	Open              bool      `json:"open"`
	ResultsRestricted bool      `json:"results_restricted"`
	Options           []string  `json:"options"`
}

type OptionsResponse struct {
	BallotID ballot.ID `json:"ballot_id"`
	Options  []string  `json:"options"`
}

// Remaining and Delegate are only set for enrolled voters.
type VoterStatus struct {
	BallotID  ballot.ID `json:"ballot_id"`
	Voter     string    `json:"voter"`
	Enrolled  bool      `json:"enrolled"`
	Remaining *uint32   `json:"remaining,omitempty"`
	Delegate  *string   `json:"delegate,omitempty"`
}

type OptionResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Votes uint32 `json:"votes"`
}

// ResultsResponse lists votes per option position. Tally sums options that
// share the same text.
type ResultsResponse struct {
	BallotID ballot.ID         `json:"ballot_id"`
	Open     bool              `json:"open"`
	Options  []OptionResult    `json:"options"`
	Tally    map[string]uint32 `json:"tally"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
