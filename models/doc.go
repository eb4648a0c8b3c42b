// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - CreateBallotRequest: title, options, results_restricted
  - EnrollRequest: voter
  - VoteRequest: option_index
  - DelegateRequest: delegate

# Response Types

  - CreateBallotResponse: ballot_id, creator
  - MutationResponse: ballot_id, version
  - BallotSummary: id, title, creator, open, results_restricted, options
  - OptionsResponse: ballot_id, options
  - VoterStatus: enrolled, plus remaining and delegate for enrolled voters
  - ResultsResponse: per-position votes and a tally by option text
  - ErrorResponse: error, message, code

Ledger failures carry the ledger error code (for example BALLOT_CLOSED) in
ErrorResponse.Code so clients need not parse messages.

# Headers

Callers identify themselves with X-Caller and prove it with X-Caller-Token
(see package auth).
*/
package models
