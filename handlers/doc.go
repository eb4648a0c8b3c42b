// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot ledger API.

# Handler Types

Each handler is a struct holding the shared Ledger and the config:

  - BallotHandler: create, summary, options, close, results
  - VoterHandler: enroll, revoke, roster lookup
  - VotingHandler: vote, delegate

Handlers are created from a Ledger:

	ledger := handlers.Ledger{Registry: reg, Store: store, Metrics: rec}
	ballotHandler := handlers.NewBallotHandler(ledger, cfg)

Store and Metrics are optional. Without a store the ledger lives only in
memory.

# Callers

Operations that act on behalf of someone read X-Caller and X-Caller-Token.
A missing X-Caller leaves the ledger without a caller and it answers
NO_CALLER (401). A token that does not match the identity is rejected with
401 before the ledger is consulted.

# Routes

	POST   /ballots                      → CreateBallot
	GET    /ballots/{id}                 → GetBallot
	GET    /ballots/{id}/options         → GetOptions
	POST   /ballots/{id}/voters          → Enroll (creator only)
	DELETE /ballots/{id}/voters/{voter}  → Revoke (creator only)
	GET    /ballots/{id}/voters/{voter}  → GetVoter
	POST   /ballots/{id}/votes           → Vote
	POST   /ballots/{id}/delegations     → Delegate
	POST   /ballots/{id}/close           → CloseBallot (creator only)
	GET    /ballots/{id}/results         → GetResults

# Errors

Ledger failures are answered with their code in the JSON body:

	NO_CALLER                  401
	BALLOT_NOT_FOUND           404
	NOT_CREATOR                403
	VOTER_NOT_ALLOWED          403
	VOTER_NOT_FOUND            404
	BALLOT_CLOSED              409
	NO_ALLOWANCE_LEFT          409
	OPTION_INDEX_OUT_OF_RANGE  400

# Persistence

After every successful mutation the ballot's snapshot is saved. If the save
fails the response is 500, but the change already applied in memory stays.
The store ignores snapshots older than the one it holds, so concurrent saves
converge on the latest version.
*/
package handlers
