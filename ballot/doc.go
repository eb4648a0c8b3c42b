// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot implements the in-memory ballot ledger.

# Ballots

A Ballot has a title, a fixed option list, a creator, a roster of voters and
a tally. It starts open and can only be closed, never reopened:

	reg := ballot.NewRegistry()
	id, err := reg.Create("Lunch", []string{"Pizza", "Tacos"}, false,
		[]ballot.Account{ballot.Signer("alice")})

The creator enrolls voters. Each enrollment grants exactly one casting right
("allowance"); enrolling an identity again resets it to one:

	err = reg.Enroll(id, "bob", []ballot.Account{ballot.Signer("alice")})
	err = reg.Vote(id, []ballot.Account{ballot.Signer("bob")}, 0)

# Delegation

A voter may hand one unit of allowance to any identity. The receiver gets a
roster entry if it had none. Only the single hop is recorded:

	err = reg.Delegate(id, "carol", []ballot.Account{ballot.Signer("bob")})

# Callers

Every call that acts on behalf of someone takes the accounts supplied by the
host. The first account is the caller and must have IsSigner set; the
ledger performs no authentication itself.

# Results

Results returns a copy of the tally. Ballots created with results
restricted only show it to identities on the roster. Reading is allowed
whether or not the ballot is open.

# Errors

Every failure is an *Error with a Code. Use errors.Is against the
package sentinels:

	if errors.Is(err, ballot.ErrBallotClosed) {
		// ...
	}

# Concurrency

Registry and Ballot are safe for concurrent use. Operations on one ballot
are serialized by that ballot's lock; different ballots proceed in
parallel.
*/
package ballot
