// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates callers before requests reach the ledger.

# Caller Tokens

Caller tokens use HMAC-SHA256 over the identity:

	token := auth.GenerateCallerToken("alice", salt)
	err := auth.ValidateCallerToken("alice", token, salt)

The token is URL-safe base64 encoded without padding. Since it's
deterministic, the same identity and salt always produce the same token, so
nothing is stored. Operators hand tokens out with `ballotd token <identity>`.

# Accounts

Authenticate converts the presented identity and token into the account list
the ledger takes:

	accounts, err := auth.Authenticate(identity, token, salt)

A request with no identity yields an empty list, which the ledger answers
with NO_CALLER for operations that need one.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving request logs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
