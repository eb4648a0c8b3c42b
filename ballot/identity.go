// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

// Identity names a participant. The ledger treats it as an opaque value.
type Identity string

// Account is an identity as presented by the host for a single call.
// IsSigner is set by the host once it has authenticated the identity;
// the ledger trusts it and performs no verification of its own.
type Account struct {
	Key      Identity
	IsSigner bool
}

// Signer returns an authenticated account for id.
func Signer(id Identity) Account {
	return Account{Key: id, IsSigner: true}
}

// callerOf returns the acting identity: the first account, which must be
// a signer.
func callerOf(accounts []Account) (Identity, bool) {
	if len(accounts) == 0 || !accounts[0].IsSigner {
		return "", false
	}
	return accounts[0].Key, true
}
