// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "fmt"

// Snapshot is a detached copy of a ballot's full state, used by hosts that
// persist the ledger.
type Snapshot struct {
	ID         ID                 `json:"id"`
	Title      string             `json:"title"`
	Options    []string           `json:"options"`
	Tally      map[int]uint32     `json:"tally"`
	Creator    Identity           `json:"creator"`
	Voters     map[Identity]Voter `json:"voters"`
	Restricted bool               `json:"results_restricted"`
	Open       bool               `json:"open"`
	// Version increases with every successful mutation of the ballot.
	Version uint64 `json:"version"`
}

// Snapshot copies the ballot's state.
func (b *Ballot) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		ID:         b.id,
		Title:      b.title,
		Options:    append([]string(nil), b.options...),
		Tally:      make(map[int]uint32, len(b.tally)),
		Creator:    b.creator,
		Voters:     make(map[Identity]Voter, len(b.voters)),
		Restricted: b.restricted,
		Open:       b.open,
		Version:    b.version,
	}
	for i, n := range b.tally {
		s.Tally[i] = n
	}
	for id, v := range b.voters {
		s.Voters[id] = v.clone()
	}
	return s
}

func restoreBallot(s Snapshot) (*Ballot, error) {
	for i := range s.Tally {
		if i < 0 || i >= len(s.Options) {
			return nil, fmt.Errorf("ballot %d: tally references option %d of %d", s.ID, i, len(s.Options))
		}
	}

	b := newBallot(s.ID, s.Title, s.Options, s.Restricted, s.Creator)
	b.open = s.Open
	b.version = s.Version
	for i, n := range s.Tally {
		b.tally[i] = n
	}
	for id, v := range s.Voters {
		b.voters[id] = v.clone()
	}
	return b, nil
}
