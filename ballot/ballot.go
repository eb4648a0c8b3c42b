// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "sync"

// ID identifies a ballot within a registry.
type ID uint32

// Voter is a roster entry: the casting rights an identity still holds and
// the identity it last delegated to.
type Voter struct {
	Remaining uint32    `json:"remaining"`
	Delegate  *Identity `json:"delegate,omitempty"`
}

func (v Voter) clone() Voter {
	if v.Delegate != nil {
		d := *v.Delegate
		v.Delegate = &d
	}
	return v
}

// Results is a point-in-time copy of a ballot's tally.
type Results struct {
	// Tally maps option text to votes. Options sharing the same text are
	// summed here; Positions keeps them apart.
	Tally map[string]uint32 `json:"tally"`
	// Positions maps option index to votes, for options voted at least once.
	Positions map[int]uint32 `json:"positions"`
}

// Votes returns the count for the option at index i.
func (r Results) Votes(i int) uint32 {
	return r.Positions[i]
}

// Ballot is one votable proposal. All methods are safe for concurrent use;
// every check and the mutation it guards run under the ballot's lock.
type Ballot struct {
	mu sync.Mutex

	id         ID
	title      string
	options    []string
	tally      map[int]uint32
	creator    Identity
	voters     map[Identity]Voter
	restricted bool
	open       bool
	version    uint64
}

func newBallot(id ID, title string, options []string, restricted bool, creator Identity) *Ballot {
	return &Ballot{
		id:         id,
		title:      title,
		options:    append([]string(nil), options...),
		tally:      make(map[int]uint32),
		creator:    creator,
		voters:     make(map[Identity]Voter),
		restricted: restricted,
		open:       true,
	}
}

func (b *Ballot) ID() ID { return b.id }

func (b *Ballot) Title() string { return b.title }

func (b *Ballot) Creator() Identity { return b.creator }

// Restricted reports whether results are visible to enrolled identities only.
func (b *Ballot) Restricted() bool { return b.restricted }

// IsOpen reports whether the ballot still accepts mutations.
func (b *Ballot) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Options returns a copy of the option list in creation order.
func (b *Ballot) Options() []string {
	return append([]string(nil), b.options...)
}

// Enroll grants voter a single casting right, replacing any entry it had.
// Allowance previously received through delegation is discarded.
func (b *Ballot) Enroll(voter, caller Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if caller != b.creator {
		return newError(CodeNotCreator, b.id).withIdentity(caller)
	}
	if !b.open {
		return newError(CodeBallotClosed, b.id)
	}

	b.voters[voter] = Voter{Remaining: 1}
	b.version++
	return nil
}

// Revoke removes voter from the roster. Its remaining allowance is dropped.
func (b *Ballot) Revoke(voter, caller Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if caller != b.creator {
		return newError(CodeNotCreator, b.id).withIdentity(caller)
	}
	if !b.open {
		return newError(CodeBallotClosed, b.id)
	}
	if _, ok := b.voters[voter]; !ok {
		return newError(CodeVoterNotFound, b.id).withIdentity(voter)
	}

	delete(b.voters, voter)
	b.version++
	return nil
}

// IsEnrolled reports whether voter has a roster entry, including entries
// created by receiving a delegation.
func (b *Ballot) IsEnrolled(voter Identity) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.voters[voter]
	return ok
}

// Voter returns a copy of voter's roster entry.
func (b *Ballot) Voter(voter Identity) (Voter, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.voters[voter]
	return v.clone(), ok
}

// Vote spends one unit of voter's allowance on the option at index option.
func (b *Ballot) Vote(voter Identity, option int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.voters[voter]
	if !ok {
		return newError(CodeVoterNotAllowed, b.id).withIdentity(voter)
	}
	if !b.open {
		return newError(CodeBallotClosed, b.id)
	}
	if v.Remaining == 0 {
		return newError(CodeNoAllowanceLeft, b.id).withIdentity(voter)
	}
	if option < 0 || option >= len(b.options) {
		err := newError(CodeOptionIndexOutOfRange, b.id)
		err.Option = option
		return err
	}

	b.tally[option]++
	v.Remaining--
	b.voters[voter] = v
	b.version++
	return nil
}

// Delegate moves one unit of allowance from delegator to delegate and
// records delegate as the delegator's target. The delegate does not have to
// be enrolled; an entry with no allowance is created for it first. Existing
// delegation chains starting at delegate are left untouched.
func (b *Ballot) Delegate(delegate, delegator Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	from, ok := b.voters[delegator]
	if !ok {
		return newError(CodeVoterNotAllowed, b.id).withIdentity(delegator)
	}
	if !b.open {
		return newError(CodeBallotClosed, b.id)
	}
	if from.Remaining == 0 {
		return newError(CodeNoAllowanceLeft, b.id).withIdentity(delegator)
	}

	from.Remaining--
	target := delegate
	from.Delegate = &target
	b.voters[delegator] = from

	// Read after the delegator write so self-delegation nets to zero.
	to := b.voters[delegate]
	to.Remaining++
	b.voters[delegate] = to

	b.version++
	return nil
}

// Close stops the ballot from accepting further mutations. Closing a closed
// ballot succeeds.
func (b *Ballot) Close(caller Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if caller != b.creator {
		return newError(CodeNotCreator, b.id).withIdentity(caller)
	}
	if b.open {
		b.open = false
		b.version++
	}
	return nil
}

// Results returns a copy of the tally. Restricted ballots only show it to
// enrolled identities; the open flag does not matter.
func (b *Ballot) Results(caller Identity) (Results, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.restricted {
		if _, ok := b.voters[caller]; !ok {
			return Results{}, newError(CodeVoterNotAllowed, b.id).withIdentity(caller)
		}
	}

	res := Results{
		Tally:     make(map[string]uint32, len(b.tally)),
		Positions: make(map[int]uint32, len(b.tally)),
	}
	for i, n := range b.tally {
		res.Tally[b.options[i]] += n
		res.Positions[i] = n
	}
	return res, nil
}
