// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
)

// Registry owns a set of ballots and routes calls to them. The map itself is
// guarded by an RWMutex; each ballot serializes its own operations, so calls
// against different ballots do not contend.
type Registry struct {
	mu      sync.RWMutex
	ballots map[ID]*Ballot
	nextID  ID
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		ballots: make(map[ID]*Ballot),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new open ballot whose creator is the first account and
// returns its id.
func (r *Registry) Create(title string, options []string, restricted bool, callers []Account) (ID, error) {
	creator, ok := callerOf(callers)
	if !ok {
		return 0, ErrNoCaller
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nextID == math.MaxUint32 {
		panic("ballot: id counter overflow")
	}
	id := r.nextID
	r.ballots[id] = newBallot(id, title, options, restricted, creator)
	r.nextID++

	r.logger.Debug("ballot created", "ballot_id", id, "creator", creator, "options", len(options), "results_restricted", restricted)
	return id, nil
}

// Get returns the ballot with the given id.
func (r *Registry) Get(id ID) (*Ballot, error) {
	r.mu.RLock()
	b, ok := r.ballots[id]
	r.mu.RUnlock()
	if !ok {
		return nil, newError(CodeBallotNotFound, id)
	}
	return b, nil
}

// resolve looks up the ballot, then the caller.
func (r *Registry) resolve(id ID, callers []Account) (*Ballot, Identity, error) {
	b, err := r.Get(id)
	if err != nil {
		return nil, "", err
	}
	caller, ok := callerOf(callers)
	if !ok {
		return nil, "", newError(CodeNoCaller, id)
	}
	return b, caller, nil
}

// Vote casts one vote from the caller for the option at index option.
func (r *Registry) Vote(id ID, callers []Account, option int) error {
	b, caller, err := r.resolve(id, callers)
	if err != nil {
		return err
	}
	return b.Vote(caller, option)
}

// Close closes the ballot on behalf of the caller.
func (r *Registry) Close(id ID, callers []Account) error {
	b, caller, err := r.resolve(id, callers)
	if err != nil {
		return err
	}
	if err := b.Close(caller); err != nil {
		return err
	}
	r.logger.Debug("ballot closed", "ballot_id", id)
	return nil
}

// Results reads the tally as seen by the caller.
func (r *Registry) Results(id ID, callers []Account) (Results, error) {
	b, caller, err := r.resolve(id, callers)
	if err != nil {
		return Results{}, err
	}
	return b.Results(caller)
}

// Enroll adds voter to the ballot's roster. The caller must be the creator.
func (r *Registry) Enroll(id ID, voter Identity, callers []Account) error {
	b, caller, err := r.resolve(id, callers)
	if err != nil {
		return err
	}
	return b.Enroll(voter, caller)
}

// Revoke removes voter from the ballot's roster. The caller must be the creator.
func (r *Registry) Revoke(id ID, voter Identity, callers []Account) error {
	b, caller, err := r.resolve(id, callers)
	if err != nil {
		return err
	}
	return b.Revoke(voter, caller)
}

// IsEnrolled does not need a caller.
func (r *Registry) IsEnrolled(id ID, voter Identity) (bool, error) {
	b, err := r.Get(id)
	if err != nil {
		return false, err
	}
	return b.IsEnrolled(voter), nil
}

// Delegate transfers one unit of the caller's allowance to delegate.
func (r *Registry) Delegate(id ID, delegate Identity, callers []Account) error {
	b, caller, err := r.resolve(id, callers)
	if err != nil {
		return err
	}
	return b.Delegate(delegate, caller)
}

// Options does not need a caller.
func (r *Registry) Options(id ID) ([]string, error) {
	b, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return b.Options(), nil
}

// Len returns the number of ballots.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ballots)
}

// Snapshots copies every ballot, ordered by id.
func (r *Registry) Snapshots() []Snapshot {
	r.mu.RLock()
	ballots := make([]*Ballot, 0, len(r.ballots))
	for _, b := range r.ballots {
		ballots = append(ballots, b)
	}
	r.mu.RUnlock()

	sort.Slice(ballots, func(i, j int) bool { return ballots[i].id < ballots[j].id })
	out := make([]Snapshot, len(ballots))
	for i, b := range ballots {
		out[i] = b.Snapshot()
	}
	return out
}

// Restore loads snapshots into an empty registry. The id counter resumes
// after the greatest restored id.
func (r *Registry) Restore(snapshots []Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.ballots) != 0 || r.nextID != 0 {
		return fmt.Errorf("restore into non-empty registry")
	}

	ballots := make(map[ID]*Ballot, len(snapshots))
	var next ID
	for _, s := range snapshots {
		if _, dup := ballots[s.ID]; dup {
			return fmt.Errorf("duplicate ballot id %d", s.ID)
		}
		if s.ID == math.MaxUint32 {
			return fmt.Errorf("ballot id %d out of range", s.ID)
		}
		b, err := restoreBallot(s)
		if err != nil {
			return err
		}
		ballots[s.ID] = b
		if s.ID >= next {
			next = s.ID + 1
		}
	}

	r.ballots = ballots
	r.nextID = next
	r.logger.Debug("registry restored", "ballots", len(ballots), "next_id", next)
	return nil
}
