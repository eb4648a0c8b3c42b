// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	creator Identity = "creator"
	alice   Identity = "alice"
	bob     Identity = "bob"
	mallory Identity = "mallory"
)

func newTestBallot(t *testing.T, restricted bool, options ...string) *Ballot {
	t.Helper()
	if len(options) == 0 {
		options = []string{"Option 1", "Option 2"}
	}
	return newBallot(0, "Test Ballot", options, restricted, creator)
}

func TestBallot_New(t *testing.T) {
	b := newTestBallot(t, false)

	assert.Equal(t, "Test Ballot", b.Title())
	assert.Equal(t, creator, b.Creator())
	assert.True(t, b.IsOpen())
	assert.False(t, b.Restricted())
	assert.Equal(t, []string{"Option 1", "Option 2"}, b.Options())

	res, err := b.Results(creator)
	require.NoError(t, err)
	assert.Empty(t, res.Tally)
}

func TestBallot_OptionsIsACopy(t *testing.T) {
	opts := []string{"A", "B"}
	b := newBallot(0, "t", opts, false, creator)

	opts[0] = "changed"
	got := b.Options()
	got[1] = "changed"

	assert.Equal(t, []string{"A", "B"}, b.Options())
}

func TestBallot_Enroll(t *testing.T) {
	tests := []struct {
		name    string
		caller  Identity
		closed  bool
		wantErr error
	}{
		{"creator enrolls", creator, false, nil},
		{"non-creator", mallory, false, ErrNotCreator},
		{"closed ballot", creator, true, ErrBallotClosed},
		{"non-creator on closed ballot", mallory, true, ErrNotCreator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBallot(t, false)
			if tt.closed {
				require.NoError(t, b.Close(creator))
			}

			err := b.Enroll(alice, tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, b.IsEnrolled(alice))
				return
			}
			require.NoError(t, err)

			v, ok := b.Voter(alice)
			require.True(t, ok)
			assert.Equal(t, uint32(1), v.Remaining)
			assert.Nil(t, v.Delegate)
		})
	}
}

func TestBallot_ReEnrollResetsAllowance(t *testing.T) {
	b := newTestBallot(t, false)
	require.NoError(t, b.Enroll(alice, creator))
	require.NoError(t, b.Enroll(bob, creator))
	require.NoError(t, b.Delegate(alice, bob))

	v, _ := b.Voter(alice)
	require.Equal(t, uint32(2), v.Remaining)

	require.NoError(t, b.Enroll(alice, creator))
	v, _ = b.Voter(alice)
	assert.Equal(t, uint32(1), v.Remaining)

	// Re-enrolling a voter who already spent its vote gives it a new one.
	require.NoError(t, b.Vote(alice, 0))
	require.NoError(t, b.Enroll(alice, creator))
	v, _ = b.Voter(alice)
	assert.Equal(t, uint32(1), v.Remaining)
}

func TestBallot_Revoke(t *testing.T) {
	t.Run("removes voter", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))

		require.NoError(t, b.Revoke(alice, creator))
		assert.False(t, b.IsEnrolled(alice))
		assert.ErrorIs(t, b.Vote(alice, 0), ErrVoterNotAllowed)
	})

	t.Run("unknown voter", func(t *testing.T) {
		b := newTestBallot(t, false)
		err := b.Revoke(alice, creator)
		assert.ErrorIs(t, err, ErrVoterNotFound)
	})

	t.Run("non-creator", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		assert.ErrorIs(t, b.Revoke(alice, alice), ErrNotCreator)
		assert.True(t, b.IsEnrolled(alice))
	})

	t.Run("closed ballot", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Close(creator))
		assert.ErrorIs(t, b.Revoke(alice, creator), ErrBallotClosed)
	})

	t.Run("allowance is discarded", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Enroll(bob, creator))
		require.NoError(t, b.Delegate(bob, alice))

		require.NoError(t, b.Revoke(bob, creator))

		v, ok := b.Voter(alice)
		require.True(t, ok)
		assert.Equal(t, uint32(0), v.Remaining)
		_, ok = b.Voter(creator)
		assert.False(t, ok)
	})
}

func TestBallot_Vote(t *testing.T) {
	t.Run("counts vote for option", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))

		require.NoError(t, b.Vote(alice, 0))

		res, err := b.Results(alice)
		require.NoError(t, err)
		assert.Equal(t, map[string]uint32{"Option 1": 1}, res.Tally)
		assert.Equal(t, uint32(1), res.Votes(0))

		v, _ := b.Voter(alice)
		assert.Equal(t, uint32(0), v.Remaining)
	})

	t.Run("not enrolled", func(t *testing.T) {
		b := newTestBallot(t, false)
		assert.ErrorIs(t, b.Vote(alice, 0), ErrVoterNotAllowed)
	})

	t.Run("not enrolled takes precedence over closed", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Close(creator))
		assert.ErrorIs(t, b.Vote(alice, 0), ErrVoterNotAllowed)
	})

	t.Run("closed", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Close(creator))
		assert.ErrorIs(t, b.Vote(alice, 0), ErrBallotClosed)
	})

	t.Run("no allowance left", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		b.voters[alice] = Voter{Remaining: 0}

		assert.ErrorIs(t, b.Vote(alice, 0), ErrNoAllowanceLeft)
	})

	t.Run("second vote exhausts allowance", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Vote(alice, 1))
		assert.ErrorIs(t, b.Vote(alice, 1), ErrNoAllowanceLeft)
	})

	t.Run("option out of range", func(t *testing.T) {
		for _, idx := range []int{2, 100, -1} {
			b := newTestBallot(t, false)
			require.NoError(t, b.Enroll(alice, creator))

			err := b.Vote(alice, idx)
			assert.ErrorIs(t, err, ErrOptionIndexOutOfRange, "index %d", idx)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, idx, e.Option)

			v, _ := b.Voter(alice)
			assert.Equal(t, uint32(1), v.Remaining, "failed vote must not spend allowance")
		}
	})

	t.Run("duplicate option text tallied by position", func(t *testing.T) {
		b := newTestBallot(t, false, "Yes", "No", "Yes")
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Enroll(bob, creator))

		require.NoError(t, b.Vote(alice, 0))
		require.NoError(t, b.Vote(bob, 2))

		res, err := b.Results(creator)
		require.NoError(t, err)
		assert.Equal(t, map[int]uint32{0: 1, 2: 1}, res.Positions)
		assert.Equal(t, uint32(2), res.Tally["Yes"])
		_, ok := res.Tally["No"]
		assert.False(t, ok, "tally entries are created on first vote only")
	})
}

func TestBallot_Delegate(t *testing.T) {
	t.Run("moves one unit", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Enroll(bob, creator))

		require.NoError(t, b.Delegate(bob, alice))

		from, _ := b.Voter(alice)
		assert.Equal(t, uint32(0), from.Remaining)
		require.NotNil(t, from.Delegate)
		assert.Equal(t, bob, *from.Delegate)

		to, _ := b.Voter(bob)
		assert.Equal(t, uint32(2), to.Remaining)
		assert.Nil(t, to.Delegate)
	})

	t.Run("delegate need not be enrolled", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))

		require.NoError(t, b.Delegate(bob, alice))

		assert.True(t, b.IsEnrolled(bob))
		to, _ := b.Voter(bob)
		assert.Equal(t, uint32(1), to.Remaining)

		require.NoError(t, b.Vote(bob, 1))
		res, _ := b.Results(creator)
		assert.Equal(t, uint32(1), res.Tally["Option 2"])
	})

	t.Run("chains are single hop", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Delegate(bob, alice))
		require.NoError(t, b.Delegate(mallory, bob))

		a, _ := b.Voter(alice)
		assert.Equal(t, bob, *a.Delegate)
		m, _ := b.Voter(mallory)
		assert.Equal(t, uint32(1), m.Remaining)
		bv, _ := b.Voter(bob)
		assert.Equal(t, uint32(0), bv.Remaining)
		assert.Equal(t, mallory, *bv.Delegate)
	})

	t.Run("self delegation keeps allowance", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))

		require.NoError(t, b.Delegate(alice, alice))

		v, _ := b.Voter(alice)
		assert.Equal(t, uint32(1), v.Remaining)
		assert.Equal(t, alice, *v.Delegate)
	})

	t.Run("delegator not enrolled", func(t *testing.T) {
		b := newTestBallot(t, false)
		assert.ErrorIs(t, b.Delegate(bob, mallory), ErrVoterNotAllowed)
		assert.False(t, b.IsEnrolled(bob))
	})

	t.Run("closed", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Close(creator))
		assert.ErrorIs(t, b.Delegate(bob, alice), ErrBallotClosed)
	})

	t.Run("no allowance left", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Vote(alice, 0))
		assert.ErrorIs(t, b.Delegate(bob, alice), ErrNoAllowanceLeft)
		assert.False(t, b.IsEnrolled(bob))
	})
}

func TestBallot_Close(t *testing.T) {
	b := newTestBallot(t, false)

	assert.ErrorIs(t, b.Close(mallory), ErrNotCreator)
	assert.True(t, b.IsOpen())

	require.NoError(t, b.Close(creator))
	assert.False(t, b.IsOpen())

	// closing again is allowed
	require.NoError(t, b.Close(creator))
	assert.False(t, b.IsOpen())
	assert.ErrorIs(t, b.Close(mallory), ErrNotCreator)
}

func TestBallot_Results(t *testing.T) {
	t.Run("restricted hides results from outsiders", func(t *testing.T) {
		b := newTestBallot(t, true)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Vote(alice, 1))

		_, err := b.Results(mallory)
		assert.ErrorIs(t, err, ErrVoterNotAllowed)

		// The creator is not implicitly on the roster.
		_, err = b.Results(creator)
		assert.ErrorIs(t, err, ErrVoterNotAllowed)

		res, err := b.Results(alice)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), res.Tally["Option 2"])
	})

	t.Run("readable after close", func(t *testing.T) {
		b := newTestBallot(t, true)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Vote(alice, 0))
		require.NoError(t, b.Close(creator))

		res, err := b.Results(alice)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), res.Tally["Option 1"])
	})

	t.Run("snapshot is detached", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Vote(alice, 0))

		res, _ := b.Results(mallory)
		res.Tally["Option 1"] = 99
		res.Positions[0] = 99

		again, _ := b.Results(mallory)
		assert.Equal(t, uint32(1), again.Tally["Option 1"])
		assert.Equal(t, uint32(1), again.Votes(0))
	})

	t.Run("idempotent read", func(t *testing.T) {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		require.NoError(t, b.Enroll(bob, creator))
		require.NoError(t, b.Vote(alice, 0))
		require.NoError(t, b.Vote(bob, 1))

		first, err := b.Results(alice)
		require.NoError(t, err)
		second, err := b.Results(alice)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestBallot_OneWayOpenState(t *testing.T) {
	b := newTestBallot(t, false)
	require.NoError(t, b.Enroll(alice, creator))
	require.NoError(t, b.Close(creator))

	for _, voter := range []Identity{alice, bob, creator} {
		for idx := -1; idx <= 3; idx++ {
			err := b.Vote(voter, idx)
			if voter == alice {
				assert.ErrorIs(t, err, ErrBallotClosed)
			} else {
				// unenrolled identities are rejected before the open check
				assert.ErrorIs(t, err, ErrVoterNotAllowed)
			}
		}
		assert.ErrorIs(t, b.Enroll(voter, creator), ErrBallotClosed)
		assert.ErrorIs(t, b.Revoke(voter, creator), ErrBallotClosed)
	}
	assert.ErrorIs(t, b.Delegate(bob, alice), ErrBallotClosed)
	assert.False(t, b.IsOpen())
}

func TestBallot_AccessControl(t *testing.T) {
	for _, closed := range []bool{false, true} {
		b := newTestBallot(t, false)
		require.NoError(t, b.Enroll(alice, creator))
		if closed {
			require.NoError(t, b.Close(creator))
		}

		for _, caller := range []Identity{alice, bob, mallory, ""} {
			assert.ErrorIs(t, b.Enroll(bob, caller), ErrNotCreator)
			assert.ErrorIs(t, b.Revoke(alice, caller), ErrNotCreator)
			assert.ErrorIs(t, b.Close(caller), ErrNotCreator)
		}
	}
}

func TestBallot_VersionTracksMutations(t *testing.T) {
	b := newTestBallot(t, false)
	assert.Equal(t, uint64(0), b.Snapshot().Version)

	require.NoError(t, b.Enroll(alice, creator))
	require.NoError(t, b.Vote(alice, 0))
	assert.Equal(t, uint64(2), b.Snapshot().Version)

	// failures leave the version alone
	assert.Error(t, b.Vote(alice, 0))
	assert.Equal(t, uint64(2), b.Snapshot().Version)

	require.NoError(t, b.Close(creator))
	require.NoError(t, b.Close(creator))
	assert.Equal(t, uint64(3), b.Snapshot().Version)
}

func TestError_Message(t *testing.T) {
	err := newError(CodeVoterNotAllowed, 7).withIdentity(alice)
	assert.Equal(t, "ballot 7: voter is not enrolled: alice", err.Error())
	assert.Equal(t, "no caller identity supplied", ErrNoCaller.Error())
	assert.Equal(t, CodeVoterNotAllowed, CodeOf(err))
	assert.Equal(t, Code(""), CodeOf(errors.New("other")))
	assert.False(t, errors.Is(err, ErrBallotClosed))
}
