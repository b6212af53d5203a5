package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollVoteOnce(t *testing.T) {
	p := NewPoll("best fruit?", []string{"apple", "mango"})

	require.NoError(t, p.CastVote("u1", 0))
	assert.ErrorIs(t, p.CastVote("u1", 0), ErrDuplicateVote)
	assert.ErrorIs(t, p.CastVote("u1", 1), ErrDuplicateVote)
	assert.Equal(t, 1, p.VoteCount())
}

func TestPollBadOption(t *testing.T) {
	p := NewPoll("q", []string{"a", "b"})
	assert.ErrorIs(t, p.CastVote("u1", -1), ErrBadOption)
	assert.ErrorIs(t, p.CastVote("u1", 2), ErrBadOption)
	require.NoError(t, p.CastVote("u1", 1))
}

func TestPollClosedRejectsVotes(t *testing.T) {
	p := NewPoll("q", []string{"a", "b"})
	p.Close()
	assert.ErrorIs(t, p.CastVote("u1", 0), ErrClosed)
}

func TestPollResults(t *testing.T) {
	p := NewPoll("q", []string{"a", "b"})
	require.NoError(t, p.CastVote("u1", 0))
	require.NoError(t, p.CastVote("u2", 0))
	require.NoError(t, p.CastVote("u3", 0))
	require.NoError(t, p.CastVote("u4", 1))

	results, total := p.Close()
	assert.Equal(t, 4, total)
	assert.Equal(t, PollResult{Option: "a", Votes: 3, Percent: 75}, results[0])
	assert.Equal(t, PollResult{Option: "b", Votes: 1, Percent: 25}, results[1])

	// Closing again yields the same numbers.
	again, total2 := p.Close()
	assert.Equal(t, total, total2)
	assert.Equal(t, results, again)
}

func TestPollResultsNoVotes(t *testing.T) {
	p := NewPoll("q", []string{"a", "b"})
	results, total := p.Close()
	assert.Equal(t, 0, total)
	for _, r := range results {
		assert.Equal(t, 0, r.Votes)
		assert.Equal(t, 0, r.Percent)
	}
}

func TestPollVoteSumMatchesVoters(t *testing.T) {
	p := NewPoll("q", []string{"a", "b", "c"})
	for n := 0; n < 30; n++ {
		require.NoError(t, p.CastVote(fmt.Sprintf("u%d", n), n%3))
	}
	_, total := p.Close()
	assert.Equal(t, 30, total)
}

func TestPollConcurrentSameVoter(t *testing.T) {
	p := NewPoll("q", []string{"a", "b"})

	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			p.CastVote("same", idx%2)
		}(n)
	}
	wg.Wait()

	assert.Equal(t, 1, p.VoteCount())
}
