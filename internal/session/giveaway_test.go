package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiveawayJoinOnce(t *testing.T) {
	g := NewGiveaway("a prize", "host", 1)
	require.NoError(t, g.Join("u1"))
	assert.ErrorIs(t, g.Join("u1"), ErrAlreadyJoined)
	assert.Equal(t, 1, g.ParticipantCount())
}

func TestGiveawayWinnersClampedToOne(t *testing.T) {
	g := NewGiveaway("p", "host", 0)
	assert.Equal(t, 1, g.Winners)
	g = NewGiveaway("p", "host", -3)
	assert.Equal(t, 1, g.Winners)
}

func TestGiveawayEveryoneWinsWhenPoolIsSmall(t *testing.T) {
	g := NewGiveaway("p", "host", 5)
	require.NoError(t, g.Join("u1"))
	require.NoError(t, g.Join("u2"))

	winners, err := g.Finalize(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, winners)
}

func TestGiveawayDrawsDistinctWinnersFromPool(t *testing.T) {
	g := NewGiveaway("p", "host", 3)
	joined := make(map[string]bool)
	for n := 0; n < 10; n++ {
		id := fmt.Sprintf("u%d", n)
		require.NoError(t, g.Join(id))
		joined[id] = true
	}

	winners, err := g.Finalize(nil)
	require.NoError(t, err)
	require.Len(t, winners, 3)

	seen := make(map[string]bool)
	for _, w := range winners {
		assert.True(t, joined[w], "winner %s never joined", w)
		assert.False(t, seen[w], "winner %s drawn twice", w)
		seen[w] = true
	}
}

func TestGiveawayFinalizeOnce(t *testing.T) {
	g := NewGiveaway("p", "host", 1)
	require.NoError(t, g.Join("u1"))

	_, err := g.Finalize(nil)
	require.NoError(t, err)
	assert.True(t, g.Finalized())

	_, err = g.Finalize(nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGiveawayJoinAfterFinalize(t *testing.T) {
	g := NewGiveaway("p", "host", 1)
	_, err := g.Finalize(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, g.Join("late"), ErrClosed)
}

func TestGiveawayAbsentMembersCannotWin(t *testing.T) {
	g := NewGiveaway("p", "host", 10)
	require.NoError(t, g.Join("here"))
	require.NoError(t, g.Join("gone"))

	winners, err := g.Finalize(func(id string) bool { return id != "gone" })
	require.NoError(t, err)
	assert.Equal(t, []string{"here"}, winners)
}

func TestGiveawayRerollUsesOriginalSet(t *testing.T) {
	g := NewGiveaway("p", "host", 1)
	for n := 0; n < 6; n++ {
		require.NoError(t, g.Join(fmt.Sprintf("u%d", n)))
	}
	_, err := g.Finalize(nil)
	require.NoError(t, err)

	for round := 0; round < 5; round++ {
		winners, err := g.Reroll(2, nil)
		require.NoError(t, err)
		assert.Len(t, winners, 2)
	}
	// Rerolls never mutate the finalized session.
	assert.True(t, g.Finalized())
	assert.Equal(t, 6, g.ParticipantCount())
}

func TestGiveawayRerollEmptyPool(t *testing.T) {
	g := NewGiveaway("p", "host", 1)
	_, err := g.Finalize(nil)
	require.NoError(t, err)

	_, err = g.Reroll(1, nil)
	assert.ErrorIs(t, err, ErrNoParticipants)
}
