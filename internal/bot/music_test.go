package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerHaltIsIdempotent(t *testing.T) {
	p := &player{guildID: "g", skip: make(chan struct{}, 1), stop: make(chan struct{})}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.halt()
		}()
	}
	wg.Wait()

	select {
	case <-p.stop:
	default:
		t.Fatal("stop channel should be closed")
	}
	// A late caller after teardown is still safe.
	p.halt()
}

func TestDropPlayerSparesReplacement(t *testing.T) {
	b := newTestBot()

	p1 := b.getPlayer("g")
	p1.halt()
	b.dropPlayer(p1)

	p2 := b.getPlayer("g")
	require.NotSame(t, p1, p2)

	// The old goroutine's deferred cleanup fires after the replacement
	// exists; it must leave the new player alone.
	b.dropPlayer(p1)
	assert.Same(t, p2, b.getPlayer("g"))

	b.dropPlayer(p2)
	assert.NotSame(t, p2, b.getPlayer("g"))
}

func TestSetPausedWithoutStream(t *testing.T) {
	p := &player{guildID: "g", skip: make(chan struct{}, 1), stop: make(chan struct{})}
	assert.False(t, p.setPaused(true))
	assert.False(t, p.setPaused(false))
}
