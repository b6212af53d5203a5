package session

import (
	"math/rand"
	"sync"
)

// Giveaway tracks one prize draw. Participants join through a button and
// are kept as an insertion-ordered set; the draw happens once when the
// scheduled duration elapses. The session stays resident after the draw so
// an admin reroll can reuse the original participant set.
type Giveaway struct {
	Prize     string
	HostID    string
	Winners   int
	GuildID   string
	ChannelID string
	MessageID string

	mu           sync.Mutex
	participants []string
	seen         map[string]struct{}
	finalized    bool
}

func NewGiveaway(prize, hostID string, winners int) *Giveaway {
	if winners < 1 {
		winners = 1
	}
	return &Giveaway{
		Prize:   prize,
		HostID:  hostID,
		Winners: winners,
		seen:    make(map[string]struct{}),
	}
}

// Join records userID as a participant. Duplicate joins are rejected
// without mutation; the check and the insert share one critical section.
func (g *Giveaway) Join(userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized {
		return ErrClosed
	}
	if _, ok := g.seen[userID]; ok {
		return ErrAlreadyJoined
	}
	g.seen[userID] = struct{}{}
	g.participants = append(g.participants, userID)
	return nil
}

// ParticipantCount reports how many distinct users have joined.
func (g *Giveaway) ParticipantCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.participants)
}

// Finalize performs the one-shot terminal draw. present filters participant
// ids down to members still in the guild; absent members cannot win and do
// not count toward the pool. A second call reports ErrClosed.
func (g *Giveaway) Finalize(present func(userID string) bool) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized {
		return nil, ErrClosed
	}
	g.finalized = true
	return drawWinners(g.eligible(present), g.Winners), nil
}

// Reroll draws count fresh winners from the original participant set. It is
// valid only after the draw and does not mutate the finalized state.
func (g *Giveaway) Reroll(count int, present func(userID string) bool) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if count < 1 {
		count = 1
	}
	pool := g.eligible(present)
	if len(pool) == 0 {
		return nil, ErrNoParticipants
	}
	return drawWinners(pool, count), nil
}

func (g *Giveaway) Finalized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finalized
}

func (g *Giveaway) eligible(present func(string) bool) []string {
	pool := make([]string, 0, len(g.participants))
	for _, id := range g.participants {
		if present == nil || present(id) {
			pool = append(pool, id)
		}
	}
	return pool
}

// drawWinners samples min(count, len(pool)) distinct entries uniformly at
// random. When the pool is not larger than count, everyone wins.
func drawWinners(pool []string, count int) []string {
	if len(pool) <= count {
		out := make([]string, len(pool))
		copy(out, pool)
		return out
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}
