package session

import "sync"

// Ticket tracks one support-channel session. The owner is fixed at
// creation; the claimant is last-writer-wins and there is no unclaim. The
// locked flag toggles strictly between two states.
type Ticket struct {
	ID        string
	OwnerID   string
	ChannelID string

	mu        sync.Mutex
	claimedBy string
	locked    bool
}

func NewTicket(id, ownerID, channelID string) *Ticket {
	return &Ticket{ID: id, OwnerID: ownerID, ChannelID: channelID}
}

// Claim assigns the ticket to actorID, overwriting any previous claimant.
func (t *Ticket) Claim(actorID string) {
	t.mu.Lock()
	t.claimedBy = actorID
	t.mu.Unlock()
}

func (t *Ticket) ClaimedBy() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.claimedBy
}

// ToggleLock flips the locked flag and returns the new value.
func (t *Ticket) ToggleLock() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locked = !t.locked
	return t.locked
}

func (t *Ticket) Locked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked
}
