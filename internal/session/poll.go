package session

import (
	"math"
	"sync"
)

// Poll tracks one button-voting session. Each user may vote exactly once;
// the check and the tally increment happen under one lock so two rapid
// activations from the same voter cannot both count.
type Poll struct {
	Question string
	Options  []string

	mu     sync.Mutex
	tally  []int
	voters map[string]struct{}
	closed bool
}

func NewPoll(question string, options []string) *Poll {
	return &Poll{
		Question: question,
		Options:  options,
		tally:    make([]int, len(options)),
		voters:   make(map[string]struct{}),
	}
}

// CastVote records voterID's vote for the option at idx. It must be called
// before any platform API call in the activation path.
func (p *Poll) CastVote(voterID string, idx int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if idx < 0 || idx >= len(p.tally) {
		return ErrBadOption
	}
	if _, ok := p.voters[voterID]; ok {
		return ErrDuplicateVote
	}
	p.voters[voterID] = struct{}{}
	p.tally[idx]++
	return nil
}

// PollResult is one option's final count.
type PollResult struct {
	Option  string
	Votes   int
	Percent int
}

// Close transitions the poll to its terminal state and computes results.
// Percentages round to the nearest integer and are zero when nobody voted.
// Calling Close again returns the same results.
func (p *Poll) Close() (results []PollResult, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for _, n := range p.tally {
		total += n
	}
	results = make([]PollResult, len(p.Options))
	for i, opt := range p.Options {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(p.tally[i]) / float64(total) * 100))
		}
		results[i] = PollResult{Option: opt, Votes: p.tally[i], Percent: pct}
	}
	return results, total
}

// VoteCount reports the current number of recorded votes.
func (p *Poll) VoteCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, v := range p.tally {
		n += v
	}
	return n
}
