package session

import "errors"

var (
	// ErrNotFound means the registry has no session for the given key,
	// typically because the process restarted or the session finalized.
	ErrNotFound = errors.New("session: not found")
	// ErrClosed is returned for activations against a finished session.
	ErrClosed = errors.New("session: already closed")
	// ErrDuplicateVote signals a voter who already cast a vote.
	ErrDuplicateVote = errors.New("session: already voted")
	// ErrAlreadyJoined signals a participant who already entered.
	ErrAlreadyJoined = errors.New("session: already joined")
	// ErrNoParticipants is returned by a draw over an empty pool.
	ErrNoParticipants = errors.New("session: no participants")
	// ErrBadOption is returned for an out-of-range poll option index.
	ErrBadOption = errors.New("session: invalid option index")
)
