// Package audit records moderation and session actions. Recording is
// best-effort from the caller's point of view: sinks log their own
// failures and never surface them to the user issuing a command.
package audit

import "time"

// Entry describes one auditable action.
type Entry struct {
	GuildID  string
	Action   string
	ActorID  string
	TargetID string
	Details  string
	At       time.Time
}

// Sink posts audit entries to zero or more destinations.
type Sink interface {
	Record(e Entry)
}

// NullSink discards everything. Injected when audit logging is disabled so
// callers never need a nil check.
type NullSink struct{}

func (NullSink) Record(Entry) {}

// MultiSink fans an entry out to each wrapped sink.
type MultiSink []Sink

func (m MultiSink) Record(e Entry) {
	for _, s := range m {
		s.Record(e)
	}
}
