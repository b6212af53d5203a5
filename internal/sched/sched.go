// Package sched provides the single-shot delayed tasks that drive poll
// closes, giveaway draws and reminders. Production code uses the wall
// clock; tests advance a manual clock instead of sleeping.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Scheduler arms a task to run once after d. Scheduled tasks are not
// cancellable; if the process exits first the task simply never runs.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
}

// Timers is the wall-clock Scheduler.
type Timers struct{}

func New() *Timers { return &Timers{} }

func (*Timers) Schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Manual is a Scheduler driven by an explicit virtual clock, for tests.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []manualTask
}

type manualTask struct {
	at  time.Time
	seq int
	fn  func()
}

func NewManual() *Manual {
	return &Manual{now: time.Unix(0, 0)}
}

func (m *Manual) Schedule(d time.Duration, fn func()) {
	m.mu.Lock()
	m.tasks = append(m.tasks, manualTask{at: m.now.Add(d), seq: len(m.tasks), fn: fn})
	m.mu.Unlock()
}

// Advance moves the virtual clock forward and runs every task that becomes
// due, in due-time order. Tasks run without the lock held so they may
// schedule further tasks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	var due, rest []manualTask
	for _, t := range m.tasks {
		if !t.at.After(m.now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending reports how many tasks are still armed.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
