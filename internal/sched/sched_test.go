package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualRunsDueTasks(t *testing.T) {
	m := NewManual()
	fired := false
	m.Schedule(10*time.Second, func() { fired = true })

	m.Advance(9 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 1, m.Pending())

	m.Advance(1 * time.Second)
	assert.True(t, fired)
	assert.Equal(t, 0, m.Pending())
}

func TestManualOrdering(t *testing.T) {
	m := NewManual()
	var order []string
	m.Schedule(30*time.Second, func() { order = append(order, "late") })
	m.Schedule(10*time.Second, func() { order = append(order, "early") })
	m.Schedule(10*time.Second, func() { order = append(order, "early2") })

	m.Advance(time.Minute)
	assert.Equal(t, []string{"early", "early2", "late"}, order)
}

func TestManualTaskMaySchedule(t *testing.T) {
	m := NewManual()
	chained := false
	m.Schedule(time.Second, func() {
		m.Schedule(time.Second, func() { chained = true })
	})

	m.Advance(time.Second)
	assert.False(t, chained)
	assert.Equal(t, 1, m.Pending())

	m.Advance(time.Second)
	assert.True(t, chained)
}

func TestTimersSchedule(t *testing.T) {
	done := make(chan struct{})
	New().Schedule(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled task never ran")
	}
}
