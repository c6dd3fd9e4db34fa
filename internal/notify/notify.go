// Package notify delivers scheduled hydration reminders in-process. It is
// the Notifier collaborator the tracker drives: the tracker cancels
// everything and reinstalls the fresh schedule on every state change, so the
// scheduler never needs to diff or deduplicate.
package notify

import (
	"sync"
	"time"
)

// Scheduler installs one-shot timers for future instants and fires the
// handler with the reminder payload when they elapse.
type Scheduler struct {
	mu     sync.Mutex
	timers map[int]*time.Timer
	nextID int
	fire   func(payload string)
}

// New builds a scheduler that delivers fired reminders to handler. The
// handler runs on a timer goroutine; it must hand the payload off (for the
// terminal shell, into the Bubble Tea program) rather than block.
func New(handler func(payload string)) *Scheduler {
	return &Scheduler{
		timers: make(map[int]*time.Timer),
		fire:   handler,
	}
}

// CancelAll stops every pending reminder.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// ScheduleAt installs a one-shot reminder. Instants at or before now are
// dropped; the tracker only emits future instants, this is the last guard.
func (s *Scheduler) ScheduleAt(at time.Time, payload string) {
	d := time.Until(at)
	if d <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.fire(payload)
	})
}

// RequestPermission is always granted: the terminal shell delivers
// reminders itself, there is no platform permission to ask for.
func (s *Scheduler) RequestPermission() bool { return true }

// Pending reports how many reminders are currently installed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
