package clock

import (
	"sort"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type timer struct {
	handle Handle
	due    time.Time
	fn     func()
}

// Scheduler runs deferred callbacks on the caller's goroutine. It is not safe
// for concurrent use: Fire is expected to be called from the main update loop,
// the same context that schedules and cancels.
type Scheduler struct {
	clock  TimeProvider
	next   Handle
	timers map[Handle]*timer
}

func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{
		clock:  clock,
		timers: make(map[Handle]*timer),
	}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After schedules fn to run once d has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	s.next++
	h := s.next
	s.timers[h] = &timer{handle: h, due: s.clock.Now().Add(d), fn: fn}
	return h
}

// Cancel invalidates h. It reports whether the callback was still pending.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.timers[h]; !ok {
		return false
	}
	delete(s.timers, h)
	return true
}

// Pending reports whether h has not yet fired or been cancelled
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Len returns the number of pending callbacks
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Fire runs every callback that is due, earliest first, and returns how many ran.
// Callbacks may schedule or cancel other callbacks; new ones that are already
// due run in the same call.
func (s *Scheduler) Fire() int {
	fired := 0
	for {
		now := s.clock.Now()
		due := make([]*timer, 0, len(s.timers))
		for _, t := range s.timers {
			if !t.due.After(now) {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			return fired
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].due.Equal(due[j].due) {
				return due[i].handle < due[j].handle
			}
			return due[i].due.Before(due[j].due)
		})
		for _, t := range due {
			// An earlier callback in this round may have cancelled it
			if _, ok := s.timers[t.handle]; !ok {
				continue
			}
			delete(s.timers, t.handle)
			t.fn()
			fired++
		}
	}
}
