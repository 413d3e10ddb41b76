// Package timer is a cooperative, single-threaded scheduler of named
// deferred actions grouped by category.
//
// Nothing fires on its own: the owner drives time by calling Advance from
// its event loop, and every action runs to completion on that call.
package timer

import (
	"sort"
	"time"
)

// Category groups actions that replace each other. At most one action is
// pending per category.
type Category string

// Pending describes an action that has not fired yet.
type Pending struct {
	Name      string
	Remaining time.Duration
	Period    time.Duration

	fn func()
}

type entry struct {
	name   string
	due    time.Time
	period time.Duration
	fn     func()
	seq    uint64
}

type Scheduler struct {
	now     time.Time
	entries map[Category]*entry
	gens    map[Category]uint64
	seq     uint64
}

func New(now time.Time) *Scheduler {
	return &Scheduler{
		now:     now,
		entries: make(map[Category]*entry),
		gens:    make(map[Category]uint64),
	}
}

// Now is the scheduler's notion of the current time. Inside a callback it
// is the due time of the action being fired.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Schedule arms a one-shot action in cat, replacing whatever was pending
// there.
func (s *Scheduler) Schedule(cat Category, name string, delay time.Duration, fn func()) {
	s.arm(cat, name, delay, 0, fn)
}

// Every arms a periodic action in cat. The first fire happens one interval
// from now.
func (s *Scheduler) Every(cat Category, name string, interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.arm(cat, name, interval, interval, fn)
}

func (s *Scheduler) arm(cat Category, name string, delay, period time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.gens[cat]++
	s.seq++
	s.entries[cat] = &entry{
		name:   name,
		due:    s.now.Add(delay),
		period: period,
		fn:     fn,
		seq:    s.seq,
	}
}

// Cancel drops the pending action of every given category.
func (s *Scheduler) Cancel(cats ...Category) {
	for _, cat := range cats {
		if _, ok := s.entries[cat]; !ok {
			continue
		}
		delete(s.entries, cat)
		s.gens[cat]++
	}
}

// Generation counts every schedule and cancel in cat.
func (s *Scheduler) Generation(cat Category) uint64 {
	return s.gens[cat]
}

// Active reports whether cat has a pending action.
func (s *Scheduler) Active(cat Category) bool {
	_, ok := s.entries[cat]
	return ok
}

// Pending reports the action waiting in cat without touching it.
func (s *Scheduler) Pending(cat Category) (Pending, bool) {
	e, ok := s.entries[cat]
	if !ok {
		return Pending{}, false
	}
	return s.describe(e), true
}

// Detach removes the action waiting in cat and hands it back so it can be
// re-armed later with its remaining delay.
func (s *Scheduler) Detach(cat Category) (Pending, bool) {
	e, ok := s.entries[cat]
	if !ok {
		return Pending{}, false
	}
	s.Cancel(cat)
	return s.describe(e), true
}

// Rearm schedules a detached action again, due after its remaining delay.
func (s *Scheduler) Rearm(cat Category, p Pending) {
	if p.fn == nil {
		return
	}
	s.arm(cat, p.Name, p.Remaining, p.Period, p.fn)
}

func (s *Scheduler) describe(e *entry) Pending {
	remaining := e.due.Sub(s.now)
	if remaining < 0 {
		remaining = 0
	}
	return Pending{Name: e.name, Remaining: remaining, Period: e.period, fn: e.fn}
}

// Advance moves time forward to now, firing every due action in due order.
// Actions scheduled by callbacks fire in the same call if they fall due
// before now. Returns the number of actions fired.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for {
		cat, e := s.next()
		if e == nil || e.due.After(now) {
			break
		}
		if e.due.After(s.now) {
			s.now = e.due
		}
		delete(s.entries, cat)
		gen := s.gens[cat]
		e.fn()
		// A callback that cancels or replaces its own category ends the cycle.
		if e.period > 0 && s.gens[cat] == gen {
			s.seq++
			e.due = e.due.Add(e.period)
			e.seq = s.seq
			s.entries[cat] = e
		}
		fired++
	}
	if now.After(s.now) {
		s.now = now
	}
	return fired
}

// Names lists the pending actions by category, sorted by due time.
func (s *Scheduler) Names() []string {
	type row struct {
		label string
		due   time.Time
		seq   uint64
	}
	rows := make([]row, 0, len(s.entries))
	for cat, e := range s.entries {
		rows = append(rows, row{label: string(cat) + ":" + e.name, due: e.due, seq: e.seq})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].due.Equal(rows[j].due) {
			return rows[i].seq < rows[j].seq
		}
		return rows[i].due.Before(rows[j].due)
	})
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.label
	}
	return names
}

func (s *Scheduler) next() (Category, *entry) {
	var (
		bestCat Category
		best    *entry
	)
	for cat, e := range s.entries {
		if best == nil || e.due.Before(best.due) || (e.due.Equal(best.due) && e.seq < best.seq) {
			bestCat, best = cat, e
		}
	}
	return bestCat, best
}
