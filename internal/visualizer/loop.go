package visualizer

import "time"

// FrameLoop is the scheduling handle of the per-frame animation.
type FrameLoop struct {
	scheduled bool
}

// Start schedules the loop. It reports false if it was already scheduled.
func (l *FrameLoop) Start() bool {
	if l.scheduled {
		return false
	}
	l.scheduled = true
	return true
}

// Stop cancels the loop; the next tick computes nothing.
func (l *FrameLoop) Stop() { l.scheduled = false }

func (l *FrameLoop) Scheduled() bool { return l.scheduled }

// Ticker fires at a fixed interval measured on the tick clock.
type Ticker struct {
	Interval time.Duration

	next    time.Time
	running bool
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{Interval: interval}
}

// Start arms the ticker. With immediate set the first Due is at now.
func (t *Ticker) Start(now time.Time, immediate bool) {
	t.running = true
	t.next = now
	if !immediate {
		t.next = now.Add(t.Interval)
	}
}

func (t *Ticker) Stop() { t.running = false }

func (t *Ticker) Running() bool { return t.running }

// Due reports whether the ticker fires at now and, if so, arms the next one.
func (t *Ticker) Due(now time.Time) bool {
	if !t.running || now.Before(t.next) {
		return false
	}
	t.next = t.next.Add(t.Interval)
	if !t.next.After(now) {
		t.next = now.Add(t.Interval)
	}
	return true
}
