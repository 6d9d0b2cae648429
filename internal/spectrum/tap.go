package spectrum

import (
	"sync"
	"time"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records a mono mix of the last N samples into
// a ring buffer so the analyser can read what was most recently played.
type Tap struct {
	Source beep.Streamer

	mu        sync.Mutex
	buffer    []float64
	nextIndex int
	filled    int
	lastPull  time.Time
	now       func() time.Time
}

// NewTap wraps src with a ring of ringSize mono samples.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([]float64, ringSize),
		now:    time.Now,
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	t.mu.Lock()
	t.lastPull = t.now()
	for i := range n {
		t.buffer[t.nextIndex] = (samples[i][0] + samples[i][1]) / 2
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	t.filled = min(t.filled+n, len(t.buffer))
	t.mu.Unlock()
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Samples returns the last n samples in chronological order. Slots never
// written read as silence.
func (t *Tap) Samples(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([]float64, n)
	// right-align the available samples, leaving leading zeros
	avail := min(n, t.filled)
	start := t.nextIndex - avail
	if start < 0 {
		start += len(t.buffer)
	}
	for i := range avail {
		out[n-avail+i] = t.buffer[(start+i)%len(t.buffer)]
	}
	return out
}

// LastPull reports when the output last asked for samples; zero if never.
func (t *Tap) LastPull() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastPull
}
