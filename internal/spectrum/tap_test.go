package spectrum

import (
	"testing"
	"time"

	"github.com/faiface/beep"
)

// rampStreamer emits 0, 1, 2, ... on both channels.
type rampStreamer struct{ next float64 }

func (r *rampStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{r.next, r.next}
		r.next++
	}
	return len(samples), true
}

func (r *rampStreamer) Err() error { return nil }

var _ beep.Streamer = (*Tap)(nil)

func TestTapSamplesChronological(t *testing.T) {
	tap := NewTap(&rampStreamer{}, 8)
	buf := make([][2]float64, 5)
	tap.Stream(buf)
	tap.Stream(buf)

	got := tap.Samples(4)
	want := []float64{6, 7, 8, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Samples(4) = %v, want %v", got, want)
		}
	}
}

func TestTapSamplesBeforeFillArePadded(t *testing.T) {
	tap := NewTap(&rampStreamer{}, 8)
	tap.Stream(make([][2]float64, 2))

	got := tap.Samples(4)
	want := []float64{0, 0, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Samples(4) = %v, want %v", got, want)
		}
	}
	if n := len(tap.Samples(100)); n != 8 {
		t.Fatalf("Samples(100) length = %d, want ring size 8", n)
	}
}

func TestTapMixesToMono(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, -0.5}
		}
		return len(samples), true
	})
	tap := NewTap(src, 4)
	tap.Stream(make([][2]float64, 4))
	for _, v := range tap.Samples(4) {
		if v != 0.25 {
			t.Fatalf("mono sample = %v, want 0.25", v)
		}
	}
}

func TestTapRecordsLastPull(t *testing.T) {
	tap := NewTap(&rampStreamer{}, 4)
	if !tap.LastPull().IsZero() {
		t.Fatal("LastPull set before any pull")
	}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tap.now = func() time.Time { return at }
	tap.Stream(make([][2]float64, 1))
	if !tap.LastPull().Equal(at) {
		t.Fatalf("LastPull = %v, want %v", tap.LastPull(), at)
	}
}
