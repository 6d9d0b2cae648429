// Package spectrum turns the most recently played audio into a frame of
// per-bin magnitudes on a 0-255 scale.
package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/iburimskiy/audio-planes/internal/config"
)

// Frame is one snapshot of bin magnitudes, lowest frequency first.
type Frame []uint8

// Mean returns the average magnitude on the 0-255 scale; 0 for an empty frame.
func (f Frame) Mean() float64 {
	if len(f) == 0 {
		return 0
	}
	sum := 0
	for _, v := range f {
		sum += int(v)
	}
	return float64(sum) / float64(len(f))
}

// SampleSource provides the most recent mono samples, oldest first.
type SampleSource interface {
	Samples(n int) []float64
}

// Analyzer computes smoothed byte spectra the way a browser AnalyserNode does:
// Blackman window, FFT, magnitude / N, exponential smoothing across reads,
// then decibels mapped linearly from [MinDecibels, MaxDecibels] onto 0..255.
type Analyzer struct {
	src       SampleSource
	size      int
	smoothing float64
	minDB     float64
	maxDB     float64

	window   []float64
	buf      []float64
	smoothed []float64
}

// NewAnalyzer returns an analyser over src with the default window size and
// smoothing constant. src may be nil, in which case every read is silent.
func NewAnalyzer(src SampleSource) *Analyzer {
	return NewAnalyzerSize(src, config.FFTSize, config.SmoothingFactor)
}

// NewAnalyzerSize is NewAnalyzer with an explicit power-of-two window size
// and smoothing constant in [0, 1).
func NewAnalyzerSize(src SampleSource, size int, smoothing float64) *Analyzer {
	return &Analyzer{
		src:       src,
		size:      size,
		smoothing: smoothing,
		minDB:     config.MinDecibels,
		maxDB:     config.MaxDecibels,
		window:    window.Blackman(size),
		buf:       make([]float64, size),
		smoothed:  make([]float64, size/2),
	}
}

// BinCount is the length of every frame returned by Read.
func (a *Analyzer) BinCount() int { return a.size / 2 }

// Read analyses the latest window of samples. It never blocks.
func (a *Analyzer) Read() Frame {
	clear(a.buf)
	if a.src != nil {
		s := a.src.Samples(a.size)
		copy(a.buf[a.size-len(s):], s)
	}
	for i := range a.buf {
		a.buf[i] *= a.window[i]
	}

	coeffs := fft.FFTReal(a.buf)

	frame := make(Frame, a.BinCount())
	scale := 255 / (a.maxDB - a.minDB)
	for k := range frame {
		mag := cmplx.Abs(coeffs[k]) / float64(a.size)
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		frame[k] = a.toByte(a.smoothed[k], scale)
	}
	return frame
}

func (a *Analyzer) toByte(mag, scale float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(scale * (db - a.minDB))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
