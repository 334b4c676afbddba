package telemetry

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is the timing of one rendered frame.
type Sample struct {
	Frame     uint64
	Duration  time.Duration
	Particles int
	Strength  float64
}

// Recorder keeps the most recent frame samples in a ring buffer.
type Recorder struct {
	window  int
	samples []Sample
	next    int
	count   int
	total   uint64

	// scratch buffer reused by Stats
	durations []float64
}

// NewRecorder creates a recorder averaging over the last window frames
// (e.g. 60 for one second at 60fps).
func NewRecorder(window int) *Recorder {
	if window < 1 {
		window = 60
	}
	return &Recorder{
		window:    window,
		samples:   make([]Sample, window),
		durations: make([]float64, 0, window),
	}
}

// Record adds a sample, evicting the oldest once the window is full.
func (r *Recorder) Record(s Sample) {
	r.samples[r.next] = s
	r.next = (r.next + 1) % r.window
	if r.count < r.window {
		r.count++
	}
	r.total++
}

// Len is the number of samples currently in the window.
func (r *Recorder) Len() int { return r.count }

// Total is the number of samples recorded since creation.
func (r *Recorder) Total() uint64 { return r.total }

// Stats holds frame timing aggregated over the window. Durations are in
// microseconds.
type Stats struct {
	Frame     uint64  `csv:"frame"`
	Samples   int     `csv:"samples"`
	MeanUS    float64 `csv:"mean_us"`
	P50US     float64 `csv:"p50_us"`
	P90US     float64 `csv:"p90_us"`
	P99US     float64 `csv:"p99_us"`
	MaxUS     float64 `csv:"max_us"`
	BudgetFPS float64 `csv:"budget_fps"` // frames per second the mean would allow
	Particles int     `csv:"particles"`
	Strength  float64 `csv:"black_hole_strength"`
}

// Stats computes the window statistics. Particles, Strength and Frame come
// from the newest sample.
func (r *Recorder) Stats() Stats {
	if r.count == 0 {
		return Stats{}
	}

	r.durations = r.durations[:0]
	for i := 0; i < r.count; i++ {
		r.durations = append(r.durations, float64(r.samples[i].Duration)/float64(time.Microsecond))
	}
	slices.Sort(r.durations)

	newest := r.samples[(r.next-1+r.window)%r.window]
	mean := stat.Mean(r.durations, nil)
	var budget float64
	if mean > 0 {
		budget = float64(time.Second/time.Microsecond) / mean
	}

	return Stats{
		Frame:     newest.Frame,
		Samples:   r.count,
		MeanUS:    mean,
		P50US:     stat.Quantile(0.5, stat.Empirical, r.durations, nil),
		P90US:     stat.Quantile(0.9, stat.Empirical, r.durations, nil),
		P99US:     stat.Quantile(0.99, stat.Empirical, r.durations, nil),
		MaxUS:     floats.Max(r.durations),
		BudgetFPS: budget,
		Particles: newest.Particles,
		Strength:  newest.Strength,
	}
}
