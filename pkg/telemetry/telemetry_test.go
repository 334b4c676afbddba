package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func us(n int) time.Duration { return time.Duration(n) * time.Microsecond }

func TestRecorder_Empty(t *testing.T) {
	r := NewRecorder(10)
	if got := r.Stats(); got != (Stats{}) {
		t.Errorf("Stats() on empty recorder = %+v; want zero", got)
	}
}

func TestRecorder_Quantiles(t *testing.T) {
	r := NewRecorder(100)
	// record out of order so the quantiles depend on sorting
	for i := 100; i >= 1; i-- {
		r.Record(Sample{Frame: uint64(101 - i), Duration: us(i), Particles: 250, Strength: 110})
	}

	st := r.Stats()
	tests := []struct {
		name      string
		got, want float64
	}{
		{"mean", st.MeanUS, 50.5},
		{"p50", st.P50US, 50},
		{"p90", st.P90US, 90},
		{"p99", st.P99US, 99},
		{"max", st.MaxUS, 100},
		{"budget", st.BudgetFPS, 1e6 / 50.5},
	}
	for _, tt := range tests {
		if d := tt.got - tt.want; d > 1e-6 || d < -1e-6 {
			t.Errorf("%s = %v; want %v", tt.name, tt.got, tt.want)
		}
	}
	if st.Samples != 100 || st.Frame != 100 || st.Particles != 250 || st.Strength != 110 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestRecorder_RollingWindow(t *testing.T) {
	r := NewRecorder(5)
	for i := 1; i <= 10; i++ {
		r.Record(Sample{Frame: uint64(i), Duration: us(i * 10)})
	}
	if r.Len() != 5 || r.Total() != 10 {
		t.Fatalf("Len() = %d, Total() = %d; want 5, 10", r.Len(), r.Total())
	}
	st := r.Stats()
	if st.MeanUS != 80 {
		t.Errorf("MeanUS = %v; want 80 (mean of the last five)", st.MeanUS)
	}
	if st.MaxUS != 100 || st.Frame != 10 {
		t.Errorf("MaxUS = %v, Frame = %d; want 100, 10", st.MaxUS, st.Frame)
	}
}

func TestCSVWriter_HeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	for i := 1; i <= 3; i++ {
		if err := w.Write(Stats{Frame: uint64(i), Samples: i, MeanUS: 12.5}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines; want header + 3 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "frame,samples,mean_us,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "3,3,12.5,") {
		t.Errorf("last row = %q", lines[3])
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCSVWriter_NilAndFile(t *testing.T) {
	var nilWriter *CSVWriter
	if err := nilWriter.Write(Stats{}); err != nil {
		t.Errorf("nil Write() error = %v", err)
	}
	if err := nilWriter.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}

	w, err := CreateCSV("")
	if err != nil || w != nil {
		t.Errorf("CreateCSV(\"\") = %v, %v; want nil, nil", w, err)
	}

	path := filepath.Join(t.TempDir(), "out", "frames.csv")
	w, err = CreateCSV(path)
	if err != nil {
		t.Fatalf("CreateCSV() error = %v", err)
	}
	if err := w.Write(Stats{Frame: 1}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "black_hole_strength") {
		t.Errorf("file content = %q", data)
	}
}

func TestCollector_ReportsEveryN(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(10, 4, NewCSVWriter(&buf), nil)
	for i := 1; i <= 10; i++ {
		if err := c.Observe(Sample{Frame: uint64(i), Duration: us(100)}); err != nil {
			t.Fatal(err)
		}
	}
	if c.Rows() != 2 {
		t.Errorf("Rows() = %d; want 2", c.Rows())
	}
	if c.Recorded() != 10 {
		t.Errorf("Recorded() = %d; want 10", c.Recorded())
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Errorf("csv has %d lines; want 3", got)
	}
	if c.Stats().MeanUS != 100 {
		t.Errorf("MeanUS = %v; want 100", c.Stats().MeanUS)
	}

	silent := NewCollector(0, 0, nil, nil)
	for i := 0; i < 120; i++ {
		_ = silent.Observe(Sample{Duration: us(1)})
	}
	if silent.Rows() != 2 {
		t.Errorf("default interval: Rows() = %d; want 2", silent.Rows())
	}
}

func BenchmarkRecorder_Stats(b *testing.B) {
	r := NewRecorder(120)
	for i := 0; i < 120; i++ {
		r.Record(Sample{Duration: us(i)})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Stats()
	}
}
