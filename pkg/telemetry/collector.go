package telemetry

import (
	golog "github.com/tochemey/goakt/v3/log"
)

// Collector records every frame and, every few frames, writes the window
// statistics as a CSV row and logs them.
type Collector struct {
	rec    *Recorder
	out    *CSVWriter
	every  uint64
	logger golog.Logger
	rows   int
}

// NewCollector creates a collector with a window of window frames that
// reports every every frames. out may be nil.
func NewCollector(window, every int, out *CSVWriter, logger golog.Logger) *Collector {
	if every < 1 {
		every = window
	}
	if every < 1 {
		every = 60
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	return &Collector{
		rec:    NewRecorder(window),
		out:    out,
		every:  uint64(every),
		logger: logger,
	}
}

// Observe records s and reports when the reporting interval is reached.
func (c *Collector) Observe(s Sample) error {
	c.rec.Record(s)
	if c.rec.Total()%c.every != 0 {
		return nil
	}

	st := c.rec.Stats()
	c.logger.Debugf("telemetry: frame=%d particles=%d mean=%.0fus p90=%.0fus max=%.0fus",
		st.Frame, st.Particles, st.MeanUS, st.P90US, st.MaxUS)
	if err := c.out.Write(st); err != nil {
		return err
	}
	c.rows++
	return nil
}

// Stats returns the statistics of the current window.
func (c *Collector) Stats() Stats { return c.rec.Stats() }

// Rows is the number of reports made so far.
func (c *Collector) Rows() int { return c.rows }

// Recorded is the number of frames observed.
func (c *Collector) Recorded() uint64 { return c.rec.Total() }
