package perf

import "time"

// Phase names the pipeline stages the tracker records.
type Phase string

const (
	PhaseQuery      Phase = "query"
	PhaseEmbedding  Phase = "embedding"
	PhaseRetrieval  Phase = "retrieval"
	PhaseGeneration Phase = "generation"
)

// Metrics summarizes the recorded durations of one phase.
type Metrics struct {
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Count int           `json:"count"`
}

// Tracker records per-phase durations for the lifetime of a session.
// Not safe for concurrent use; the pipeline runs one operation at a time.
type Tracker struct {
	durations map[Phase][]time.Duration
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// Track records one duration for a phase.
func (t *Tracker) Track(phase Phase, d time.Duration) {
	t.durations[phase] = append(t.durations[phase], d)
}

// Measure runs fn and records its wall-clock duration for the phase.
func (t *Tracker) Measure(phase Phase, fn func() error) error {
	start := time.Now()
	err := fn()
	t.Track(phase, time.Since(start))
	return err
}

// Metrics returns the summary for every phase, including empty ones.
func (t *Tracker) Metrics() map[Phase]Metrics {
	result := make(map[Phase]Metrics, len(t.durations))
	for phase, values := range t.durations {
		result[phase] = summarize(values)
	}
	return result
}

// Reset discards all recorded durations.
func (t *Tracker) Reset() {
	t.durations = map[Phase][]time.Duration{
		PhaseQuery:      nil,
		PhaseEmbedding:  nil,
		PhaseRetrieval:  nil,
		PhaseGeneration: nil,
	}
}

func summarize(values []time.Duration) Metrics {
	if len(values) == 0 {
		return Metrics{}
	}

	m := Metrics{Min: values[0], Max: values[0], Count: len(values)}
	var total time.Duration
	for _, v := range values {
		total += v
		if v < m.Min {
			m.Min = v
		}
		if v > m.Max {
			m.Max = v
		}
	}
	m.Avg = total / time.Duration(len(values))

	return m
}
