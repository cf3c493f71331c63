// Package series tracks running per-metric aggregates over the process
// lifetime. Individual samples are not retained, only the latest value
// and the extremes seen so far.
package series

// Series is the running aggregate for one metric. A zero Series means no
// sample has arrived yet.
type Series struct {
	Current float64
	Min     float64
	Max     float64
	HasData bool
	Crit    float64 // last reported critical threshold
	HasCrit bool
}

// Tracker owns the Series for every metric key. It is not safe for
// concurrent use; the poller serializes access to it.
type Tracker struct {
	data map[string]*Series
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{data: make(map[string]*Series)}
}

// Update folds a sample into the series for key and returns the result.
// The first sample sets current, min and max at once; later samples move
// current and only widen the extremes.
func (t *Tracker) Update(key string, value float64) Series {
	s := t.series(key)
	if !s.HasData {
		s.Current, s.Min, s.Max = value, value, value
		s.HasData = true
		return *s
	}
	s.Current = value
	if value < s.Min {
		s.Min = value
	}
	if value > s.Max {
		s.Max = value
	}
	return *s
}

// SetCrit stores the critical threshold for key, last writer wins. The
// threshold is never folded into min/max.
func (t *Tracker) SetCrit(key string, crit float64) {
	s := t.series(key)
	s.Crit = crit
	s.HasCrit = true
}

// Get returns the series for key, zero if the key was never sampled.
func (t *Tracker) Get(key string) Series {
	if s, ok := t.data[key]; ok {
		return *s
	}
	return Series{}
}

func (t *Tracker) series(key string) *Series {
	s, ok := t.data[key]
	if !ok {
		s = &Series{}
		t.data[key] = s
	}
	return s
}
