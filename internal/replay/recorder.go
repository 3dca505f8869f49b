package replay

import "faststack/internal/control"

// Recorder captures a delta-encoded input stream: a new Delta is appended
// only when the virtual-key bitset changes from the previous tick, since
// most ticks repeat the prior tick's held keys.
type Recorder struct {
	overview Overview
	deltas   []Delta
	lastKeys control.Key
	started  bool
}

// NewRecorder begins a recording against the given session Overview (its
// Config/Goal should already be populated; result fields are filled in
// later via Overview.SummarizeFrom).
func NewRecorder(overview Overview) *Recorder {
	return &Recorder{overview: overview}
}

// Record appends a Delta if keys differs from the previously recorded
// tick's keys (or this is the first tick recorded at all).
func (r *Recorder) Record(tick uint64, keys control.Key) {
	if r.started && keys == r.lastKeys {
		return
	}
	r.deltas = append(r.deltas, Delta{Tick: tick, Keys: keys})
	r.lastKeys = keys
	r.started = true
}

// Deltas returns the recorded delta stream.
func (r *Recorder) Deltas() []Delta {
	out := make([]Delta, len(r.deltas))
	copy(out, r.deltas)
	return out
}

// Overview returns the recorder's current overview (call after
// Overview.SummarizeFrom to capture final totals).
func (r *Recorder) Overview() Overview { return r.overview }

// SetOverview replaces the recorder's overview, used to stamp in final
// totals once play has finished.
func (r *Recorder) SetOverview(o Overview) { r.overview = o }
