// Package replay records and plays back a deterministic input stream
// against the engine, and computes per-tick checksums so two
// implementations (or two runs) can be verified bit-exact (spec.md §6.4,
// grounded on the teacher's savestate/determinism-test pattern in
// internal/emulator/savestate.go and determinism_test.go).
package replay

import (
	"fmt"

	"faststack/internal/control"
	"faststack/internal/engine"
)

// ReplayError reports a failure specific to recording, encoding or
// replaying a session — distinct from engine.ConfigError/StateError,
// which concern the game itself.
type ReplayError struct {
	Op     string
	Reason string
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay: %s: %s", e.Op, e.Reason)
}

// Overview is the persisted summary of one session: the configuration
// that produced it, and (once play has finished) the resulting totals.
// This is the piece that is small and queried often, kept apart from the
// much larger per-tick Delta stream (spec.md §4.10).
type Overview struct {
	Config engine.Config
	Goal   engine.Goal

	FinalState       engine.GameState
	TotalTicks       uint64
	LinesCleared     int
	BlocksPlaced     int
	WastedDirection  int
	WastedRotation   int
}

// Delta is one recorded keystate change: the tick it took effect on, and
// the full virtual-key bitset from that tick onward until the next Delta.
type Delta struct {
	Tick uint64
	Keys control.Key
}

// SummarizeFrom fills in Overview's result fields from a Game that has
// finished playing (or been stopped), leaving Config/Goal untouched.
func (o *Overview) SummarizeFrom(g *engine.Game) {
	o.FinalState = g.State()
	o.TotalTicks = g.TotalTicks()
	o.LinesCleared, o.BlocksPlaced, o.WastedDirection, o.WastedRotation = g.Stats()
}
