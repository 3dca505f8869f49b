// Package finesse counts the directional and rotational inputs spent on a
// single piece and reports how many were wasted relative to the minimum
// needed to reach its final resting orientation (spec.md §4.6, grounded
// on the reference engine's lockPiece finesse computation).
package finesse

import (
	"faststack/internal/control"
	"faststack/internal/piece"
)

// rotationLookup gives the minimum number of rotation keypresses needed to
// reach each of the four rotation states from spawn (theta 0), assuming a
// piece can turn either direction one step at a time. Reaching theta 2
// costs two presses even though a halfturn input can do it in one; the
// reference engine always counts it as two for finesse purposes.
var rotationLookup = [4]int{0, 1, 2, 1}

// Counter accumulates the raw input edges spent on the piece currently in
// play. The engine resets it at every spawn.
type Counter struct {
	Direction int
	Rotation  int
}

// Reset clears accumulated counts for a freshly spawned piece.
func (c *Counter) Reset() {
	c.Direction = 0
	c.Rotation = 0
}

// Track folds one tick's resolved input into the running counts.
func (c *Counter) Track(in control.Input) {
	if in.DirectionPress {
		c.Direction++
	}
	if in.Rotation != control.RotNone {
		c.Rotation++
	}
}

// Wasted returns how many of the accumulated directional and rotational
// presses were unnecessary, given the piece kind and the rotation state it
// locked in at. Every non-O piece subtracts the presses needed to reach
// theta (rotationLookup), clamping at zero; O, whose four orientations are
// visually identical, needs no rotation, so all of its presses are waste.
func (c *Counter) Wasted(p piece.Kind, theta int) (wastedDirection, wastedRotation int) {
	wastedDirection = c.Direction - 2
	if wastedDirection < 0 {
		wastedDirection = 0
	}

	if p == piece.O {
		wastedRotation = c.Rotation
		return
	}

	need := rotationLookup[theta&3]
	wastedRotation = c.Rotation - need
	if wastedRotation < 0 {
		wastedRotation = 0
	}
	return
}
