// Package randomizer implements the four piece-sequencing policies a game
// may select between. Each policy is a small, independently-seeded state
// machine drawing from the shared PRNG; the engine dispatches on a tag
// rather than using inheritance (see DESIGN NOTES in spec.md §9).
package randomizer

import (
	"faststack/internal/piece"
	"faststack/internal/rng"
)

// Type selects which policy a Randomizer implements.
type Type int

const (
	Simple Type = iota
	NoszoBag7
	TGM1
	TGM2
)

// Randomizer draws the next piece from the shared PRNG. Implementations
// hold whatever internal history/bag state their policy requires.
type Randomizer interface {
	// Next returns the next piece in sequence, advancing internal state.
	Next(r *rng.State) piece.Kind
}

// New constructs a freshly-initialized randomizer for the given policy.
// The engine must call New whenever the configured Type changes mid-game
// (spec.md §4.2: "mark randomizer as requiring reinitialization").
func New(t Type) Randomizer {
	switch t {
	case NoszoBag7:
		return &bag7{}
	case TGM1:
		return newHistory4([4]piece.Kind{piece.Z, piece.Z, piece.Z, piece.Z}, 4)
	case TGM2:
		return newHistory4([4]piece.Kind{piece.Z, piece.S, piece.S, piece.Z}, 6)
	default:
		return simple{}
	}
}

// simple draws a uniform piece with no memory of prior draws.
type simple struct{}

func (simple) Next(r *rng.State) piece.Kind {
	return piece.Kind(r.Intn(0, piece.Count))
}

// bag7 shuffles a length-7 bag with Fisher-Yates and deals it in order,
// rejecting any first bag that would open with S, Z or O.
type bag7 struct {
	buf         [piece.Count]piece.Kind
	idx         int
	initialized bool
}

func fisherYates(r *rng.State, a []piece.Kind) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(0, uint32(i+1))
		a[i], a[j] = a[j], a[i]
	}
}

func (b *bag7) Next(r *rng.State) piece.Kind {
	if !b.initialized {
		for i := range b.buf {
			b.buf[i] = piece.Kind(i)
		}
		for {
			fisherYates(r, b.buf[:])
			if b.buf[0] != piece.S && b.buf[0] != piece.Z && b.buf[0] != piece.O {
				break
			}
		}
		b.idx = 0
		b.initialized = true
	}

	p := b.buf[b.idx]
	b.idx++
	if b.idx == piece.Count {
		b.idx = 0
		fisherYates(r, b.buf[:])
	}
	return p
}

// history4 implements the TGM1/TGM2 "history of 4" reroll policy: draw a
// piece, and if it appears in the last 4 pieces dealt, reroll (up to
// maxRolls total attempts), then record the result into the ring.
type history4 struct {
	history  [4]piece.Kind
	idx      int
	maxRolls int
}

func newHistory4(initial [4]piece.Kind, maxRolls int) *history4 {
	return &history4{history: initial, maxRolls: maxRolls}
}

func (h *history4) Next(r *rng.State) piece.Kind {
	var p piece.Kind
	for attempt := 0; attempt < h.maxRolls; attempt++ {
		p = piece.Kind(r.Intn(0, piece.Count))

		inHistory := false
		for _, hp := range h.history {
			if hp == p {
				inHistory = true
				break
			}
		}
		if !inHistory {
			break
		}
	}

	h.history[h.idx] = p
	h.idx = (h.idx + 1) & 3
	return p
}
