package engine

import "faststack/internal/piece"

// GameState names a phase of the per-tick state machine (spec.md §4.7).
type GameState int8

const (
	StateReady GameState = iota
	StateGo
	StateFalling
	StateLanded
	StateARE
	StateNewPiece
	StateLines
	StateQuit
	StateGameOver
	StateUnknown
)

func (s GameState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateGo:
		return "GO"
	case StateFalling:
		return "FALLING"
	case StateLanded:
		return "LANDED"
	case StateARE:
		return "ARE"
	case StateNewPiece:
		return "NEW_PIECE"
	case StateLines:
		return "LINES"
	case StateQuit:
		return "QUIT"
	case StateGameOver:
		return "GAMEOVER"
	default:
		return "UNKNOWN"
	}
}

// LockStyle governs when a piece resting on the stack has its lock timer
// reset, matching the three classical conventions.
type LockStyle int8

const (
	// LockEntry resets the timer only when the piece falls into a new row
	// under gravity; rotating or sliding in place never buys more time.
	LockEntry LockStyle = iota
	// LockStep resets the timer on any successful move or rotation.
	LockStep
	// LockMove resets the timer on lateral movement but not on rotation.
	LockMove
)

// SoundEffect is a bitmask of the audio/feedback cues produced by a single
// tick, left for a frontend to interpret.
type SoundEffect uint32

const (
	SEReady SoundEffect = 1 << iota
	SEGo
	SERotate
	SEMove
	SEHardDrop
	SEHold
	SEGoalComplete
	SEGameOver
	SETopOut

	// Per-piece lock bits: exactly one fires per lockPiece call, naming
	// which of the seven kinds was just stamped into the field.
	SEIPiece
	SEJPiece
	SELPiece
	SEOPiece
	SESPiece
	SETPiece
	SEZPiece

	// Erase bits: exactly one fires per lockPiece call that clears lines,
	// naming how many rows cleared at once (1-4).
	SEErase1
	SEErase2
	SEErase3
	SEErase4
)

// lockBit maps a piece kind onto the SoundEffect bit that names it.
var lockBit = [piece.Count]SoundEffect{
	piece.I: SEIPiece,
	piece.J: SEJPiece,
	piece.L: SELPiece,
	piece.O: SEOPiece,
	piece.S: SESPiece,
	piece.T: SETPiece,
	piece.Z: SEZPiece,
}

// LockBit returns the SoundEffect bit identifying p's lock cue.
func LockBit(p piece.Kind) SoundEffect { return lockBit[p] }

// eraseBit maps a line-clear count (1-4) onto its SoundEffect bit.
var eraseBit = [5]SoundEffect{0, SEErase1, SEErase2, SEErase3, SEErase4}

// EraseBit returns the SoundEffect bit for clearing n lines at once,
// clamping n to the 1-4 range the reference engine itself supports.
func EraseBit(n int) SoundEffect {
	if n < 1 {
		return 0
	}
	if n > 4 {
		n = 4
	}
	return eraseBit[n]
}

// GoalType selects how a game session's completion condition is measured.
type GoalType int8

const (
	GoalNone GoalType = iota
	GoalLines
	GoalTime
)

// Goal pairs a completion condition with its target value (line count or
// tick count, depending on Type).
type Goal struct {
	Type   GoalType
	Target int
}
