// Package control translates a per-tick virtual-key bitset into the
// engine's Input struct, charging DAS (delayed auto-shift) and tracking
// initial rotation/hold actions across the ARE/spawn boundary. Grounded on
// the reference engine's FSControl/FSInput types (spec.md §4.5).
package control

// Key is a bitflag identifying one virtual button. A frontend maps its own
// physical input device onto this set every tick.
type Key uint16

const (
	KeyUp Key = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
	KeyRotL
	KeyRotR
	KeyRotH
	KeyHold
	KeyStart
)

// RotationDir names a requested rotation direction for one tick, or None.
type RotationDir int8

const (
	RotNone RotationDir = iota
	RotLeft
	RotRight
	RotHalf
)

// InitialActionStyle selects how IRS/IHS (initial rotation/hold system)
// behaves for keys still held from before a piece spawns.
type InitialActionStyle int8

const (
	InitialNone InitialActionStyle = iota
	InitialPersistent
	InitialTrigger
)

// Input is the fully-resolved action set for a single engine tick.
type Input struct {
	Movement int8 // -1 left, 0 none, 1 right
	Rotation RotationDir
	SoftDrop bool
	HardDrop bool
	Hold     bool
	// DirectionPress is true on the tick a direction key is first pressed
	// or the held direction changes; false on DAS-repeat and idle ticks.
	// Finesse accounting counts these edges, not raw Movement ticks.
	DirectionPress bool
}

// Config governs DAS timing, in ticks.
type Config struct {
	// DASDelay is how many ticks a direction must be held before auto-shift
	// begins.
	DASDelay int
	// DASSpeed is how many ticks elapse between each auto-shift repeat once
	// charged.
	DASSpeed int
	InitialRotationStyle InitialActionStyle
	InitialHoldStyle     InitialActionStyle
}

// Translator holds the control state that must persist across ticks: DAS
// charge progress and which keys were already down on the previous tick.
type Translator struct {
	cfg Config

	lastKeys Key
	dasDir   int8
	dasTimer int
	charged  bool

	// pendingIRS/pendingIHS latch a rotation/hold request made while no
	// piece is in play (during ARE), to be replayed at spawn per cfg's
	// initial-action style.
	pendingIRS RotationDir
	pendingIHS bool
}

// New constructs a translator with the given DAS/IRS/IHS configuration.
func New(cfg Config) *Translator {
	return &Translator{cfg: cfg}
}

// pressed reports whether bit k newly transitioned from up to down between
// lastKeys and keys.
func pressed(lastKeys, keys Key, k Key) bool {
	return keys&k != 0 && lastKeys&k == 0
}

// Translate consumes one tick's raw key bitset and returns the resolved
// Input, updating DAS and initial-action state for next tick.
func (tr *Translator) Translate(keys Key) Input {
	var in Input

	dir := int8(0)
	switch {
	case keys&KeyLeft != 0 && keys&KeyRight == 0:
		dir = -1
	case keys&KeyRight != 0 && keys&KeyLeft == 0:
		dir = 1
	}

	switch {
	case dir == 0:
		tr.dasDir = 0
		tr.dasTimer = 0
		tr.charged = false
	case dir != tr.dasDir:
		tr.dasDir = dir
		tr.dasTimer = 0
		tr.charged = false
		in.Movement = dir
		if dir != 0 {
			in.DirectionPress = true
		}
	default:
		tr.dasTimer++
		if tr.charged {
			if tr.dasTimer >= tr.cfg.DASSpeed {
				tr.dasTimer = 0
				in.Movement = dir
			}
		} else if tr.dasTimer >= tr.cfg.DASDelay {
			tr.charged = true
			tr.dasTimer = 0
			in.Movement = dir
		}
	}

	// Priority when multiple rotation keys are pressed on the same tick is
	// ROTR > ROTL > ROTH.
	switch {
	case pressed(tr.lastKeys, keys, KeyRotR):
		in.Rotation = RotRight
	case pressed(tr.lastKeys, keys, KeyRotL):
		in.Rotation = RotLeft
	case pressed(tr.lastKeys, keys, KeyRotH):
		in.Rotation = RotHalf
	}

	in.SoftDrop = keys&KeyDown != 0
	in.HardDrop = pressed(tr.lastKeys, keys, KeyUp)
	in.Hold = pressed(tr.lastKeys, keys, KeyHold)

	tr.lastKeys = keys
	return in
}

// CaptureInitialActions is called once per tick while no piece is in play
// (ARE/READY/GO), latching rotation/hold requests for replay at spawn
// according to the configured initial-action style.
func (tr *Translator) CaptureInitialActions(keys Key) {
	// Priority when multiple rotation keys are held is ROTR > ROTL > ROTH.
	switch tr.cfg.InitialRotationStyle {
	case InitialPersistent:
		switch {
		case keys&KeyRotR != 0:
			tr.pendingIRS = RotRight
		case keys&KeyRotL != 0:
			tr.pendingIRS = RotLeft
		case keys&KeyRotH != 0:
			tr.pendingIRS = RotHalf
		}
	case InitialTrigger:
		if pressed(tr.lastKeys, keys, KeyRotR) {
			tr.pendingIRS = RotRight
		} else if pressed(tr.lastKeys, keys, KeyRotL) {
			tr.pendingIRS = RotLeft
		} else if pressed(tr.lastKeys, keys, KeyRotH) {
			tr.pendingIRS = RotHalf
		}
	}

	switch tr.cfg.InitialHoldStyle {
	case InitialPersistent:
		if keys&KeyHold != 0 {
			tr.pendingIHS = true
		}
	case InitialTrigger:
		if pressed(tr.lastKeys, keys, KeyHold) {
			tr.pendingIHS = true
		}
	}

	tr.lastKeys = keys
}

// HasPendingInitialAction reports whether a rotation or hold has latched
// during the current ARE/ready phase, without consuming it. Used to decide
// whether an ARE wait can be cancelled early by player input.
func (tr *Translator) HasPendingInitialAction() bool {
	return tr.pendingIRS != RotNone || tr.pendingIHS
}

// ConsumeInitialActions returns and clears whatever IRS/IHS was latched
// during the preceding ARE/ready phase, to be applied at the moment a new
// piece spawns.
func (tr *Translator) ConsumeInitialActions() (RotationDir, bool) {
	irs, ihs := tr.pendingIRS, tr.pendingIHS
	tr.pendingIRS = RotNone
	tr.pendingIHS = false
	return irs, ihs
}

// ResetDAS clears DAS charge state, used whenever a new piece spawns (DAS
// does not carry across pieces by default in the reference engine).
func (tr *Translator) ResetDAS() {
	tr.dasDir = 0
	tr.dasTimer = 0
	tr.charged = false
}
