// Package engine drives the tick-based state machine that turns per-tick
// input into falling-piece motion, locking, line clears and finesse
// accounting. Every exported operation is deterministic: given the same
// Config and the same input stream, Tick produces the same sequence of
// states bit-for-bit (spec.md §4.7, grounded on the reference engine's
// fsGameTick dispatch in fs.c).
package engine

import (
	"time"

	"faststack/internal/control"
	"faststack/internal/field"
	"faststack/internal/finesse"
	"faststack/internal/piece"
	"faststack/internal/randomizer"
	"faststack/internal/rng"
	"faststack/internal/rotation"
)

// maxFallThrough bounds how many same-tick state transitions Tick may
// chase before returning. The original engine used `goto beginTick` to
// fall through state changes that produce no visible frame (ARE expiring
// directly into a spawned, already-falling piece, for instance); a capped
// loop reproduces the same player-visible behavior without goto
// (spec.md §9 "DESIGN NOTES" recommends exactly this rewrite).
const maxFallThrough = 8

// Game is one playthrough: field state, the piece in play, timers and
// accumulated statistics. Every field needed to resume play bit-exactly is
// reachable from this struct; nothing lives in package-level mutable
// state except the immutable rotation tables.
type Game struct {
	cfg Config

	field *field.Field
	rsys  *rotation.System

	randState rng.State
	rand      randomizer.Randomizer
	queue     []piece.Kind

	translator *control.Translator
	finesse    finesse.Counter

	state     GameState
	lastState GameState

	piece       piece.Kind
	x, y, theta int
	actualY     int // fixed point, GravityUnit subunits per cell

	holdPiece         piece.Kind
	holdSet           bool
	holdUsedThisPiece bool

	lockTimer      int
	areTimer       int
	phaseCounter   int
	floorkickCount int

	totalTicks uint64

	linesCleared         int
	blocksPlaced         int
	wastedDirectionTotal int
	wastedRotationTotal  int

	lastInput control.Input
	se        SoundEffect
}

// NewGame validates cfg and constructs a Game in its initial READY state.
func NewGame(cfg Config) (*Game, error) {
	g := &Game{}
	if err := g.Reset(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset reinitializes the game under a (possibly new) configuration,
// exactly as if constructed fresh with NewGame.
func (g *Game) Reset(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	g.cfg = cfg
	g.field = field.New(cfg.FieldWidth, cfg.FieldHeight)
	g.rsys = rotation.Systems[cfg.RotationSystem]
	seed := cfg.Seed
	if !cfg.SeedSet {
		seed = uint32(time.Now().UnixNano())
	}
	g.randState = rng.Seed(seed)
	g.rand = randomizer.New(cfg.RandomizerType)
	g.queue = nil
	g.translator = control.New(cfg.DAS)
	g.finesse.Reset()

	g.state = StateReady
	g.lastState = StateUnknown
	g.piece = piece.None
	g.x, g.y, g.theta = 0, 0, 0
	g.actualY = 0
	g.holdPiece = piece.None
	g.holdSet = false
	g.holdUsedThisPiece = false
	g.lockTimer = 0
	g.areTimer = 0
	g.phaseCounter = 0
	g.floorkickCount = 0
	g.totalTicks = 0
	g.linesCleared = 0
	g.blocksPlaced = 0
	g.wastedDirectionTotal = 0
	g.wastedRotationTotal = 0
	g.lastInput = control.Input{}
	g.se = 0
	g.refillQueue()
	return nil
}

// State returns the current phase of the state machine.
func (g *Game) State() GameState { return g.state }

// LastState returns the phase the state machine was in immediately before
// the current one.
func (g *Game) LastState() GameState { return g.lastState }

// Field exposes the playfield for read access (rendering, hashing).
func (g *Game) Field() *field.Field { return g.field }

// CurrentPiece returns the piece in play and its position/orientation.
// Valid only while State is FALLING or LANDED. It is piece.None before
// the first spawn and between a lock and the next spawn; after a topout
// it still names the piece that failed to spawn.
func (g *Game) CurrentPiece() (p piece.Kind, x, y, theta int) {
	return g.piece, g.x, g.y, g.theta
}

// CurrentBlocks returns the current piece's absolute block positions.
func (g *Game) CurrentBlocks() [4]rotation.Offset {
	return rotation.PieceToBlocks(g.rsys, g.piece, g.x, g.y, g.theta)
}

// HardDropPreview returns the y the current piece would land at if
// hard-dropped right now, for ghost-piece rendering.
func (g *Game) HardDropPreview() int {
	return g.y + g.hardDropDistance()
}

// NextQueue returns the upcoming pieces, most-imminent first.
func (g *Game) NextQueue() []piece.Kind {
	out := make([]piece.Kind, len(g.queue))
	copy(out, g.queue)
	return out
}

// Hold returns the held piece and whether one is currently held.
func (g *Game) Hold() (p piece.Kind, ok bool) {
	return g.holdPiece, g.holdSet
}

// Stats returns running totals for lines cleared, pieces locked and
// wasted finesse input, for scoring and replay overviews.
func (g *Game) Stats() (linesCleared, blocksPlaced, wastedDirection, wastedRotation int) {
	return g.linesCleared, g.blocksPlaced, g.wastedDirectionTotal, g.wastedRotationTotal
}

// TotalTicks returns how many ticks have been processed since the last
// Reset.
func (g *Game) TotalTicks() uint64 { return g.totalTicks }

// Goal returns the session's completion condition, as configured.
func (g *Game) Goal() Goal { return g.cfg.Goal }

// LastInput returns the resolved Input from the most recently processed
// tick, for replay verification and UI feedback.
func (g *Game) LastInput() control.Input { return g.lastInput }

// Tick advances the game by one frame given the raw virtual-key state for
// this frame, and returns the sound/feedback cues it produced. Calling
// Tick once GAMEOVER or QUIT has been reached returns a StateError.
func (g *Game) Tick(keys control.Key) (SoundEffect, error) {
	if g.state == StateGameOver || g.state == StateQuit {
		return 0, &StateError{State: g.state, Op: "tick"}
	}

	g.se = 0

	in := g.translator.Translate(keys)
	if g.state != StateFalling && g.state != StateLanded {
		g.translator.CaptureInitialActions(keys)
	}
	g.lastInput = in

	// totalTicks does not advance for a tick that starts in READY/GO: the
	// reference engine returns immediately out of that case before ever
	// reaching its end-of-tick counter bump.
	countTick := g.state != StateReady && g.state != StateGo

	for i := 0; i < maxFallThrough; i++ {
		if !g.step(in) {
			break
		}
		in = control.Input{}
	}

	if countTick {
		g.totalTicks++
	}

	return g.se, nil
}

// Quit transitions the game to QUIT, a terminal state distinct from
// GAMEOVER (a deliberate stop rather than a topout).
func (g *Game) Quit() {
	g.lastState = g.state
	g.state = StateQuit
}

// step runs one state's logic for the current tick and reports whether a
// same-tick fall-through to another state should continue.
func (g *Game) step(in control.Input) bool {
	switch g.state {
	case StateReady, StateGo:
		return g.tickReadyOrGo(in)
	case StateARE:
		return g.tickARE(in)
	case StateNewPiece:
		return g.spawnPiece()
	case StateFalling, StateLanded:
		return g.tickFalling(in)
	case StateLines:
		return g.tickLines()
	default:
		return false
	}
}

func (g *Game) setState(s GameState) {
	g.lastState = g.state
	g.state = s
}

// tickReadyOrGo drives the single monotonic phaseCounter that spans both
// READY and GO: it emits SEReady at count 0, transitions to GO and emits
// SEGo at ReadyPhaseLength, and transitions to NEW_PIECE at
// ReadyPhaseLength+GoPhaseLength. Both states also honor a HOLD press,
// which has no piece of its own to swap: it dequeues the head of the
// preview straight into holdPiece instead. Neither state ever falls
// through to another within the same tick; the original engine returns
// here unconditionally rather than looping.
func (g *Game) tickReadyOrGo(in control.Input) bool {
	if in.Hold && g.cfg.HoldEnabled && !g.holdUsedThisPiece {
		g.readyGoHold()
		if !g.cfg.InfiniteReadyGoHold {
			g.holdUsedThisPiece = true
		}
	}

	if g.phaseCounter == 0 {
		g.se |= SEReady
	}
	if g.phaseCounter == g.cfg.ReadyPhaseLength {
		g.se |= SEGo
		g.setState(StateGo)
	}
	// Not an else-if: GoPhaseLength may be 0, landing both thresholds on
	// the same counter value.
	if g.phaseCounter == g.cfg.ReadyPhaseLength+g.cfg.GoPhaseLength {
		g.setState(StateNewPiece)
	}
	g.phaseCounter++
	return false
}

// readyGoHold assigns the next piece due out of the preview queue as the
// held piece, discarding whatever was held before. Unlike doHold, there is
// no piece in play to swap back in.
func (g *Game) readyGoHold() {
	g.refillQueue()
	g.holdPiece = g.queue[0]
	g.queue = g.queue[1:]
	g.refillQueue()
	g.holdSet = true
	g.se |= SEHold
}

// tickARE waits out the entry delay between a lock and the next spawn,
// unless areCancellable is set and the player has already signaled intent
// (a live rotation/movement/drop/hold input, or an IRS/IHS latch) for the
// piece about to appear, in which case the wait ends immediately.
func (g *Game) tickARE(in control.Input) bool {
	signaled := in.Rotation != control.RotNone ||
		in.Movement != 0 ||
		in.SoftDrop ||
		in.HardDrop ||
		in.Hold ||
		g.translator.HasPendingInitialAction()
	if g.cfg.AreCancellable && signaled {
		g.areTimer = 0
		g.setState(StateNewPiece)
		return true
	}

	g.areTimer++
	if g.areTimer >= g.cfg.AREDelay {
		g.areTimer = 0
		g.setState(StateNewPiece)
		return true
	}
	return false
}

func (g *Game) tickLines() bool {
	g.phaseCounter++
	if g.phaseCounter >= g.cfg.LineClearDelay {
		g.phaseCounter = 0
		g.areTimer = 0
		g.setState(StateARE)
		return true
	}
	return false
}

// refillQueue tops the preview queue up to NextPieceCount+1 entries (the
// piece about to spawn plus every previewed piece after it).
func (g *Game) refillQueue() {
	for len(g.queue) < g.cfg.NextPieceCount+1 {
		g.queue = append(g.queue, g.rand.Next(&g.randState))
	}
}

func (g *Game) spawnPiece() bool {
	g.refillQueue()
	g.piece = g.queue[0]
	g.queue = g.queue[1:]
	g.refillQueue()

	g.x = g.cfg.FieldWidth/2 - 1
	g.y = 0
	g.theta = 0
	g.actualY = 0
	g.lockTimer = 0
	g.floorkickCount = 0
	g.holdUsedThisPiece = false
	g.finesse.Reset()
	g.translator.ResetDAS()

	if irs, ihs := g.translator.ConsumeInitialActions(); irs != control.RotNone || ihs {
		if ihs && g.cfg.HoldEnabled {
			g.holdUsedThisPiece = true
			g.doHold()
		}
		if irs != control.RotNone {
			g.applyRotation(irs)
		}
	}

	if g.field.IsCollision(g.CurrentBlocks()) {
		g.se |= SEGameOver | SETopOut
		g.setState(StateGameOver)
		return false
	}

	g.setState(StateFalling)
	return true
}

func (g *Game) occupied(x, y int) bool {
	return g.field.IsOccupied(x, y)
}

// applyRotation attempts a rotation and, on success, updates position,
// orientation and floorkick/lock-timer bookkeeping.
func (g *Game) applyRotation(dir control.RotationDir) bool {
	var rdir rotation.Direction
	switch dir {
	case control.RotLeft:
		rdir = rotation.Left
	case control.RotRight:
		rdir = rotation.Right
	case control.RotHalf:
		rdir = rotation.Half
	default:
		return false
	}

	res, ok := rotation.Attempt(g.rsys, g.piece, rdir, g.x, g.y, g.theta, g.occupied)
	if !ok {
		return false
	}

	g.x, g.y, g.theta = res.X, res.Y, res.Theta
	g.se |= SERotate

	if res.KickDY != 0 {
		if g.cfg.FloorkickLimit < 0 || g.floorkickCount < g.cfg.FloorkickLimit {
			g.floorkickCount++
			g.resetLockTimer(eventRotate)
		}
	} else {
		g.resetLockTimer(eventRotate)
	}
	return true
}

// lockEvent names what just happened to the piece, for resetLockTimer to
// judge against the configured LockStyle.
type lockEvent int8

const (
	eventFall lockEvent = iota
	eventMove
	eventRotate
)

// resetLockTimer resets the lock timer only if the configured LockStyle
// grants a timer refresh for an event of kind ev: LockEntry refreshes
// only on a natural gravity fall into a new row, LockMove refreshes only
// on lateral movement, and LockStep refreshes on any of the three.
func (g *Game) resetLockTimer(ev lockEvent) {
	switch g.cfg.LockStyle {
	case LockEntry:
		if ev == eventFall {
			g.lockTimer = 0
		}
	case LockMove:
		if ev == eventMove {
			g.lockTimer = 0
		}
	case LockStep:
		g.lockTimer = 0
	}
}

func (g *Game) doHold() {
	if g.holdSet {
		g.piece, g.holdPiece = g.holdPiece, g.piece
	} else {
		g.holdPiece = g.piece
		g.holdSet = true
		g.piece = g.queue[0]
		g.queue = g.queue[1:]
		g.refillQueue()
	}
	g.x = g.cfg.FieldWidth/2 - 1
	g.y = 0
	g.theta = 0
	g.actualY = 0
	g.lockTimer = 0
	g.floorkickCount = 0
	g.se |= SEHold
}

func (g *Game) hardDropDistance() int {
	return g.field.HardDropDistance(func(dy int) [4]rotation.Offset {
		return rotation.PieceToBlocks(g.rsys, g.piece, g.x, g.y+dy, g.theta)
	})
}

func (g *Game) restingOnSomething() bool {
	return g.hardDropDistance() == 0
}

func (g *Game) tickFalling(in control.Input) bool {
	g.finesse.Track(in)

	if in.Hold && g.cfg.HoldEnabled && !g.holdUsedThisPiece {
		g.holdUsedThisPiece = true
		g.doHold()
		if g.field.IsCollision(g.CurrentBlocks()) {
			g.se |= SEGameOver | SETopOut
			g.setState(StateGameOver)
			return false
		}
		g.setState(StateFalling)
		return false
	}

	if in.Rotation != control.RotNone {
		g.applyRotation(in.Rotation)
	}

	if in.Movement != 0 {
		nx := g.x + int(in.Movement)
		blocks := rotation.PieceToBlocks(g.rsys, g.piece, nx, g.y, g.theta)
		if !g.field.IsCollision(blocks) {
			g.x = nx
			g.se |= SEMove
			g.resetLockTimer(eventMove)
		}
	}

	if in.HardDrop {
		g.y += g.hardDropDistance()
		g.se |= SEHardDrop
		return g.lockPiece()
	}

	gravity := g.cfg.Gravity
	if in.SoftDrop {
		gravity = g.cfg.SoftDropGravity
	}
	g.actualY += gravity
	for g.actualY >= GravityUnit {
		g.actualY -= GravityUnit
		next := rotation.PieceToBlocks(g.rsys, g.piece, g.x, g.y+1, g.theta)
		if g.field.IsCollision(next) {
			g.actualY = 0
			break
		}
		g.y++
		g.resetLockTimer(eventFall)
	}

	if g.restingOnSomething() {
		g.setState(StateLanded)
		g.lockTimer++
		if g.lockTimer >= g.cfg.LockDelay {
			return g.lockPiece()
		}
	} else {
		g.setState(StateFalling)
		g.lockTimer = 0
	}

	return false
}

// lockPiece stamps the current piece into the field, accounts finesse,
// clears any completed lines and transitions to LINES or ARE.
func (g *Game) lockPiece() bool {
	g.field.Place(g.CurrentBlocks(), piece.Color[g.piece])
	g.blocksPlaced++
	g.se |= LockBit(g.piece)

	wd, wr := g.finesse.Wasted(g.piece, g.theta)
	g.wastedDirectionTotal += wd
	g.wastedRotationTotal += wr

	cleared := g.field.ClearLines()
	g.piece = piece.None

	if cleared > 0 {
		g.linesCleared += cleared
		g.se |= EraseBit(cleared)
	}

	if g.cfg.Goal.Type == GoalLines && g.linesCleared >= g.cfg.Goal.Target {
		g.se |= SEGoalComplete | SEGameOver
		g.setState(StateGameOver)
		return false
	}
	if g.cfg.Goal.Type == GoalTime && int(g.totalTicks) >= g.cfg.Goal.Target {
		g.se |= SEGoalComplete | SEGameOver
		g.setState(StateGameOver)
		return false
	}

	if cleared > 0 {
		g.phaseCounter = 0
		g.setState(StateLines)
	} else {
		g.areTimer = 0
		g.setState(StateARE)
	}
	return true
}
