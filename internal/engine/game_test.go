package engine

import (
	"testing"

	"faststack/internal/control"
	"faststack/internal/piece"
)

func quickConfig() Config {
	c := DefaultConfig()
	c.ReadyPhaseLength = 2
	c.GoPhaseLength = 2
	c.AREDelay = 2
	c.LineClearDelay = 2
	c.LockDelay = 3
	c.Gravity = GravityUnit // one cell per tick, for snappy tests
	return c
}

func tickUntilFalling(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 20 && g.State() != StateFalling; i++ {
		if _, err := g.Tick(0); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if g.State() != StateFalling {
		t.Fatalf("expected to reach FALLING, stuck in %s", g.State())
	}
}

func TestNewGameStartsInReady(t *testing.T) {
	g, err := NewGame(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if g.State() != StateReady {
		t.Fatalf("expected READY, got %s", g.State())
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.FieldWidth = 0
	if _, err := NewGame(c); err == nil {
		t.Fatal("expected a ConfigError for zero field width")
	}
}

func TestReadyGoTransitionsIntoPlay(t *testing.T) {
	g, err := NewGame(quickConfig())
	if err != nil {
		t.Fatal(err)
	}
	tickUntilFalling(t, g)
	p, _, _, _ := g.CurrentPiece()
	if p == piece.None {
		t.Fatal("expected a real piece once FALLING")
	}
}

func TestTickAfterGameOverReturnsStateError(t *testing.T) {
	g, _ := NewGame(quickConfig())
	g.Quit()
	if _, err := g.Tick(0); err == nil {
		t.Fatal("expected a StateError after Quit")
	}
}

func TestPieceFallsUnderGravity(t *testing.T) {
	g, _ := NewGame(quickConfig())
	tickUntilFalling(t, g)
	_, _, y0, _ := g.CurrentPiece()
	g.Tick(0)
	_, _, y1, _ := g.CurrentPiece()
	if y1 <= y0 {
		t.Fatalf("expected y to increase under gravity, got y0=%d y1=%d", y0, y1)
	}
}

func TestHardDropLocksImmediately(t *testing.T) {
	g, _ := NewGame(quickConfig())
	tickUntilFalling(t, g)
	dropped, _, _, _ := g.CurrentPiece()
	se, err := g.Tick(control.KeyUp)
	if err != nil {
		t.Fatal(err)
	}
	if se&SEHardDrop == 0 {
		t.Fatal("expected SEHardDrop on the hard-drop tick")
	}
	if se&LockBit(dropped) == 0 {
		t.Fatal("expected the dropped piece's lock cue on the hard-drop tick")
	}
	if g.State() != StateARE && g.State() != StateLines {
		t.Fatalf("expected ARE or LINES immediately after a hard drop, got %s", g.State())
	}
}

func TestHoldSwapsPieceOncePerSpawn(t *testing.T) {
	g, _ := NewGame(quickConfig())
	tickUntilFalling(t, g)
	first, _, _, _ := g.CurrentPiece()

	se, _ := g.Tick(control.KeyHold)
	if se&SEHold == 0 {
		t.Fatal("expected SEHold on the first hold press")
	}
	held, ok := g.Hold()
	if !ok || held != first {
		t.Fatalf("expected the original piece to be held, got %s (ok=%v)", held, ok)
	}

	g.Tick(0) // release the hold key so the next press is a fresh edge
	se, _ = g.Tick(control.KeyHold)
	if se&SEHold != 0 {
		t.Fatal("expected hold to be rejected a second time on the same piece")
	}
}

func TestMovementRespectsLeftWall(t *testing.T) {
	g, _ := NewGame(quickConfig())
	tickUntilFalling(t, g)

	for i := 0; i < 20; i++ {
		g.Tick(control.KeyLeft)
	}
	_, x, _, _ := g.CurrentPiece()
	if x < 0 {
		t.Fatalf("expected x to never go negative, got %d", x)
	}
}

func TestBlocksPlacedIncrementsOnLock(t *testing.T) {
	g, _ := NewGame(quickConfig())
	tickUntilFalling(t, g)
	g.Tick(control.KeyUp)
	_, blocks, _, _ := g.Stats()
	if blocks != 1 {
		t.Fatalf("expected 1 block placed after a hard drop, got %d", blocks)
	}
}

func TestLineClearGoalEndsGame(t *testing.T) {
	c := quickConfig()
	c.FieldWidth = 4
	c.Goal = Goal{Type: GoalLines, Target: 1}
	g, _ := NewGame(c)

	// Hard drop every piece at its spawn column on a 4-wide field; this is
	// a coarse fill, not a crafted perfect-clear, so just run enough pieces
	// that some line clear becomes overwhelmingly likely and assert the
	// goal eventually ends the game.
	for i := 0; i < 500 && g.State() != StateGameOver; i++ {
		g.Tick(control.KeyUp)
	}
	if g.State() != StateGameOver {
		t.Skip("goal did not complete within the tick budget for this random seed")
	}
}

func TestResetReturnsToReady(t *testing.T) {
	g, _ := NewGame(quickConfig())
	tickUntilFalling(t, g)
	if err := g.Reset(quickConfig()); err != nil {
		t.Fatal(err)
	}
	if g.State() != StateReady {
		t.Fatalf("expected READY after Reset, got %s", g.State())
	}
	if g.TotalTicks() != 0 {
		t.Fatal("expected TotalTicks to reset to 0")
	}
}

func TestTotalTicksDoesNotAdvanceDuringReadyGo(t *testing.T) {
	g, _ := NewGame(quickConfig())
	for i := 0; i < 4; i++ {
		if g.State() != StateReady && g.State() != StateGo {
			break
		}
		g.Tick(0)
	}
	if g.TotalTicks() != 0 {
		t.Fatalf("expected TotalTicks to stay 0 through READY/GO, got %d", g.TotalTicks())
	}
}

func TestReadyEmitsSEReadyOnFirstTick(t *testing.T) {
	g, _ := NewGame(quickConfig())
	se, err := g.Tick(0)
	if err != nil {
		t.Fatal(err)
	}
	if se&SEReady == 0 {
		t.Fatal("expected SEReady on the first READY tick")
	}
}

func TestHoldDuringReadyGoSwapsFromPreview(t *testing.T) {
	g, _ := NewGame(quickConfig())
	before := g.NextQueue()[0]

	se, err := g.Tick(control.KeyHold)
	if err != nil {
		t.Fatal(err)
	}
	if se&SEHold == 0 {
		t.Fatal("expected SEHold on a READY-phase hold press")
	}
	held, ok := g.Hold()
	if !ok || held != before {
		t.Fatalf("expected the previewed piece to become the held piece, got %s (ok=%v)", held, ok)
	}
}

func TestAreCancelRequiresConfigFlag(t *testing.T) {
	c := quickConfig()
	c.AREDelay = 50
	g, _ := NewGame(c)
	tickUntilFalling(t, g)
	g.Tick(control.KeyUp) // hard-drop to enter ARE (assuming no line clear)
	if g.State() != StateARE {
		t.Skip("did not land in ARE this seed")
	}
	g.Tick(control.KeyLeft)
	if g.State() != StateARE {
		t.Fatal("expected ARE to keep waiting when AreCancellable is false")
	}
}

func TestAreCancelEndsWaitOnInput(t *testing.T) {
	c := quickConfig()
	c.AREDelay = 50
	c.AreCancellable = true
	g, _ := NewGame(c)
	tickUntilFalling(t, g)
	g.Tick(control.KeyUp)
	if g.State() != StateARE {
		t.Skip("did not land in ARE this seed")
	}
	g.Tick(control.KeyLeft)
	if g.State() == StateARE {
		t.Fatal("expected a live movement input to cancel the ARE wait")
	}
}

func TestDeterministicAcrossTwoIndependentGames(t *testing.T) {
	cfg := quickConfig()
	g1, _ := NewGame(cfg)
	g2, _ := NewGame(cfg)

	inputs := []control.Key{0, control.KeyLeft, control.KeyLeft, control.KeyRotR, 0, control.KeyUp}
	for tick := 0; tick < 200; tick++ {
		k := inputs[tick%len(inputs)]
		se1, err1 := g1.Tick(k)
		se2, err2 := g2.Tick(k)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("tick %d: error divergence: %v vs %v", tick, err1, err2)
		}
		if err1 != nil {
			break
		}
		if se1 != se2 {
			t.Fatalf("tick %d: sound effect divergence: %v vs %v", tick, se1, se2)
		}
		if g1.State() != g2.State() {
			t.Fatalf("tick %d: state divergence: %s vs %s", tick, g1.State(), g2.State())
		}
	}
}
