package rotation

import (
	"testing"

	"faststack/internal/piece"
)

func neverOccupied(x, y int) bool { return false }

func wallAt(minX, maxX, maxY int) func(x, y int) bool {
	return func(x, y int) bool {
		return x < minX || x > maxX || y > maxY
	}
}

func TestBlocksAppliesEntryTheta(t *testing.T) {
	sys := Systems[SystemSRS]
	blocks := PieceToBlocks(sys, piece.O, 3, 0, 0)
	want := [4]Offset{{4, 0}, {4, 1}, {5, 0}, {5, 1}}
	if blocks != want {
		t.Fatalf("got %v, want %v", blocks, want)
	}
}

func TestAttemptOpenFieldAlwaysSucceedsAtFirstTest(t *testing.T) {
	sys := Systems[SystemSRS]
	res, ok := Attempt(sys, piece.T, Right, 3, 3, 0, neverOccupied)
	if !ok {
		t.Fatal("expected rotation to succeed in an open field")
	}
	if res.KickDX != 0 || res.KickDY != 0 {
		t.Fatalf("expected the zero-offset test to win on an open field, got %+v", res)
	}
	if res.Theta != 1 {
		t.Fatalf("expected theta 1 after a right turn from 0, got %d", res.Theta)
	}
}

func TestAttemptFailsWhenAllTestsCollide(t *testing.T) {
	sys := Systems[SystemSimple]
	// SystemSimple has exactly one (0,0) test per direction; any collision
	// there must fail outright, with no further tests to fall back on.
	blocked := func(x, y int) bool { return true }
	_, ok := Attempt(sys, piece.T, Right, 3, 3, 0, blocked)
	if ok {
		t.Fatal("expected rotation to fail when the only test collides")
	}
}

func TestAttemptWallkickUsesLaterTest(t *testing.T) {
	sys := Systems[SystemSRS]
	// The I piece's vertical orientation occupies a single column at
	// base+2; placing that column one past the right wall makes the
	// zero-offset test collide while a later, more-negative dx test clears.
	field := wallAt(0, 18, 30)
	res, ok := Attempt(sys, piece.I, Right, 17, 4, 0, field)
	if !ok {
		t.Fatal("expected at least one kick test to clear the wall")
	}
	if res.KickDX == 0 {
		t.Fatalf("expected a non-zero kick offset to have won, got %+v", res)
	}
}

func TestArikaLJTVetoesJAtThetaZeroOnDirectFlank(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	flankDirect := func(x, y int) bool { return x == 5 && y == 3 }
	_, ok := Attempt(sys, piece.J, Right, 4, 3, 0, flankDirect)
	if ok {
		t.Fatal("expected the Arika LJT predicate to veto a J spin with (x+1,y) occupied at theta 0")
	}
}

func TestArikaLJTDoesNotVetoWhenFlanksClear(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	_, ok := Attempt(sys, piece.J, Right, 4, 3, 0, neverOccupied)
	if !ok {
		t.Fatal("expected rotation to succeed when the flanking cells are clear")
	}
}

func TestArikaLJTJCWAlwaysVetoesOnFlankOccupied(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	occ := func(x, y int) bool { return (x == 5 && y == 5) || (x == 6 && y == 3) }
	_, ok := Attempt(sys, piece.J, Right, 4, 3, 0, occ)
	if ok {
		t.Fatal("expected a CW spin to be vetoed whenever (x+1,y+2) is occupied, regardless of the corner")
	}
}

func TestArikaLJTJCCWVetoDependsOnCornerCell(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	cornerFilled := func(x, y int) bool { return (x == 5 && y == 5) || (x == 6 && y == 3) }
	_, okCornerFilled := Attempt(sys, piece.J, Left, 4, 3, 0, cornerFilled)
	if !okCornerFilled {
		t.Fatal("expected a CCW spin to succeed once the corner is also filled, clearing the veto")
	}

	cornerEmpty := func(x, y int) bool { return x == 5 && y == 5 }
	_, okCornerEmpty := Attempt(sys, piece.J, Left, 4, 3, 0, cornerEmpty)
	if okCornerEmpty {
		t.Fatal("expected a CCW spin to be vetoed when the flank cell is occupied and the corner is empty")
	}
}

func TestArikaLJTLIsMirrorOfJ(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	flankDirect := func(x, y int) bool { return x == 3 && y == 3 }
	_, ok := Attempt(sys, piece.L, Left, 4, 3, 0, flankDirect)
	if ok {
		t.Fatal("expected the Arika LJT predicate to veto an L spin with (x-1,y) occupied at theta 0")
	}
}

func TestArikaLJTTOnlyRestrictsAtThetaZeroAndTwo(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	flank := func(x, y int) bool { return x == 5 && y == 3 }
	_, ok := Attempt(sys, piece.T, Right, 4, 3, 1, flank)
	if !ok {
		t.Fatal("expected the Arika LJT predicate not to fire for T at theta 1")
	}
}

func TestNoKickSystemsDisableHalfturn(t *testing.T) {
	for _, st := range []SystemType{SystemSimple, SystemSega, SystemSRS} {
		sys := Systems[st]
		if sys.KicksH[piece.T] >= 0 {
			t.Fatalf("system %d: expected halfturn disabled for T", st)
		}
	}
}

func TestHalfturnRotatesTwoSteps(t *testing.T) {
	sys := Systems[SystemArikaSRS]
	res, ok := Attempt(sys, piece.S, Half, 3, 3, 1, neverOccupied)
	if !ok {
		t.Fatal("expected halfturn to succeed in an open field")
	}
	if res.Theta != 3 {
		t.Fatalf("expected theta 3 after a halfturn from 1, got %d", res.Theta)
	}
}

func TestAllSystemsIndexValidTables(t *testing.T) {
	for st := SystemType(0); st < systemCount; st++ {
		sys := Systems[st]
		for p := piece.Kind(0); p < piece.Count; p++ {
			for _, idx := range []int8{sys.KicksL[p], sys.KicksR[p], sys.KicksH[p]} {
				if idx < -1 || idx >= MaxTables {
					t.Fatalf("system %d piece %s: kick index %d out of range", st, p, idx)
				}
			}
		}
	}
}
