package control

import "testing"

func TestDASChargesThenRepeats(t *testing.T) {
	tr := New(Config{DASDelay: 3, DASSpeed: 2})

	// tick 0: fresh press, immediate movement
	in := tr.Translate(KeyRight)
	if in.Movement != 1 {
		t.Fatalf("expected immediate movement on first press, got %d", in.Movement)
	}

	// ticks 1-2: held, not yet charged
	for i := 0; i < 2; i++ {
		in = tr.Translate(KeyRight)
		if in.Movement != 0 {
			t.Fatalf("tick %d: expected no movement before DAS charges, got %d", i+1, in.Movement)
		}
	}

	// tick 3: DAS charges and fires
	in = tr.Translate(KeyRight)
	if in.Movement != 1 {
		t.Fatal("expected movement the tick DAS charges")
	}

	// tick 4: one tick into repeat window, not yet due
	in = tr.Translate(KeyRight)
	if in.Movement != 0 {
		t.Fatal("expected no movement mid repeat-window")
	}

	// tick 5: repeat fires
	in = tr.Translate(KeyRight)
	if in.Movement != 1 {
		t.Fatal("expected repeat movement at DASSpeed interval")
	}
}

func TestReleasingDirectionResetsDAS(t *testing.T) {
	tr := New(Config{DASDelay: 2, DASSpeed: 2})
	tr.Translate(KeyRight)
	tr.Translate(KeyRight)
	in := tr.Translate(KeyRight) // charged
	if in.Movement != 1 {
		t.Fatal("expected DAS to have charged by tick 3")
	}
	tr.Translate(0)
	in = tr.Translate(KeyRight) // fresh press again, no carried charge
	if in.Movement != 1 {
		t.Fatal("expected an immediate movement on the fresh press")
	}
	in = tr.Translate(KeyRight)
	if in.Movement != 0 {
		t.Fatal("expected DAS charge to have been reset by the release")
	}
}

func TestOppositeDirectionOverridesAndCancels(t *testing.T) {
	tr := New(Config{DASDelay: 5, DASSpeed: 5})
	tr.Translate(KeyLeft | KeyRight) // both held: no net direction
	in := tr.Translate(KeyLeft | KeyRight)
	if in.Movement != 0 {
		t.Fatal("expected no movement while both directions are held")
	}
}

func TestRotationEdgeDetection(t *testing.T) {
	tr := New(Config{})
	in := tr.Translate(KeyRotR)
	if in.Rotation != RotRight {
		t.Fatalf("expected RotRight on fresh press, got %d", in.Rotation)
	}
	in = tr.Translate(KeyRotR)
	if in.Rotation != RotNone {
		t.Fatal("expected no repeated rotation while key stays held")
	}
	in = tr.Translate(0)
	in = tr.Translate(KeyRotR)
	if in.Rotation != RotRight {
		t.Fatal("expected rotation again after a release and fresh press")
	}
}

func TestHardDropAndHoldAreEdgeTriggered(t *testing.T) {
	tr := New(Config{})
	in := tr.Translate(KeyUp | KeyHold)
	if !in.HardDrop || !in.Hold {
		t.Fatal("expected hard drop and hold to fire on the first tick they're pressed")
	}
	in = tr.Translate(KeyUp | KeyHold)
	if in.HardDrop || in.Hold {
		t.Fatal("expected hard drop and hold to not repeat while held")
	}
}

func TestSoftDropTracksLevelNotEdge(t *testing.T) {
	tr := New(Config{})
	in := tr.Translate(KeyDown)
	if !in.SoftDrop {
		t.Fatal("expected soft drop active on first tick")
	}
	in = tr.Translate(KeyDown)
	if !in.SoftDrop {
		t.Fatal("expected soft drop to remain active while held")
	}
}

func TestPersistentIRSLatchesUntilConsumed(t *testing.T) {
	tr := New(Config{InitialRotationStyle: InitialPersistent})
	tr.CaptureInitialActions(KeyRotR)
	irs, ihs := tr.ConsumeInitialActions()
	if irs != RotRight {
		t.Fatalf("expected latched RotRight, got %d", irs)
	}
	if ihs {
		t.Fatal("expected no hold latch")
	}
	irs, _ = tr.ConsumeInitialActions()
	if irs != RotNone {
		t.Fatal("expected consuming to clear the latch")
	}
}

func TestTriggerIHSOnlyOnFreshPress(t *testing.T) {
	tr := New(Config{InitialHoldStyle: InitialTrigger})
	tr.CaptureInitialActions(0)
	tr.CaptureInitialActions(KeyHold)
	_, ihs := tr.ConsumeInitialActions()
	if !ihs {
		t.Fatal("expected IHS to latch on the fresh hold press")
	}
}

func TestResetDASClearsCharge(t *testing.T) {
	tr := New(Config{DASDelay: 1, DASSpeed: 1})
	tr.Translate(KeyRight)
	tr.Translate(KeyRight) // now charged and firing every tick
	tr.ResetDAS()
	in := tr.Translate(KeyRight)
	if in.Movement != 1 {
		t.Fatal("expected a fresh immediate movement after ResetDAS")
	}
}
