package rotation

import "faststack/internal/piece"

// PieceOffsets gives each piece's four block positions within a 4x4
// bounding box, per rotation state, under the default (SRS-shaped)
// mapping every rotation system's EntryTheta is applied against. Values
// are taken verbatim from the reference engine's static block table.
var PieceOffsets = [piece.Count][4][4]Offset{
	piece.I: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	piece.J: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
	},
	piece.L: {
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	piece.O: {
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
	},
	piece.S: {
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	piece.T: {
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
	},
	piece.Z: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	},
}

// Blocks returns the four absolute block positions for p at (x, y, theta)
// under rotation system sys, accounting for the system's entry-theta
// offset (spec.md §3's invariant expression for piece blocks).
func Blocks(sys *System, p piece.Kind, x, y, theta int) [4]Offset {
	calcTheta := (theta + int(sys.EntryTheta[p])) & 3
	var out [4]Offset
	for i, o := range PieceOffsets[p][calcTheta] {
		out[i] = Offset{X: o.X + int8(x), Y: o.Y + int8(y)}
	}
	return out
}

func basicTable() Table {
	var t Table
	for theta := 0; theta < 4; theta++ {
		t[theta][0] = KickTest{DX: 0, DY: 0, Flag: FlagTest}
	}
	return t
}

// srsJLSTZKicks returns the standard-shaped 5-test kick tables used by the
// non-I, non-O pieces under an SRS-family system.
func srsJLSTZKicks(cw bool) Table {
	var t Table
	if cw {
		t[0] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-1, 0, FlagTest}, {-1, 1, FlagTest}, {0, -2, FlagTest}, {-1, -2, FlagTest}}
		t[1] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {1, 0, FlagTest}, {1, -1, FlagTest}, {0, 2, FlagTest}, {1, 2, FlagTest}}
		t[2] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {1, 0, FlagTest}, {1, 1, FlagTest}, {0, -2, FlagTest}, {1, -2, FlagTest}}
		t[3] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-1, 0, FlagTest}, {-1, -1, FlagTest}, {0, 2, FlagTest}, {-1, 2, FlagTest}}
	} else {
		t[0] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {1, 0, FlagTest}, {1, 1, FlagTest}, {0, -2, FlagTest}, {1, -2, FlagTest}}
		t[1] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {1, 0, FlagTest}, {1, -1, FlagTest}, {0, 2, FlagTest}, {1, 2, FlagTest}}
		t[2] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-1, 0, FlagTest}, {-1, 1, FlagTest}, {0, -2, FlagTest}, {-1, -2, FlagTest}}
		t[3] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-1, 0, FlagTest}, {-1, -1, FlagTest}, {0, 2, FlagTest}, {-1, 2, FlagTest}}
	}
	return t
}

func srsIKicks(cw bool) Table {
	var t Table
	if cw {
		t[0] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-2, 0, FlagTest}, {1, 0, FlagTest}, {-2, -1, FlagTest}, {1, 2, FlagTest}}
		t[1] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-1, 0, FlagTest}, {2, 0, FlagTest}, {-1, 2, FlagTest}, {2, -1, FlagTest}}
		t[2] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {2, 0, FlagTest}, {-1, 0, FlagTest}, {2, 1, FlagTest}, {-1, -2, FlagTest}}
		t[3] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {1, 0, FlagTest}, {-2, 0, FlagTest}, {1, -2, FlagTest}, {-2, 1, FlagTest}}
	} else {
		t[0] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {2, 0, FlagTest}, {-1, 0, FlagTest}, {2, 1, FlagTest}, {-1, -2, FlagTest}}
		t[1] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {1, 0, FlagTest}, {-2, 0, FlagTest}, {1, -2, FlagTest}, {-2, 1, FlagTest}}
		t[2] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-2, 0, FlagTest}, {1, 0, FlagTest}, {-2, -1, FlagTest}, {1, 2, FlagTest}}
		t[3] = [MaxKickLen]KickTest{{0, 0, FlagTest}, {-1, 0, FlagTest}, {2, 0, FlagTest}, {-1, 2, FlagTest}, {2, -1, FlagTest}}
	}
	return t
}

// arikaTableFor builds the J/L/T table gated by the classical TGM rotation
// exception (spec.md §9): theta 0 and 2 carry a FlagArikaLJT gate followed
// by a one-cell floorkick; theta 1 and 3 are plain.
func arikaTableFor() Table {
	var t Table
	t[0] = [MaxKickLen]KickTest{{0, 0, FlagArikaLJT}, {0, -1, FlagTest}}
	t[1] = [MaxKickLen]KickTest{{0, 0, FlagTest}}
	t[2] = [MaxKickLen]KickTest{{0, 0, FlagArikaLJT}, {0, -1, FlagTest}}
	t[3] = [MaxKickLen]KickTest{{0, 0, FlagTest}}
	return t
}

func noKickSystem() *System {
	s := &System{}
	for p := piece.Kind(0); p < piece.Count; p++ {
		s.KicksL[p] = 0
		s.KicksR[p] = 0
		s.KicksH[p] = -1
	}
	s.Tables[0] = basicTable()
	return s
}

func newSRSLikeSystem(supportHalfturn bool) *System {
	s := &System{}
	s.Tables[0] = basicTable()
	s.Tables[1] = srsJLSTZKicks(true)
	s.Tables[2] = srsJLSTZKicks(false)
	s.Tables[3] = srsIKicks(true)
	s.Tables[4] = srsIKicks(false)

	for _, p := range []piece.Kind{piece.J, piece.L, piece.S, piece.T, piece.Z} {
		s.KicksR[p] = 1
		s.KicksL[p] = 2
	}
	s.KicksR[piece.I] = 3
	s.KicksL[piece.I] = 4
	s.KicksR[piece.O] = 0
	s.KicksL[piece.O] = 0

	halfturn := int8(-1)
	if supportHalfturn {
		halfturn = 0
	}
	for p := piece.Kind(0); p < piece.Count; p++ {
		s.KicksH[p] = halfturn
	}
	return s
}

func newArikaSystem(supportHalfturn bool) *System {
	s := &System{}
	s.Tables[0] = basicTable()
	s.Tables[1] = arikaTableFor() // J
	s.Tables[2] = arikaTableFor() // L
	s.Tables[3] = arikaTableFor() // T
	s.Tables[4] = srsIKicks(true)

	s.KicksR[piece.J] = 1
	s.KicksL[piece.J] = 1
	s.KicksR[piece.L] = 2
	s.KicksL[piece.L] = 2
	s.KicksR[piece.T] = 3
	s.KicksL[piece.T] = 3

	for _, p := range []piece.Kind{piece.I, piece.S, piece.Z, piece.O} {
		s.KicksR[p] = 4
		s.KicksL[p] = 4
	}

	halfturn := int8(-1)
	if supportHalfturn {
		halfturn = 0
	}
	for p := piece.Kind(0); p < piece.Count; p++ {
		s.KicksH[p] = halfturn
	}
	return s
}

// Systems holds the seven statically-defined rotation systems, indexed by
// SystemType. All entry offsets are zero: every piece spawns centered per
// PieceOffsets without a per-system nudge, matching the reference engine's
// default (entryOffset is carried in the type for forward compatibility
// but unused by any of the seven built-ins).
var Systems = [systemCount]*System{
	SystemSimple:   noKickSystem(),
	SystemSega:     noKickSystem(),
	SystemSRS:      newSRSLikeSystem(false),
	SystemArikaSRS: newArikaSystem(true),
	SystemTGM12:    newArikaSystem(false),
	SystemTGM3:     newArikaSystem(true),
	SystemDTET:     newSRSLikeSystem(true),
}
