package replay

import (
	"crypto/sha256"
	"encoding/binary"

	"faststack/internal/engine"
)

// ComputeChecksum hashes every field cell, the piece in play and its
// position/orientation, and the running tick count into a SHA-256 digest,
// the same per-frame-state-hash approach the teacher's determinism_test.go
// uses via ComputeFrameState — the mechanism by which two independent
// implementations (or two runs) of this engine can be proven to agree
// bit-for-bit on a given seed and input stream.
func ComputeChecksum(g *engine.Game) [32]byte {
	h := sha256.New()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], g.TotalTicks())
	h.Write(buf[:])

	f := g.Field()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			h.Write([]byte{f.Cell(x, y)})
		}
	}

	p, x, y, theta := g.CurrentPiece()
	h.Write([]byte{byte(p), byte(int8(x)), byte(int8(y)), byte(theta)})

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
