// Package rng implements the deterministic PRNG used to drive every piece
// randomizer. The algorithm must be bit-exact across platforms: replays are
// only reproducible if every implementation of FastStack computes the same
// stream from the same seed.
package rng

// State is Bob Jenkins' "smallprng" four-state generator.
// http://burtleburtle.net/bob/rand/smallprng.html
type State struct {
	a, b, c, d uint32
}

func rotl(x uint32, k uint) uint32 {
	return (x << k) | (x >> (32 - k))
}

// Next advances the generator and returns the next 32-bit output.
func (s *State) Next() uint32 {
	e := s.a - rotl(s.b, 27)
	s.a = s.b ^ rotl(s.c, 17)
	s.b = s.c + s.d
	s.c = s.d + e
	s.d = e + s.a
	return s.d
}

// Seed initializes the generator from a 32-bit seed and discards the first
// 20 outputs, as required for the stream to match the reference sequence.
func Seed(seed uint32) State {
	s := State{a: 0xf1ea5eed, b: seed, c: seed, d: seed}
	for i := 0; i < 20; i++ {
		s.Next()
	}
	return s
}

// Intn returns an unbiased integer in [lo, hi). hi must be > lo.
func (s *State) Intn(lo, hi uint32) uint32 {
	span := hi - lo
	limit := ^uint32(0) - (^uint32(0) % span)
	x := s.Next()
	for x >= limit {
		x = s.Next()
	}
	return lo + x%span
}
