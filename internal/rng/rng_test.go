package rng

import "testing"

// TestReferenceSequence pins the generator to the bit-exact sequence that
// every FastStack implementation must reproduce from this seed. Values were
// computed independently from the smallprng recurrence in spec.md §4.1.
func TestReferenceSequence(t *testing.T) {
	want := []uint32{
		0x4324435b, 0x28203161, 0xe6d195a6, 0x31e53a77, 0x7c50cdfb,
		0x1849d870, 0x8acf3d19, 0xb11c67e4, 0x22bac887, 0x7c58e3e7,
	}

	s := Seed(0x12345678)
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Fatalf("output %d: got %#x, want %#x", i, got, w)
		}
	}
}

func TestDeterministicFromSeed(t *testing.T) {
	a := Seed(42)
	b := Seed(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("divergence at step %d", i)
		}
	}
}

func TestIntnBounded(t *testing.T) {
	s := Seed(7)
	for i := 0; i < 1000; i++ {
		v := s.Intn(3, 10)
		if v < 3 || v >= 10 {
			t.Fatalf("Intn(3, 10) out of range: %d", v)
		}
	}
}

func TestIntnUniformAcrossRange(t *testing.T) {
	s := Seed(99)
	seen := make(map[uint32]bool)
	for i := 0; i < 500; i++ {
		seen[s.Intn(0, 7)] = true
	}
	if len(seen) != 7 {
		t.Fatalf("expected all 7 values to appear, saw %d distinct", len(seen))
	}
}
