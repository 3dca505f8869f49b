package randomizer

import (
	"testing"

	"faststack/internal/piece"
	"faststack/internal/rng"
)

func TestBag7FirstBagNeverOpensSZO(t *testing.T) {
	for seed := uint32(0); seed < 200; seed++ {
		r := rng.Seed(seed)
		b := New(NoszoBag7)
		first := b.Next(&r)
		if first == piece.S || first == piece.Z || first == piece.O {
			t.Fatalf("seed %d: first bag opened with %s", seed, first)
		}
	}
}

func TestBag7CoverageWindow(t *testing.T) {
	r := rng.Seed(1)
	b := New(NoszoBag7)

	want := []piece.Kind{piece.L, piece.I, piece.J, piece.Z, piece.S, piece.O, piece.T,
		piece.Z, piece.I, piece.T, piece.O, piece.J, piece.L, piece.S}

	counts := map[piece.Kind]int{}
	for i := 0; i < 14; i++ {
		p := b.Next(&r)
		if p != want[i] {
			t.Fatalf("draw %d: got %s, want %s", i, p, want[i])
		}
		counts[p]++
	}
	for k := piece.I; k <= piece.Z; k++ {
		if counts[k] != 2 {
			t.Fatalf("piece %s appeared %d times in 14-draw window, want 2", k, counts[k])
		}
	}
}

func TestTGM1LongRunExercisesRerollPath(t *testing.T) {
	r := rng.Seed(123)
	tg := New(TGM1)
	history := make([]piece.Kind, 0, 4)
	for i := 0; i < 500; i++ {
		p := tg.Next(&r)
		for _, h := range history {
			_ = h // history constraint is probabilistic after maxRolls; just exercise the path
		}
		history = append(history, p)
		if len(history) > 4 {
			history = history[1:]
		}
	}
}

func TestSimpleCoversAllPieces(t *testing.T) {
	r := rng.Seed(55)
	s := New(Simple)
	seen := map[piece.Kind]bool{}
	for i := 0; i < 1000; i++ {
		seen[s.Next(&r)] = true
	}
	if len(seen) != piece.Count {
		t.Fatalf("expected %d distinct pieces, saw %d", piece.Count, len(seen))
	}
}

func TestDeterministicAcrossIndependentRuns(t *testing.T) {
	for _, typ := range []Type{Simple, NoszoBag7, TGM1, TGM2} {
		r1 := rng.Seed(77)
		r2 := rng.Seed(77)
		a := New(typ)
		b := New(typ)
		for i := 0; i < 50; i++ {
			if a.Next(&r1) != b.Next(&r2) {
				t.Fatalf("randomizer %d diverged at draw %d", typ, i)
			}
		}
	}
}
