package storage

import (
	"testing"
	"time"

	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/replay"
)

func TestSaveLoadReplayRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	overview := replay.Overview{
		Config:       engine.DefaultConfig(),
		Goal:         engine.Goal{Type: engine.GoalLines, Target: 40},
		TotalTicks:   1234,
		LinesCleared: 40,
	}
	deltas := []replay.Delta{
		{Tick: 0, Keys: control.KeyLeft},
		{Tick: 5, Keys: control.KeyRight | control.KeyRotR},
	}

	id, err := s.SaveReplay(overview, deltas)
	if err != nil {
		t.Fatalf("SaveReplay: %v", err)
	}

	gotOverview, gotDeltas, err := s.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if gotOverview != overview {
		t.Fatalf("overview mismatch: got %+v, want %+v", gotOverview, overview)
	}
	if len(gotDeltas) != len(deltas) {
		t.Fatalf("delta count mismatch: got %d, want %d", len(gotDeltas), len(deltas))
	}
	for i := range deltas {
		if gotDeltas[i] != deltas[i] {
			t.Fatalf("delta %d mismatch: got %+v, want %+v", i, gotDeltas[i], deltas[i])
		}
	}
}

func TestHiscoreListFilterAndOrder(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	entries := []HiscoreEntry{
		{ReplayID: 1, Date: time.Now(), Ticks: 500, Goal: 40},
		{ReplayID: 2, Date: time.Now(), Ticks: 300, Goal: 40},
		{ReplayID: 3, Date: time.Now(), Ticks: 200, Goal: 100},
	}
	for _, e := range entries {
		if err := s.SaveHiscore(e); err != nil {
			t.Fatalf("SaveHiscore: %v", err)
		}
	}

	got, err := s.ListHiscores(40)
	if err != nil {
		t.Fatalf("ListHiscores: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for goal=40, got %d", len(got))
	}
	if got[0].Ticks != 300 || got[1].Ticks != 500 {
		t.Fatalf("expected ascending tick order, got %+v", got)
	}

	all, err := s.ListHiscores(0)
	if err != nil {
		t.Fatalf("ListHiscores(0): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries unfiltered, got %d", len(all))
	}
}
