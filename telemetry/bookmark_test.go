package telemetry

import (
	"testing"
)

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HatchBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Minions: 20, Hatched: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Minions: 20, Hatched: 9})
	if !hasBookmark(bookmarks, BookmarkHatchBoom) {
		t.Error("expected hatch_boom bookmark")
	}
}

func TestBookmarkDetector_MinionCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Minions: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Minions: 50})
	if !hasBookmark(bookmarks, BookmarkMinionCrash) {
		t.Error("expected minion_crash bookmark")
	}
}

func TestBookmarkDetector_MinionRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Minions: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 2400, Minions: 10})
	if !hasBookmark(bookmarks, BookmarkMinionRecovery) {
		t.Error("expected minion_recovery bookmark")
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	tests := []struct {
		name        string
		extinctions []int
		want        []bool
	}{
		{"first extinction", []int{0, 1}, []bool{false, true}},
		{"counted once", []int{1, 1, 1}, []bool{true, false, false}},
		{"second extinction", []int{1, 1, 2}, []bool{true, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			for i, n := range tt.extinctions {
				got := hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i * 600), Extinctions: n}), BookmarkExtinction)
				if got != tt.want[i] {
					t.Errorf("window %d: extinction bookmark = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 600), Minions: 40, Resources: 30})
		if hasBookmark(bookmarks, BookmarkStableEcosystem) {
			triggered++
			if i != 8 {
				t.Errorf("stable_ecosystem at window %d, want 8", i)
			}
		}
	}
	if triggered != 1 {
		t.Errorf("stable_ecosystem triggered %d times, want 1", triggered)
	}
}
