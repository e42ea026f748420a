package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHatchBoom       BookmarkType = "hatch_boom"
	BookmarkMinionRecovery  BookmarkType = "minion_recovery"
	BookmarkMinionCrash     BookmarkType = "minion_crash"
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentMinionMin    int // minimum minion count in recent history
	recentMinionPeak   int // peak minion count in recent history
	lastExtinctions    int
	stableWindowsCount int // consecutive windows with stable populations
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
		recentMinionMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Hatch boom: hatch count > 2x rolling average
		if b := bd.checkHatchBoom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Minion recovery: was ≤3, now ≥3x that
		if b := bd.checkMinionRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Minion crash: dropped >30% from recent peak
		if b := bd.checkMinionCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable ecosystem: minions and resources with low variance over 5+ windows
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Update history
	bd.addToHistory(stats)

	if stats.Minions < bd.recentMinionMin || bd.recentMinionMin < 0 {
		bd.recentMinionMin = stats.Minions
	}
	if stats.Minions > bd.recentMinionPeak {
		bd.recentMinionPeak = stats.Minions
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Extinctions <= bd.lastExtinctions {
		return nil
	}
	bd.lastExtinctions = stats.Extinctions
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Minions went extinct (%d total)", stats.Extinctions),
	}
}

func (bd *BookmarkDetector) checkHatchBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Hatched
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	current := float64(stats.Hatched)
	if current > avg*2.0 && stats.Hatched >= 5 {
		return &Bookmark{
			Type:        BookmarkHatchBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d hatched, %.1fx average (%.1f)", stats.Hatched, current/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkMinionRecovery(stats WindowStats) *Bookmark {
	if bd.recentMinionMin < 0 || bd.recentMinionMin > 3 {
		return nil
	}

	threshold := max(bd.recentMinionMin, 1) * 3
	if stats.Minions >= threshold && stats.Minions >= 6 {
		// Reset the minimum after triggering
		oldMin := bd.recentMinionMin
		bd.recentMinionMin = stats.Minions

		return &Bookmark{
			Type:        BookmarkMinionRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Minion population recovered from %d to %d", oldMin, stats.Minions),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkMinionCrash(stats WindowStats) *Bookmark {
	if bd.recentMinionPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Minions)/float64(bd.recentMinionPeak)
	if dropPercent > 0.30 && stats.Minions < bd.recentMinionPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentMinionPeak
		bd.recentMinionPeak = stats.Minions

		return &Bookmark{
			Type:        BookmarkMinionCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Minions crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Minions),
		}
	}

	return nil
}

// squaredCV is the squared coefficient of variation of xs, or 0 for a zero mean.
func squaredCV(xs []float64) float64 {
	mean, variance := stat.PopMeanVariance(xs, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Minions < 10 || stats.Resources < 5 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	minions := make([]float64, len(recent))
	resources := make([]float64, len(recent))
	for i, h := range recent {
		minions[i] = float64(h.Minions)
		resources[i] = float64(h.Resources)
	}

	if squaredCV(minions) < 0.04 && squaredCV(resources) < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d minions, %d resources over 5+ windows", stats.Minions, stats.Resources),
		}
	}

	return nil
}
