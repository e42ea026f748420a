package game

import (
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool    // Log window stats through slog
	StatsWindowSec float64 // 0 uses telemetry.window_sec
	OutputDir      string  // CSV output directory, empty disables it
	Headless       bool    // No window, renderers or audio
	StepsPerUpdate int     // Ticks per Update/UpdateHeadless call
	GenePoolPath   string  // Gene pool CSV loaded at start and written by dumps
	FeedAddr       string  // Websocket feed listen address, empty disables it

	Config        *config.Config              // nil uses config.Cfg()
	StatsCallback func(telemetry.WindowStats) // Called with every flushed window
}

// DefaultOptions returns options for a graphical run.
func DefaultOptions() Options {
	return Options{
		Seed:           42,
		StepsPerUpdate: 1,
		GenePoolPath:   telemetry.DefaultGenePoolFile,
	}
}
