package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/game"
	"github.com/pthm-cable/minions/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	genePool := flag.String("gene-pool", telemetry.DefaultGenePoolFile, "Gene pool CSV loaded at start and written by F6")
	feedAddr := flag.String("feed-addr", "", "Serve window stats over websocket at this address (e.g. :8080)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		GenePoolPath:   *genePool,
		FeedAddr:       *feedAddr,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Minions")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
