// Package game drives the simulation: it owns the world and the systems,
// runs them in a fixed order every tick and hosts the graphical mode.
package game

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/minions/camera"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/physics"
	"github.com/pthm-cable/minions/renderer"
	"github.com/pthm-cable/minions/systems"
	"github.com/pthm-cable/minions/telemetry"
	"github.com/pthm-cable/minions/ui"
	"github.com/pthm-cable/minions/world"
)

// Systems holds one instance of every simulation system.
type Systems struct {
	Animation *systems.AnimationSystem
	Audio     *systems.AudioSystem
	Game      *systems.GameSystem
	Ai        *systems.AiSystem
	Alife     *systems.AlifeSystem
	Physics   *systems.PhysicsSystem
}

// NewSystems builds the systems over the given physics engine.
func NewSystems(cfg *config.Config, rng *rand.Rand, engine physics.Engine) Systems {
	return Systems{
		Animation: systems.NewAnimationSystem(),
		Audio:     systems.NewAudioSystem(cfg.Audio),
		Game:      systems.NewGameSystem(cfg, rng),
		Ai:        systems.NewAiSystem(),
		Alife:     systems.NewAlifeSystem(cfg.Minion, rng),
		Physics:   systems.NewPhysicsSystem(engine, cfg.Physics),
	}
}

// Ordered returns the systems in tick order.
func (s Systems) Ordered() []systems.System {
	return []systems.System{s.Animation, s.Audio, s.Game, s.Ai, s.Alife, s.Physics}
}

// stepPhases names each entry of Systems.Ordered for perf tracking.
var stepPhases = telemetry.Phases[:6]

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	seed    int64
	world   *world.World
	systems Systems
	dt      float64

	// State
	tick           int32
	paused         bool
	stepsPerUpdate int
	headless       bool
	genePoolPath   string

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	feed             *telemetry.Feed
	feedCancel       context.CancelFunc
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	lastStats        telemetry.WindowStats

	// Graphical mode only
	camera        *camera.Camera
	background    *renderer.BackgroundRenderer
	light         *renderer.LightRenderer
	agentRenderer *renderer.AgentRenderer
	registry      *systems.SystemRegistry
	overlays      *ui.OverlayRegistry
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	controls      *ui.ControlsPanel
	inspector     *ui.Inspector
	drawPerf      *DrawPerf
	uiRects       []rl.Rectangle

	screenWidth, screenHeight float32
	frame                     uint64
	frameTime                 time.Duration
	dragging                  bool
}

// NewGame creates a graphical game with default options.
func NewGame() *Game {
	return NewGameWithOptions(DefaultOptions())
}

// NewGameWithOptions creates a game. Graphical mode expects the raylib
// window to be open already.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	windowSec := cfg.Telemetry.WindowSec
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}

	g := &Game{
		cfg:              cfg,
		rng:              rng,
		seed:             opts.Seed,
		world:            world.New(cfg, rng),
		dt:               cfg.Physics.DT,
		stepsPerUpdate:   steps,
		headless:         opts.Headless,
		genePoolPath:     opts.GenePoolPath,
		collector:        telemetry.NewCollector(windowSec, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(int(1 / cfg.Physics.DT)),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}
	gravity := r2.Vec{X: cfg.Physics.Gravity[0], Y: cfg.Physics.Gravity[1]}
	g.systems = NewSystems(cfg, rng, physics.NewBox2D(gravity))

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	if opts.FeedAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		g.feed = telemetry.NewFeed(cfg.Telemetry.FeedBuffer)
		g.feedCancel = cancel
		go func() {
			if err := g.feed.ListenAndServe(ctx, opts.FeedAddr); err != nil {
				slog.Error("feed stopped", "addr", opts.FeedAddr, "error", err)
			}
		}()
	}

	if g.genePoolPath != "" {
		if _, err := os.Stat(g.genePoolPath); err == nil {
			if err := g.LoadGenePool(g.genePoolPath); err != nil {
				slog.Error("failed to load gene pool", "error", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("gene pool unavailable", "path", g.genePoolPath, "error", err)
		}
	}

	if !g.headless {
		g.initGraphics()
	}

	for _, s := range g.systems.Ordered() {
		s.Init(g.world)
	}
	g.spawnInitialPopulation()

	return g
}

// initGraphics creates renderers, UI panels and the audio speaker.
func (g *Game) initGraphics() {
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())

	g.camera = camera.New(g.screenWidth, g.screenHeight, float32(g.cfg.World.Width), float32(g.cfg.World.Height))
	g.background = renderer.NewBackgroundRenderer(10)
	g.light = renderer.NewLightRenderer(int32(g.screenWidth), int32(g.screenHeight))
	g.agentRenderer = renderer.NewAgentRenderer(g.camera)

	g.registry = systems.NewSystemRegistry()
	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-280, 10)
	g.controls = ui.NewControlsPanel(10, 100, 220)
	g.inspector = ui.NewInspector(int32(g.screenWidth)-240, 200, 230)
	g.drawPerf = NewDrawPerf()

	if g.cfg.Audio.Enabled {
		if err := g.systems.Audio.StartSpeaker(); err != nil {
			slog.Warn("audio disabled", "error", err)
		} else {
			g.systems.Audio.Enable()
		}
	}
}

// Update runs one frame of graphical mode: input, then the simulation.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.dt)
	}
}

// UpdateHeadless runs the simulation without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.dt)
	}
}

// SetStatsCallback sets a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// World returns the simulated world.
func (g *Game) World() *world.World { return g.world }

// Systems returns the running systems.
func (g *Game) Systems() Systems { return g.systems }

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// Paused reports whether graphical mode is paused.
func (g *Game) Paused() bool { return g.paused }

// LastStats returns the most recently flushed window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.WriteGenePool(telemetry.GeneRecords(g.world.MinionGenes())); err != nil {
			slog.Error("failed to write gene pool", "error", err)
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if g.feedCancel != nil {
		g.feedCancel()
	}
}
