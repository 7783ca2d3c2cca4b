// Command anthill runs the ant colony simulation in a window.
//
// Controls: left-click drops food at the cursor, space pauses,
// R seeds a fresh set of food clusters at fertile terrain.
// Configuration is via environment variables: ANTHILL_SEED pins the run
// seed, ANTHILL_DB sets the metrics database path, ANTHILL_API_PORT
// enables the HTTP observation API, ANTHILL_ADMIN_KEY guards its POST
// endpoints.
package main

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/talgya/anthill/internal/api"
	"github.com/talgya/anthill/internal/colony"
	"github.com/talgya/anthill/internal/engine"
	"github.com/talgya/anthill/internal/persistence"
)

// metricsInterval is the tick period between metrics samples
// (1 second at 60 TPS).
const metricsInterval = 60

// groundStep is the cell size of the prerendered terrain tint.
const groundStep = 8

// Host palette. The core assigns no colors; every mapping from
// simulation state to pixels lives here.
var (
	colorNest      = color.RGBA{255, 255, 0, 255}
	colorFood      = color.RGBA{0, 255, 0, 255}
	colorScent     = color.RGBA{0, 0, 255, 255}
	colorCarrying  = color.RGBA{0, 255, 0, 255}
	colorBuilder   = color.RGBA{165, 42, 42, 255}
	colorScavenger = color.RGBA{255, 255, 255, 255}
	colorStoreBar  = color.RGBA{0, 255, 0, 255}
	colorBuildBar  = color.RGBA{165, 42, 42, 255}
)

// Game is the ebiten shell around the simulation core. The stop flag
// is set from the signal handler goroutine; returning
// ebiten.Termination lets RunGame exit cleanly so the final metrics
// record still runs.
type Game struct {
	sim    *engine.Simulation
	db     *persistence.DB
	ground *ebiten.Image
	paused bool
	stop   atomic.Bool
}

func (g *Game) Update() error {
	if g.stop.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.SeedFoodClusters()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.sim.SpawnFood(float64(mx), float64(my), g.sim.Cfg.FoodPerClick)
	}

	if g.paused {
		return nil
	}

	g.sim.Advance()

	if g.db != nil && g.sim.LastTick%metricsInterval == 0 {
		if err := g.db.Record(g.sim.Status()); err != nil {
			slog.Error("metrics record failed", "error", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.ground, nil)

	snap := g.sim.Snapshot()
	height := float32(g.sim.Cfg.Height)

	vector.DrawFilledCircle(screen,
		float32(snap.Nest.X), float32(snap.Nest.Y), float32(snap.NestRadius), colorNest, true)

	for _, p := range snap.Markers {
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), 3, 1, colorScent, true)
	}
	for _, p := range snap.Food {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 5, colorFood, true)
	}
	for _, a := range snap.Ants {
		c := colorScavenger
		switch a.State {
		case engine.AntCarrying:
			c = colorCarrying
		case engine.AntBuilder:
			c = colorBuilder
		}
		vector.DrawFilledCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), 3, c, true)
	}

	storeH := float32(snap.StorageFrac * 100)
	vector.DrawFilledRect(screen, 10, height-storeH-10, 20, storeH, colorStoreBar, false)
	buildH := float32(snap.BuildingFrac * 50)
	vector.DrawFilledRect(screen, 40, height-buildH-10, 20, buildH, colorBuildBar, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.sim.Cfg.Width), int(g.sim.Cfg.Height)
}

// renderGround prerenders the terrain fertility tint once; the field is
// static for the life of a run.
func renderGround(sim *engine.Simulation) *ebiten.Image {
	w, h := int(sim.Cfg.Width), int(sim.Cfg.Height)
	img := ebiten.NewImage(w, h)
	for y := 0; y < h; y += groundStep {
		for x := 0; x < w; x += groundStep {
			f := sim.Terrain.Fertility(float64(x), float64(y))
			tint := color.RGBA{
				R: uint8(20 + 15*f),
				G: uint8(25 + 40*f),
				B: uint8(15 + 10*f),
				A: 255,
			}
			vector.DrawFilledRect(img, float32(x), float32(y), groundStep, groundStep, tint, false)
		}
	}
	return img
}

// runSeed returns the pinned seed from ANTHILL_SEED, or derives a fresh
// one from crypto/rand.
func runSeed() int64 {
	if v := os.Getenv("ANTHILL_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		slog.Warn("invalid ANTHILL_SEED, deriving one", "value", v)
	}
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := colony.DefaultConfig()
	seed := runSeed()
	sim := engine.New(cfg, seed)
	slog.Info("colony initialized",
		"seed", seed,
		"population", len(sim.Ants),
		"food_storage", cfg.InitialFoodStorage,
		"nest_radius", cfg.InitialNestSize,
	)

	dbPath := os.Getenv("ANTHILL_DB")
	if dbPath == "" {
		dbPath = filepath.Join("data", "anthill.db")
	}
	var db *persistence.DB
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		slog.Warn("metrics dir unavailable, recording disabled", "error", err)
	} else {
		var err error
		db, err = persistence.Open(dbPath)
		if err != nil {
			slog.Warn("metrics db unavailable, recording disabled", "error", err)
		} else {
			defer db.Close()
			slog.Info("metrics database opened", "path", dbPath)
		}
	}

	if portStr := os.Getenv("ANTHILL_API_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			slog.Warn("invalid ANTHILL_API_PORT, API disabled", "value", portStr)
		} else {
			adminKey := os.Getenv("ANTHILL_ADMIN_KEY")
			if adminKey == "" {
				slog.Warn("ANTHILL_ADMIN_KEY not set — food-drop endpoint will be disabled")
			}
			srv := &api.Server{Sim: sim, DB: db, Port: port, AdminKey: adminKey}
			srv.Start()
		}
	}

	game := &Game{sim: sim, db: db, ground: renderGround(sim)}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		game.stop.Store(true)
	}()

	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Anthill")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("game loop error", "error", err)
		os.Exit(1)
	}

	if db != nil {
		if err := db.Record(sim.Status()); err != nil {
			slog.Error("final metrics record failed", "error", err)
		}
	}
	slog.Info("simulation stopped", "tick", sim.LastTick)
}
