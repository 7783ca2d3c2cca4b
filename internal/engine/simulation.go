// Package engine drives the colony simulation one tick at a time and
// exposes the drawable state the host renders. One Advance call
// corresponds to one rendered frame; the engine has no clock of its own.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/talgya/anthill/internal/agents"
	"github.com/talgya/anthill/internal/colony"
	"github.com/talgya/anthill/internal/world"
)

// reportInterval is the tick period of the slog progress report
// (10 seconds at 60 ticks per second).
const reportInterval = 600

// clusterCandidates is how many fertility samples are drawn when
// placing each initial food cluster.
const clusterCandidates = 16

// SimStats is the aggregate state reported after every tick.
type SimStats struct {
	Tick             uint64  `json:"tick" db:"tick"`
	Population       int     `json:"population" db:"population"`
	FoodStorage      float64 `json:"food_storage" db:"food_storage"`
	NestRadius       int     `json:"nest_radius" db:"nest_radius"`
	BuildingProgress float64 `json:"building_progress" db:"building_progress"`
	Harvests         uint64  `json:"harvests" db:"harvests"`
	FoodSites        int     `json:"food_sites" db:"-"`
	ScentMarkers     int     `json:"scent_markers" db:"-"`
}

type foodDrop struct {
	at    world.Point
	count int
}

// Simulation holds the complete run state and advances it tick by tick.
// Advance is single-threaded; SpawnFood and Status are safe to call
// from other goroutines (host input, HTTP handlers).
type Simulation struct {
	Cfg     colony.Config
	Colony  *colony.Colony
	Ants    []*agents.Ant
	Food    *world.Grid[*world.FoodSite]
	Scent   *world.Grid[*world.ScentMarker]
	Terrain *world.Terrain
	Policy  agents.Policy

	LastTick uint64

	spawner *agents.Spawner
	rng     *rand.Rand

	mu      sync.Mutex
	pending []foodDrop
	stats   SimStats
}

// New creates a simulation from a config and run seed. The starting
// population spawns at the nest and the configured number of food
// clusters is queued at the most fertile sampled terrain points,
// landing on the first Advance like any other external drop.
func New(cfg colony.Config, seed int64) *Simulation {
	pol := agents.DefaultPolicy()
	col := colony.New(cfg)
	sp := agents.NewSpawner(seed)

	s := &Simulation{
		Cfg:     cfg,
		Colony:  col,
		Food:    world.NewGrid[*world.FoodSite](cfg.Width, cfg.Height, cfg.GridCellSize),
		Scent:   world.NewGrid[*world.ScentMarker](cfg.Width, cfg.Height, cfg.GridCellSize),
		Terrain: world.NewTerrain(seed),
		Policy:  pol,
		spawner: sp,
		rng:     rand.New(rand.NewSource(seed)),
	}
	s.Ants = sp.SpawnInitial(col, pol)
	s.SeedFoodClusters()
	s.refreshStats()
	return s
}

// SpawnFood queues count food sites at (x, y). The queue is applied at
// the start of the next Advance call.
func (s *Simulation) SpawnFood(x, y float64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, foodDrop{at: world.Point{X: x, Y: y}, count: count})
}

// Advance runs one tick in the fixed order: queued food drops, colony
// upkeep and births, scent decay, then the ant loop in creation order.
// Newborns are merged in before the loop and act on their birth tick.
func (s *Simulation) Advance() {
	s.LastTick++

	s.mu.Lock()
	drops := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, d := range drops {
		for i := 0; i < d.count; i++ {
			f := world.NewFoodSite(d.at, s.rng)
			s.Food.Add(f, f.Pos)
		}
	}

	// Population is capped at spawn time only; ants are never removed.
	if s.Colony.Tick(len(s.Ants), s.rng) {
		s.Ants = append(s.Ants, s.spawner.Spawn(s.Colony, s.Policy))
	}

	var dead []*world.ScentMarker
	s.Scent.ForEach(func(m *world.ScentMarker, _ world.Point) {
		if !m.Decay() {
			dead = append(dead, m)
		}
	})
	for _, m := range dead {
		s.Scent.Remove(m)
	}

	for _, a := range s.Ants {
		a.Step(s.Food, s.Scent, s.Policy, s.rng)
	}

	s.refreshStats()

	if s.LastTick%reportInterval == 0 {
		st := s.Status()
		slog.Info("colony report",
			"tick", st.Tick,
			"population", st.Population,
			"food_storage", fmt.Sprintf("%.1f", st.FoodStorage),
			"nest_radius", st.NestRadius,
			"building", fmt.Sprintf("%.1f", st.BuildingProgress),
			"harvests", st.Harvests,
			"food_sites", st.FoodSites,
		)
	}
}

// Status returns a copy of the latest aggregate stats. Safe to call
// concurrently with Advance.
func (s *Simulation) Status() SimStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Simulation) refreshStats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = SimStats{
		Tick:             s.LastTick,
		Population:       len(s.Ants),
		FoodStorage:      s.Colony.FoodStorage,
		NestRadius:       s.Colony.NestRadius,
		BuildingProgress: s.Colony.BuildingProgress,
		Harvests:         s.Colony.Harvests,
		FoodSites:        s.Food.Len(),
		ScentMarkers:     s.Scent.Len(),
	}
}

// SeedFoodClusters queues food drops at the most fertile of a sampled
// candidate set, one cluster per configured site. Runs at startup and
// on host request; like any other drop, the clusters land on the next
// Advance.
func (s *Simulation) SeedFoodClusters() {
	for i := 0; i < s.Cfg.InitialFoodClusters; i++ {
		best := world.Point{X: s.rng.Float64() * s.Cfg.Width, Y: s.rng.Float64() * s.Cfg.Height}
		bestFert := s.Terrain.Fertility(best.X, best.Y)
		for j := 1; j < clusterCandidates; j++ {
			p := world.Point{X: s.rng.Float64() * s.Cfg.Width, Y: s.rng.Float64() * s.Cfg.Height}
			if f := s.Terrain.Fertility(p.X, p.Y); f > bestFert {
				best, bestFert = p, f
			}
		}
		s.SpawnFood(best.X, best.Y, s.Cfg.FoodPerClick*3)
	}
}
