package engine

import (
	"testing"

	"github.com/talgya/anthill/internal/agents"
	"github.com/talgya/anthill/internal/colony"
	"github.com/talgya/anthill/internal/world"
)

// testConfig disables the initial population and food clusters so each
// test controls exactly what exists.
func testConfig() colony.Config {
	cfg := colony.DefaultConfig()
	cfg.InitialColonySize = 0
	cfg.InitialFoodClusters = 0
	return cfg
}

func TestSpawnFoodAppliedOnNextAdvance(t *testing.T) {
	cfg := testConfig()
	cfg.GrowthRate = 0
	sim := New(cfg, 1)

	sim.SpawnFood(100, 100, 5)
	if sim.Food.Len() != 0 {
		t.Fatalf("food applied before Advance: %d sites", sim.Food.Len())
	}

	sim.Advance()
	if sim.Food.Len() != 5 {
		t.Fatalf("food sites=%d, want 5", sim.Food.Len())
	}

	// Queue drains; a second tick must not re-apply the drop.
	sim.Advance()
	if sim.Food.Len() != 5 {
		t.Fatalf("food sites after second tick=%d, want 5", sim.Food.Len())
	}
}

// Reseeding queues a fresh round of clusters; like any external drop
// they land on the next tick, not immediately.
func TestSeedFoodClustersQueuesDrops(t *testing.T) {
	cfg := testConfig()
	cfg.GrowthRate = 0
	cfg.InitialFoodClusters = 2
	sim := New(cfg, 1)

	perSeeding := cfg.InitialFoodClusters * cfg.FoodPerClick * 3

	sim.Advance()
	if sim.Food.Len() != perSeeding {
		t.Fatalf("food sites after startup seeding=%d, want %d", sim.Food.Len(), perSeeding)
	}

	sim.SeedFoodClusters()
	if sim.Food.Len() != perSeeding {
		t.Fatalf("reseed applied before Advance: %d sites", sim.Food.Len())
	}

	sim.Advance()
	if sim.Food.Len() != 2*perSeeding {
		t.Errorf("food sites after reseed=%d, want %d", sim.Food.Len(), 2*perSeeding)
	}
}

// A newborn merged in before the agent loop acts on the very tick it
// was born.
func TestNewbornActsSameTick(t *testing.T) {
	cfg := testConfig()
	cfg.GrowthRate = 1
	cfg.ConsumptionRate = 0
	sim := New(cfg, 1)
	sim.Policy.BuilderShare = 0 // every rolled role is scavenger

	sim.SpawnFood(cfg.Nest.X, cfg.Nest.Y, 1)
	sim.Advance()

	if len(sim.Ants) != 1 {
		t.Fatalf("population=%d, want 1", len(sim.Ants))
	}
	if !sim.Ants[0].Carrying {
		t.Error("newborn did not act on its birth tick")
	}
	if sim.Food.Len() != 0 {
		t.Errorf("food sites=%d, want 0 after same-tick harvest", sim.Food.Len())
	}
}

func TestPopulationNeverExceedsCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxColonySize = 3
	cfg.GrowthRate = 1
	cfg.ConsumptionRate = 0
	sim := New(cfg, 1)

	for i := 0; i < 10; i++ {
		sim.Advance()
		if len(sim.Ants) > cfg.MaxColonySize {
			t.Fatalf("tick %d: population=%d exceeds cap %d", i, len(sim.Ants), cfg.MaxColonySize)
		}
	}
	if len(sim.Ants) != cfg.MaxColonySize {
		t.Errorf("population=%d, want %d at certain growth", len(sim.Ants), cfg.MaxColonySize)
	}
}

// Core invariants hold for arbitrary tick/spawn sequences: storage
// never negative, nest radius monotone and capped, population bounded.
func TestInvariantsOverRandomRun(t *testing.T) {
	cfg := colony.DefaultConfig()
	cfg.InitialColonySize = 30
	sim := New(cfg, 99)

	prevRadius := sim.Colony.NestRadius
	for tick := 0; tick < 500; tick++ {
		if tick%40 == 0 {
			sim.SpawnFood(float64(100+tick), 200, 10)
		}
		sim.Advance()

		if sim.Colony.FoodStorage < 0 {
			t.Fatalf("tick %d: food storage negative: %v", tick, sim.Colony.FoodStorage)
		}
		if sim.Colony.NestRadius < prevRadius {
			t.Fatalf("tick %d: nest radius shrank from %d to %d", tick, prevRadius, sim.Colony.NestRadius)
		}
		if sim.Colony.NestRadius > cfg.MaxNestSize {
			t.Fatalf("tick %d: nest radius %d exceeds max %d", tick, sim.Colony.NestRadius, cfg.MaxNestSize)
		}
		if len(sim.Ants) > cfg.MaxColonySize {
			t.Fatalf("tick %d: population %d exceeds cap", tick, len(sim.Ants))
		}
		prevRadius = sim.Colony.NestRadius
	}
}

// Once reserves drop below the critical level, every ant is a
// scavenger after the next tick.
func TestRoleForcingWithinOneTick(t *testing.T) {
	cfg := testConfig()
	cfg.InitialColonySize = 50
	cfg.GrowthRate = 0
	sim := New(cfg, 5)

	sim.Colony.FoodStorage = 250
	sim.Advance()

	for i, a := range sim.Ants {
		if a.Role != agents.Scavenger {
			t.Fatalf("ant %d still %v below critical level", i, a.Role)
		}
	}
}

func TestScentMarkersDecayAndPrune(t *testing.T) {
	cfg := testConfig()
	cfg.GrowthRate = 0
	sim := New(cfg, 1)

	m := &world.ScentMarker{Pos: world.Point{X: 50, Y: 50}, Strength: 2}
	sim.Scent.Add(m, m.Pos)

	sim.Advance()
	if sim.Scent.Len() != 1 || m.Strength != 1 {
		t.Fatalf("after 1 tick: markers=%d strength=%d", sim.Scent.Len(), m.Strength)
	}

	sim.Advance()
	if sim.Scent.Len() != 0 {
		t.Errorf("fully decayed marker not pruned, markers=%d", sim.Scent.Len())
	}
	if m.Strength != 0 {
		t.Errorf("strength=%d, want 0", m.Strength)
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	cfg := testConfig()
	sim := New(cfg, 1)

	sim.Colony.FoodStorage = 500
	sim.Colony.BuildingProgress = 50
	sim.Ants = []*agents.Ant{
		{Pos: world.Point{X: 1, Y: 1}, Colony: sim.Colony, Role: agents.Scavenger},
		{Pos: world.Point{X: 2, Y: 2}, Colony: sim.Colony, Role: agents.Builder},
		{Pos: world.Point{X: 3, Y: 3}, Colony: sim.Colony, Role: agents.Builder, Carrying: true},
	}
	f := world.NewFoodSite(world.Point{X: 10, Y: 10}, sim.rng)
	sim.Food.Add(f, f.Pos)
	sim.Scent.Add(&world.ScentMarker{Pos: world.Point{X: 20, Y: 20}, Strength: 5}, world.Point{X: 20, Y: 20})

	snap := sim.Snapshot()

	if snap.Nest != cfg.Nest || snap.NestRadius != cfg.InitialNestSize {
		t.Errorf("nest=%+v r=%d", snap.Nest, snap.NestRadius)
	}
	if snap.StorageFrac != 0.5 {
		t.Errorf("storage frac=%v, want 0.5", snap.StorageFrac)
	}
	if snap.BuildingFrac != 0.5 {
		t.Errorf("building frac=%v, want 0.5", snap.BuildingFrac)
	}
	if len(snap.Food) != 1 || len(snap.Markers) != 1 {
		t.Errorf("food=%d markers=%d, want 1 and 1", len(snap.Food), len(snap.Markers))
	}

	wantStates := []AntState{AntScavenger, AntBuilder, AntCarrying}
	if len(snap.Ants) != len(wantStates) {
		t.Fatalf("ants=%d, want %d", len(snap.Ants), len(wantStates))
	}
	for i, want := range wantStates {
		if snap.Ants[i].State != want {
			t.Errorf("ant %d state=%v, want %v (carrying outranks role)", i, snap.Ants[i].State, want)
		}
	}
}

func TestStatusMatchesState(t *testing.T) {
	cfg := testConfig()
	cfg.InitialColonySize = 4
	cfg.GrowthRate = 0
	sim := New(cfg, 1)

	sim.Advance()
	st := sim.Status()

	if st.Tick != 1 {
		t.Errorf("tick=%d, want 1", st.Tick)
	}
	if st.Population != 4 {
		t.Errorf("population=%d, want 4", st.Population)
	}
	if st.FoodStorage != sim.Colony.FoodStorage {
		t.Errorf("food storage=%v, want %v", st.FoodStorage, sim.Colony.FoodStorage)
	}
}
