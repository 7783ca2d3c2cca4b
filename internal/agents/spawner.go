package agents

import (
	"math/rand"

	"github.com/talgya/anthill/internal/colony"
)

// Spawner issues new ants at the nest with a policy-rolled starting
// role. It owns its own seeded RNG so that population composition is
// reproducible independently of tick-time draws.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner for the given run seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed + 300))}
}

// Spawn creates one ant at the colony's nest point.
func (s *Spawner) Spawn(c *colony.Colony, pol Policy) *Ant {
	return &Ant{
		Pos:    c.Cfg.Nest,
		Colony: c,
		Role:   RollRole(pol, s.rng),
	}
}

// SpawnInitial creates the starting population.
func (s *Spawner) SpawnInitial(c *colony.Colony, pol Policy) []*Ant {
	ants := make([]*Ant, 0, c.Cfg.InitialColonySize)
	for i := 0; i < c.Cfg.InitialColonySize; i++ {
		ants = append(ants, s.Spawn(c, pol))
	}
	return ants
}
