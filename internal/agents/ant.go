// Package agents implements the per-tick decision and movement state
// machine of individual ants.
package agents

import (
	"math"
	"math/rand"

	"github.com/talgya/anthill/internal/colony"
	"github.com/talgya/anthill/internal/world"
)

// Role is an ant's current behavior mode. Roles are rerolled
// probabilistically over time, not fixed for life.
type Role uint8

const (
	Scavenger Role = iota
	Builder
)

func (r Role) String() string {
	switch r {
	case Scavenger:
		return "scavenger"
	case Builder:
		return "builder"
	default:
		return "unknown"
	}
}

// RollRole draws a role from the policy's builder share.
func RollRole(pol Policy, rng *rand.Rand) Role {
	if rng.Float64() < pol.BuilderShare {
		return Builder
	}
	return Scavenger
}

// Ant is the behavioral unit of the simulation. It reads thresholds
// from its colony and mutates colony state and the food index as it
// acts. The colony reference is shared, never owned.
type Ant struct {
	Pos      world.Point
	Colony   *colony.Colony
	Role     Role
	Carrying bool
	Building bool // true only on ticks spent building

	target *world.FoodSite
}

// Step runs one tick of the state machine: role refresh, forage
// targeting, then build-or-move. Speed is re-derived from the colony
// each tick.
func (a *Ant) Step(food *world.Grid[*world.FoodSite], scent *world.Grid[*world.ScentMarker], pol Policy, rng *rand.Rand) {
	cfg := a.Colony.Cfg
	speed := a.Colony.AgentSpeed()

	a.refreshRole(pol, rng)

	if a.Role == Scavenger && !a.Carrying && a.target == nil {
		a.findFood(food, cfg.FoodDetectionRangeSq)
	}

	// A builder that rolls its build action spends the whole tick on it;
	// the movement branch below is skipped.
	if a.Role == Builder && !a.Carrying && rng.Float64() < pol.BuildChance {
		a.Building = true
		if world.SqDist(a.Pos, cfg.Nest) < cfg.BuildRange*cfg.BuildRange {
			a.Colony.AddBuildProgress()
		}
		return
	}
	a.Building = false

	switch {
	case a.Carrying:
		a.moveToward(cfg.Nest, speed)
		if world.SqDist(a.Pos, cfg.Nest) < cfg.FoodCollectionRangeSq {
			a.Colony.Deposit()
			a.Carrying = false
		} else if rng.Float64() < pol.TrailChance {
			m := &world.ScentMarker{Pos: a.Pos, Strength: cfg.ScentStrength}
			scent.Add(m, m.Pos)
		}

	case a.target != nil:
		if !food.Contains(a.target) {
			// The site was harvested by another ant after we picked it.
			// Drop the stale target and resume searching next tick.
			a.target = nil
			a.randomWalk(speed, rng)
			return
		}
		a.moveToward(a.target.Pos, speed)
		if world.SqDist(a.Pos, a.target.Pos) < cfg.FoodCollectionRangeSq {
			a.Carrying = true
			food.Remove(a.target)
			a.target = nil
		}

	default:
		a.randomWalk(speed, rng)
	}
}

func (a *Ant) refreshRole(pol Policy, rng *rand.Rand) {
	switch {
	case a.Colony.FoodStorage < a.Colony.Cfg.CriticalFoodLevel:
		// Reserves critical: every ant forages.
		a.Role = Scavenger
	case a.Colony.FoodStorage > a.Colony.Cfg.OptimalFoodLevel:
		if rng.Float64() < pol.RerollChance {
			a.Role = RollRole(pol, rng)
		}
	}
}

// findFood targets the first site found within detection range. First
// found wins; nearest is not computed.
func (a *Ant) findFood(food *world.Grid[*world.FoodSite], detectionSq float64) {
	food.ForEachInRange(a.Pos, detectionSq, func(f *world.FoodSite, _ world.Point) bool {
		a.target = f
		return false
	})
}

// moveToward advances by speed along the unit vector to p. Zero
// distance is a no-op.
func (a *Ant) moveToward(p world.Point, speed float64) {
	dx := p.X - a.Pos.X
	dy := p.Y - a.Pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return
	}
	a.Pos.X += dx / dist * speed
	a.Pos.Y += dy / dist * speed
}

// randomWalk takes one discrete step in {-1, 0, +1} per axis
// independently, scaled by speed.
func (a *Ant) randomWalk(speed float64, rng *rand.Rand) {
	a.Pos.X += float64(rng.Intn(3)-1) * speed
	a.Pos.Y += float64(rng.Intn(3)-1) * speed
}
