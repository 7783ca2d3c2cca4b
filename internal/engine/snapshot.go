package engine

import (
	"github.com/talgya/anthill/internal/agents"
	"github.com/talgya/anthill/internal/world"
)

// AntState classifies an ant for rendering. Carrying takes precedence
// over the role.
type AntState uint8

const (
	AntScavenger AntState = iota
	AntBuilder
	AntCarrying
)

// AntView is one ant's drawable state.
type AntView struct {
	Pos   world.Point
	State AntState
}

// Snapshot is the read-only drawable state of one tick. The core
// assigns no colors; the host maps states and kinds to its palette.
type Snapshot struct {
	Nest       world.Point
	NestRadius int

	StorageFrac  float64 // food storage relative to the initial reserve; may exceed 1
	BuildingFrac float64 // building progress relative to the growth threshold

	Ants    []AntView
	Food    []world.Point
	Markers []world.Point // only markers with strength > 0
}

// Snapshot produces the drawable state for the host renderer.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Nest:         s.Cfg.Nest,
		NestRadius:   s.Colony.NestRadius,
		StorageFrac:  s.Colony.FoodStorage / s.Cfg.InitialFoodStorage,
		BuildingFrac: s.Colony.BuildingProgress / 100,
		Ants:         make([]AntView, 0, len(s.Ants)),
		Food:         make([]world.Point, 0, s.Food.Len()),
		Markers:      make([]world.Point, 0, s.Scent.Len()),
	}

	for _, a := range s.Ants {
		state := AntScavenger
		switch {
		case a.Carrying:
			state = AntCarrying
		case a.Role == agents.Builder:
			state = AntBuilder
		}
		snap.Ants = append(snap.Ants, AntView{Pos: a.Pos, State: state})
	}

	s.Food.ForEach(func(_ *world.FoodSite, p world.Point) {
		snap.Food = append(snap.Food, p)
	})
	s.Scent.ForEach(func(m *world.ScentMarker, p world.Point) {
		if m.Strength > 0 {
			snap.Markers = append(snap.Markers, p)
		}
	})

	return snap
}
