package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// terrainScale maps world units to noise space. Lower values give
// broader fertile regions.
const terrainScale = 0.004

// Terrain is a deterministic fertility field over the plane, used to
// place initial food clusters and to tint the ground in the renderer.
// It has no tick-time behavior.
type Terrain struct {
	noise opensimplex.Noise
}

// NewTerrain creates a fertility field for the given seed.
func NewTerrain(seed int64) *Terrain {
	return &Terrain{noise: opensimplex.NewNormalized(seed)}
}

// Fertility returns the field value at (x, y), in [0, 1].
func (t *Terrain) Fertility(x, y float64) float64 {
	return t.noise.Eval2(x*terrainScale, y*terrainScale)
}
