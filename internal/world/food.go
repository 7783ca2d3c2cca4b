package world

import "math/rand"

// Food site quantity bounds at creation.
const (
	minFoodQuantity = 5
	maxFoodQuantity = 20
)

// FoodSite is a harvestable food deposit. A harvest consumes the whole
// site at once; the rolled quantity is not paid out per-unit and exists
// for display and future partial-harvest mechanics.
type FoodSite struct {
	Pos      Point
	Quantity int
}

// NewFoodSite creates a food site at p with a quantity rolled uniformly
// in [5, 20].
func NewFoodSite(p Point, rng *rand.Rand) *FoodSite {
	return &FoodSite{
		Pos:      p,
		Quantity: minFoodQuantity + rng.Intn(maxFoodQuantity-minFoodQuantity+1),
	}
}
