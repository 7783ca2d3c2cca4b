// Package colony holds the aggregate resource and growth model shared
// by all ants, plus the tunable configuration for a simulation run.
package colony

import "github.com/talgya/anthill/internal/world"

// Config carries every host-tunable constant for a run. Squared range
// fields are squared radii; proximity checks compare them against
// squared distances directly.
type Config struct {
	Width  float64
	Height float64
	Nest   world.Point

	InitialColonySize int
	MaxColonySize     int
	GrowthRate        float64 // chance per tick of one birth when conditions hold

	InitialFoodStorage float64
	ConsumptionRate    float64 // food consumed per ant per tick
	CriticalFoodLevel  float64 // below this every ant scavenges
	OptimalFoodLevel   float64 // above this roles may reroll and births occur

	ScentStrength int
	BaseSpeed     float64

	FoodDetectionRangeSq  float64
	FoodCollectionRangeSq float64

	BuildRange      float64
	BuildEfficiency float64
	MaxNestSize     int
	InitialNestSize int

	FoodPerClick        int
	GridCellSize        float64
	InitialFoodClusters int
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		Width:  960,
		Height: 1080,
		Nest:   world.Point{X: 480, Y: 540},

		InitialColonySize: 100,
		MaxColonySize:     500,
		GrowthRate:        0.1,

		InitialFoodStorage: 1000,
		ConsumptionRate:    0.1,
		CriticalFoodLevel:  300,
		OptimalFoodLevel:   800,

		ScentStrength: 100,
		BaseSpeed:     1,

		FoodDetectionRangeSq:  100 * 100,
		FoodCollectionRangeSq: 10 * 10,

		BuildRange:      30,
		BuildEfficiency: 0.2,
		MaxNestSize:     200,
		InitialNestSize: 20,

		FoodPerClick:        50,
		GridCellSize:        10,
		InitialFoodClusters: 2,
	}
}
