package colony

import "math/rand"

// FoodLoadValue is the flat amount credited per returned load,
// independent of the harvested site's rolled quantity.
const FoodLoadValue = 20

// buildThreshold is the progress level at which the nest grows.
const buildThreshold = 100

// Colony is the aggregate state shared by all ants in a run. Ants hold
// a back-reference to read thresholds and credit returned food; the
// colony owns no ants itself.
type Colony struct {
	Cfg Config

	FoodStorage      float64 // floored at 0
	NestRadius       int     // non-decreasing, capped at Cfg.MaxNestSize
	BuildingProgress float64 // reset to 0 when it crosses buildThreshold

	Harvests uint64 // total returned loads, for reporting
}

// New creates a colony with the configured starting reserves and nest.
func New(cfg Config) *Colony {
	return &Colony{
		Cfg:         cfg,
		FoodStorage: cfg.InitialFoodStorage,
		NestRadius:  cfg.InitialNestSize,
	}
}

// Tick runs one step of the colony model: upkeep consumption, nest
// growth, and the birth roll. Returns true when exactly one new ant
// should be spawned at the nest this tick.
func (c *Colony) Tick(agentCount int, rng *rand.Rand) bool {
	c.FoodStorage -= float64(agentCount) * c.Cfg.ConsumptionRate
	if c.FoodStorage < 0 {
		c.FoodStorage = 0
	}

	// One increment per tick; overshoot past the threshold is discarded.
	if c.BuildingProgress >= buildThreshold && c.NestRadius < c.Cfg.MaxNestSize {
		c.NestRadius++
		c.BuildingProgress = 0
	}

	return c.FoodStorage > c.Cfg.OptimalFoodLevel &&
		agentCount < c.Cfg.MaxColonySize &&
		rng.Float64() < c.Cfg.GrowthRate
}

// AgentSpeed derives ant speed from the current nest size. Recomputed
// from the radius on every call, never cached.
func (c *Colony) AgentSpeed() float64 {
	return c.Cfg.BaseSpeed * (1 + float64(c.NestRadius-c.Cfg.InitialNestSize)/100)
}

// Deposit credits one returned food load.
func (c *Colony) Deposit() {
	c.FoodStorage += FoodLoadValue
	c.Harvests++
}

// AddBuildProgress advances nest construction by one build action.
func (c *Colony) AddBuildProgress() {
	c.BuildingProgress += c.Cfg.BuildEfficiency
}
