package agents

// Policy is the probability table consulted by the ant state machine.
// Centralizing the draws here keeps them out of the decision code and
// lets tests pin any of them to 0 or 1.
type Policy struct {
	BuilderShare float64 // chance a (re)rolled role comes up builder
	RerollChance float64 // chance per tick to reroll the role when food is plentiful
	BuildChance  float64 // chance a builder spends the tick building instead of moving
	TrailChance  float64 // chance a carrying ant lays a scent marker this tick
}

// DefaultPolicy returns the standard probabilities.
func DefaultPolicy() Policy {
	return Policy{
		BuilderShare: 0.3,
		RerollChance: 0.1,
		BuildChance:  0.3,
		TrailChance:  0.15,
	}
}
