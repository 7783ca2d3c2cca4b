package world

// ScentMarker is a decaying trail marker laid by ants carrying food.
// No decision currently reads markers; they drive the trail visual and
// are pruned from their grid once fully decayed.
type ScentMarker struct {
	Pos      Point
	Strength int
}

// Decay reduces strength by one, flooring at zero. Returns true while
// the marker is still alive.
func (m *ScentMarker) Decay() bool {
	if m.Strength > 0 {
		m.Strength--
	}
	return m.Strength > 0
}
