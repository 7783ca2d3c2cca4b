// Package world provides the flat 2-D plane the colony lives on: point
// math, the bucketed spatial grid, and the passive entities stored in it.
package world

// Point is a position on the world plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SqDist returns the squared distance between two points. Proximity
// checks throughout the simulation compare squared distances against
// squared radii to avoid the square root.
func SqDist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
