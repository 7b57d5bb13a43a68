// Package physics provides distance and proximity checks.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Near reports whether two points are strictly closer than threshold.
// A point exactly threshold away is not near.
func Near(x1, y1, x2, y2, threshold float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < threshold*threshold
}
