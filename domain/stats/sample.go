package stats

import "math"

// Sample is one paired observation: an environmental measurement (X) matched
// with a risk score or second measurement (Y). Immutable once created.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsFinite reports whether both coordinates are finite real numbers.
func (s Sample) IsFinite() bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) &&
		!math.IsNaN(s.Y) && !math.IsInf(s.Y, 0)
}
