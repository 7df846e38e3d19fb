package stats

import "math"

// Strength buckets |r| into qualitative bands for annotation text
type Strength string

const (
	StrengthVeryWeak   Strength = "Very Weak"
	StrengthWeak       Strength = "Weak"
	StrengthModerate   Strength = "Moderate"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
)

// Direction describes the sign of a correlation
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNone     Direction = "none"
)

// StrengthLabel maps |correlation| onto qualitative strength bands.
// Thresholds: >=0.8 very strong, >=0.6 strong, >=0.4 moderate, >=0.2 weak.
func StrengthLabel(correlation float64) Strength {
	abs := math.Abs(correlation)
	switch {
	case abs >= 0.8:
		return StrengthVeryStrong
	case abs >= 0.6:
		return StrengthStrong
	case abs >= 0.4:
		return StrengthModerate
	case abs >= 0.2:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}

// DirectionLabel maps the sign of a correlation onto a direction.
func DirectionLabel(correlation float64) Direction {
	switch {
	case correlation > 0:
		return DirectionPositive
	case correlation < 0:
		return DirectionNegative
	default:
		return DirectionNone
	}
}
