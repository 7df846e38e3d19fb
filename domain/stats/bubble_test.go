package stats

import (
	"math"
	"testing"
)

func TestNormalizeBubbleSize(t *testing.T) {
	tests := []struct {
		name     string
		size     float64
		allSizes []float64
		want     float64
	}{
		{name: "empty population", size: 99, allSizes: nil, want: FallbackBubbleRadius},
		{name: "zero variance", size: 5, allSizes: []float64{5, 5, 5}, want: FallbackBubbleRadius},
		{name: "midpoint", size: 10, allSizes: []float64{0, 10, 20}, want: 7.0},
		{name: "minimum", size: 0, allSizes: []float64{0, 10, 20}, want: DefaultMinRadius},
		{name: "maximum", size: 20, allSizes: []float64{0, 10, 20}, want: DefaultMaxRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBubbleSize(tt.size, tt.allSizes, DefaultMinRadius, DefaultMaxRadius)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("NormalizeBubbleSize(%v) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestNormalizeBubbleSize_WithinBounds(t *testing.T) {
	population := []float64{3, 18, 0.5, 42, 7.25, 11}

	for _, size := range population {
		got := NormalizeBubbleSize(size, population, DefaultMinRadius, DefaultMaxRadius)
		if got < DefaultMinRadius || got > DefaultMaxRadius {
			t.Errorf("NormalizeBubbleSize(%v) = %v outside [%v, %v]",
				size, got, DefaultMinRadius, DefaultMaxRadius)
		}
	}
}

func TestNormalizeBubbleSizes(t *testing.T) {
	radii := NormalizeBubbleSizes([]float64{0, 10, 20})

	want := []float64{2, 7, 12}
	for i := range want {
		if math.Abs(radii[i]-want[i]) > tolerance {
			t.Errorf("radii[%d] = %v, want %v", i, radii[i], want[i])
		}
	}
}

func TestSampleIsFinite(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   bool
	}{
		{name: "finite", sample: Sample{X: 1, Y: 2}, want: true},
		{name: "nan x", sample: Sample{X: math.NaN(), Y: 2}, want: false},
		{name: "nan y", sample: Sample{X: 1, Y: math.NaN()}, want: false},
		{name: "inf x", sample: Sample{X: math.Inf(1), Y: 2}, want: false},
		{name: "neg inf y", sample: Sample{X: 1, Y: math.Inf(-1)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
