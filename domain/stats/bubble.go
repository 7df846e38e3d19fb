package stats

// Bubble radius bounds in rendered units. The fallback radius is used when
// the size population is empty or has no variance, so a chart never implies
// false variance.
const (
	DefaultMinRadius     = 2.0
	DefaultMaxRadius     = 12.0
	FallbackBubbleRadius = 4.0
)

// NormalizeBubbleSize rescales a raw magnitude into [minRadius, maxRadius]
// relative to the full population of raw sizes across all rendered series,
// so bubble sizes stay comparable across datasets.
func NormalizeBubbleSize(size float64, allSizes []float64, minRadius, maxRadius float64) float64 {
	if len(allSizes) == 0 {
		return FallbackBubbleRadius
	}

	minSize, maxSize := allSizes[0], allSizes[0]
	for _, s := range allSizes[1:] {
		if s < minSize {
			minSize = s
		}
		if s > maxSize {
			maxSize = s
		}
	}

	if maxSize == minSize {
		return FallbackBubbleRadius
	}

	return minRadius + (size-minSize)/(maxSize-minSize)*(maxRadius-minRadius)
}

// NormalizeBubbleSizes applies NormalizeBubbleSize with the default radius
// bounds to every size in the population.
func NormalizeBubbleSizes(sizes []float64) []float64 {
	radii := make([]float64, len(sizes))
	for i, s := range sizes {
		radii[i] = NormalizeBubbleSize(s, sizes, DefaultMinRadius, DefaultMaxRadius)
	}
	return radii
}
