package wordcloud

import "math"

// SizeFunc maps a word weight to a font size in pixels.
type SizeFunc func(value float64) float64

// FontScale builds the weight → font-size mapping for one selection.
//
// The returned function is monotonic non-decreasing in the weight and its
// output always falls within [fontSizes[0], fontSizes[1]]. A degenerate
// domain (no words, a single word, or all weights equal) maps every weight
// to the maximum size; there is no division by zero and no error path.
//
// The log scale uses log1p so zero weights are safe.
func FontScale(values []float64, fontSizes [2]float64, kind ScaleKind) SizeFunc {
	minSize, maxSize := fontSizes[0], fontSizes[1]

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}

	transform := scaleTransform(kind)
	lo, hi := transform(minVal), transform(maxVal)

	// Degenerate domain: every word gets the maximum size.
	if len(values) < 2 || hi <= lo {
		return func(float64) float64 { return maxSize }
	}

	span := hi - lo
	return func(value float64) float64 {
		t := (transform(value) - lo) / span
		size := minSize + t*(maxSize-minSize)
		return max(minSize, min(size, maxSize))
	}
}

// scaleTransform returns the monotonic transform for a scale kind.
// Unknown kinds fall back to the sqrt default.
func scaleTransform(kind ScaleKind) func(float64) float64 {
	switch kind {
	case ScaleLinear:
		return func(v float64) float64 { return v }
	case ScaleLog:
		return func(v float64) float64 { return math.Log1p(max(v, 0)) }
	default:
		return func(v float64) float64 { return math.Sqrt(max(v, 0)) }
	}
}
