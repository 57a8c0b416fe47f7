package wordcloud

import "testing"

func TestFontScaleWithinBounds(t *testing.T) {
	values := []float64{0, 1, 5, 42, 1000}
	bounds := [2]float64{4, 32}

	for _, kind := range []ScaleKind{ScaleLinear, ScaleSqrt, ScaleLog} {
		t.Run(string(kind), func(t *testing.T) {
			sizeOf := FontScale(values, bounds, kind)
			for _, v := range values {
				size := sizeOf(v)
				if size < bounds[0] || size > bounds[1] {
					t.Errorf("%s(%g) = %g, outside [%g, %g]", kind, v, size, bounds[0], bounds[1])
				}
			}
		})
	}
}

func TestFontScaleMonotonic(t *testing.T) {
	values := []float64{1, 2, 7, 30, 500}

	for _, kind := range []ScaleKind{ScaleLinear, ScaleSqrt, ScaleLog} {
		sizeOf := FontScale(values, [2]float64{4, 32}, kind)
		prev := sizeOf(values[0])
		for _, v := range values[1:] {
			size := sizeOf(v)
			if size < prev {
				t.Errorf("%s: size decreased from %g to %g at value %g", kind, prev, size, v)
			}
			prev = size
		}
	}
}

func TestFontScaleEndpoints(t *testing.T) {
	values := []float64{1, 100}
	sizeOf := FontScale(values, [2]float64{4, 32}, ScaleLinear)

	if got := sizeOf(1); got != 4 {
		t.Errorf("min value should map to min size, got %g", got)
	}
	if got := sizeOf(100); got != 32 {
		t.Errorf("max value should map to max size, got %g", got)
	}
}

func TestFontScaleDegenerateDomain(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"all equal", []float64{7, 7, 7}},
		{"single word", []float64{3}},
		{"empty", nil},
		{"all zero", []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizeOf := FontScale(tt.values, [2]float64{4, 32}, ScaleSqrt)
			// Every weight maps to the maximum size; no division by zero.
			for _, v := range []float64{0, 7, 100} {
				if got := sizeOf(v); got != 32 {
					t.Errorf("sizeOf(%g) = %g, want 32", v, got)
				}
			}
		})
	}
}
