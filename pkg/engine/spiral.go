package engine

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// spiralFunc maps a step count to an offset from the spiral origin.
// Implementations may keep internal state, so callers must invoke them
// with strictly increasing steps and build a fresh spiral per word.
type spiralFunc func(step int) (dx, dy float64)

// spiralFor returns a fresh search curve for a spiral kind. Unknown kinds
// fall back to the rectangular default.
func spiralFor(kind wordcloud.SpiralKind, width, height float64) spiralFunc {
	if kind == wordcloud.SpiralArchimedean {
		return archimedeanSpiral(width, height)
	}
	return rectangularSpiral(width, height)
}

// archimedeanSpiral walks r = b·θ, stretched to the canvas aspect ratio so
// wide canvases are searched wider than tall.
func archimedeanSpiral(width, height float64) spiralFunc {
	ratio := 1.0
	if height > 0 {
		ratio = width / height
	}
	return func(step int) (float64, float64) {
		t := float64(step) * 0.1
		return ratio * t * math.Cos(t), t * math.Sin(t)
	}
}

// rectangularSpiral walks an expanding rectangle around the origin. The
// direction of step t is picked from the triangular-number sequence, which
// lengthens each leg as the rectangle grows; step sizes follow the canvas
// aspect ratio.
func rectangularSpiral(width, height float64) spiralFunc {
	dy := 4.0
	dx := dy
	if height > 0 {
		dx = dy * width / height
	}
	var x, y float64
	return func(step int) (float64, float64) {
		switch int(math.Sqrt(1+4*float64(step))-1) & 3 {
		case 0:
			x += dx
		case 1:
			y += dy
		case 2:
			x -= dx
		default:
			y -= dy
		}
		return x, y
	}
}
