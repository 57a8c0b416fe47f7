package engine

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// maxSpiralSteps bounds the search per word; a word that finds no free
// spot within this budget is dropped from the attempt.
const maxSpiralSteps = 3000

// Packer is the bundled layout engine: a greedy bounding-box packer that
// walks a spiral from a jittered center and places each word at the first
// collision-free position. Boxes are axis-aligned, expanded for rotation
// and padding; pixel-precise glyph collision is out of scope.
//
// Each Start call runs on its own goroutine and owns its inputs for the
// duration of the attempt. Words are processed in batches with a stop
// check in between, so Stop interrupts an attempt within one batch.
type Packer struct{}

// NewPacker creates the default engine.
func NewPacker() *Packer {
	return &Packer{}
}

// Start implements Engine.
func (p *Packer) Start(cfg Config) Handle {
	h := newHandle()
	go p.run(cfg, h)
	return h
}

// box is an axis-aligned rectangle in center-origin coordinates.
type box struct {
	left, top, right, bottom float64
}

func (b box) overlaps(o box) bool {
	return b.left < o.right && b.right > o.left && b.top < o.bottom && b.bottom > o.top
}

func (p *Packer) run(cfg Config, h *handle) {
	defer close(h.done)

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = wordcloud.DefaultBatchSize
	}

	frame := box{
		left:   -cfg.Width / 2,
		top:    -cfg.Height / 2,
		right:  cfg.Width / 2,
		bottom: cfg.Height / 2,
	}

	// Jitter the spiral origin so identical inputs do not pile up on the
	// exact same pixel; the draw comes from the run's seeded source, so
	// deterministic mode stays reproducible.
	originX := (cfg.RNG.Float64() - 0.5) * cfg.Width * 0.1
	originY := (cfg.RNG.Float64() - 0.5) * cfg.Height * 0.1

	placed := make([]wordcloud.PlacedWord, 0, len(cfg.Words))
	occupied := make([]box, 0, len(cfg.Words))

	for i, w := range cfg.Words {
		if i > 0 && i%batchSize == 0 && h.Stopped() {
			return
		}

		halfW, halfH := wordExtents(w)
		spiral := spiralFor(cfg.Spiral, cfg.Width, cfg.Height)

		for step := 0; step < maxSpiralSteps; step++ {
			dx, dy := spiral(step)
			x, y := originX+dx, originY+dy

			candidate := box{
				left:   x - halfW,
				top:    y - halfH,
				right:  x + halfW,
				bottom: y + halfH,
			}
			if !inside(candidate, frame) || collides(candidate, occupied) {
				continue
			}

			placed = append(placed, wordcloud.PlacedWord{
				FormattedWord: w,
				X:             x,
				Y:             y,
			})
			occupied = append(occupied, candidate)
			break
		}
	}

	if h.Stopped() {
		return
	}
	if cfg.OnDone != nil {
		cfg.OnDone(placed)
	}
}

// wordExtents estimates the half-width and half-height of a word's
// bounding box: a character-width heuristic for the glyph run, expanded by
// the rotation angle and the collision padding.
func wordExtents(w wordcloud.FormattedWord) (halfW, halfH float64) {
	width := float64(len([]rune(w.Text))) * w.Size * 0.6
	height := w.Size * 1.2

	theta := w.Rotate * math.Pi / 180
	sin, cos := math.Abs(math.Sin(theta)), math.Abs(math.Cos(theta))
	rotW := width*cos + height*sin
	rotH := width*sin + height*cos

	return rotW/2 + w.Padding, rotH/2 + w.Padding
}

func inside(b, frame box) bool {
	return b.left >= frame.left && b.right <= frame.right &&
		b.top >= frame.top && b.bottom <= frame.bottom
}

func collides(b box, occupied []box) bool {
	for _, o := range occupied {
		if b.overlaps(o) {
			return true
		}
	}
	return false
}

// Ensure Packer implements Engine.
var _ Engine = (*Packer)(nil)
