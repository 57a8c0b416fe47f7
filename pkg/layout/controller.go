package layout

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/engine"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

const (
	// MaxAttempts bounds the retry chain: after this many engine
	// invocations the best-effort result is accepted regardless of how
	// many words fit.
	MaxAttempts = 10

	// shrinkFactor is the multiplicative reduction applied to both
	// font-size bounds between attempts.
	shrinkFactor = 0.95

	// minFontFloor is the hard lower bound for shrunk font sizes.
	minFontFloor = 1.0
)

// Config carries the per-run inputs of a retry chain.
type Config struct {
	// Engine performs the placement. Defaults to the bundled packer.
	Engine engine.Engine

	// RNG is the run's random source, handed to the engine. The stop-
	// before-next-attempt discipline serializes its use.
	RNG *rand.Rand

	// Spiral, Width, Height, and BatchSize are passed through to the
	// engine unchanged.
	Spiral        wordcloud.SpiralKind
	Width, Height float64
	BatchSize     int

	// Scale is the scale kind used when re-deriving sizes for a retry.
	Scale wordcloud.ScaleKind

	// FontSizes is the starting [min, max] bound pair.
	FontSizes [2]float64

	// Logger receives the exhaustion warning. Defaults to a discard
	// logger.
	Logger *log.Logger
}

// Result is the outcome of one retry chain.
type Result struct {
	// Words is the placed subset from the accepted attempt.
	Words []wordcloud.PlacedWord

	// Attempts is the number of engine invocations used.
	Attempts int

	// Exhausted reports that the attempt budget ran out before every
	// word was placed. Not an error: Words still holds the best-effort
	// placement of the final attempt.
	Exhausted bool
}

// Attempt is the transient state of a single engine invocation. Each retry
// supersedes (not merges) the previous attempt's state.
type Attempt struct {
	FontSizes [2]float64
	Number    int
}

// Controller runs retry chains against a layout engine. The active engine
// handle is an explicit field, guarded by a mutex, so that cancellation and
// the retry transition both go through the same stop-first path. A zero
// Controller is ready to use; a Controller must not run two chains
// concurrently.
type Controller struct {
	mu     sync.Mutex
	handle engine.Handle
}

// NewController creates an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Run executes one retry chain over formatted and returns the accepted
// placement.
//
// Per attempt it re-derives the words' sizes from the current bounds
// (rotations stay as originally drawn), starts the engine, and waits for
// completion or cancellation. A complete placement, or hitting the attempt
// budget, accepts the attempt; anything else stops the engine handle,
// shrinks the bounds by 5% (floored at 1px), and retries. The bound
// sequence is non-increasing, so the chain terminates within MaxAttempts
// invocations no matter what the engine does.
//
// Cancellation via ctx stops the active handle and returns ctx.Err();
// neither the warning nor any later attempt happens after that.
func (c *Controller) Run(ctx context.Context, formatted []wordcloud.FormattedWord, cfg Config) (Result, error) {
	eng := cfg.Engine
	if eng == nil {
		eng = engine.NewPacker()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	attempt := Attempt{FontSizes: cfg.FontSizes, Number: 1}
	for {
		words := wordcloud.Resize(formatted, attempt.FontSizes, cfg.Scale)

		start := time.Now()
		observability.Layout().OnAttemptStart(ctx, attempt.Number, len(words))

		done := make(chan []wordcloud.PlacedWord, 1)
		handle := eng.Start(engine.Config{
			RNG:       cfg.RNG,
			Spiral:    cfg.Spiral,
			Width:     cfg.Width,
			Height:    cfg.Height,
			BatchSize: cfg.BatchSize,
			Words:     words,
			OnDone:    func(placed []wordcloud.PlacedWord) { done <- placed },
		})
		c.setHandle(handle)

		select {
		case <-ctx.Done():
			c.Stop()
			return Result{}, ctx.Err()

		case placed := <-done:
			// The engine may have delivered into the buffered channel in
			// the same instant the context was cancelled. Cancellation
			// wins: no accept, no retry, no warning.
			if ctx.Err() != nil {
				c.Stop()
				return Result{}, ctx.Err()
			}
			observability.Layout().OnAttemptComplete(ctx, attempt.Number, len(placed), time.Since(start))

			if len(placed) == len(formatted) {
				c.Stop()
				return Result{Words: placed, Attempts: attempt.Number}, nil
			}
			if attempt.Number >= MaxAttempts {
				c.Stop()
				unplaced := len(formatted) - len(placed)
				observability.Layout().OnExhausted(ctx, unplaced)
				logger.Warn("not all words could be placed",
					"unplaced", unplaced,
					"attempts", attempt.Number,
					"remedies", "enlarge the container, lower the max font size, or narrow the rotation angles")
				return Result{Words: placed, Attempts: attempt.Number, Exhausted: true}, nil
			}

			// Release the finished attempt before starting the next one.
			c.Stop()
			attempt = Attempt{
				FontSizes: ShrinkFontSizes(attempt.FontSizes),
				Number:    attempt.Number + 1,
			}
		}
	}
}

// ShrinkFontSizes computes the bounds for the next attempt:
//
//	newMin = max(min·0.95, 1)
//	newMax = max(max·0.95, newMin)
func ShrinkFontSizes(fontSizes [2]float64) [2]float64 {
	newMin := max(fontSizes[0]*shrinkFactor, minFontFloor)
	newMax := max(fontSizes[1]*shrinkFactor, newMin)
	return [2]float64{newMin, newMax}
}

// Stop halts the active engine attempt, if any. Safe to call at any time
// and from a goroutine other than the one inside Run.
func (c *Controller) Stop() {
	c.mu.Lock()
	handle := c.handle
	c.handle = nil
	c.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
}

func (c *Controller) setHandle(h engine.Handle) {
	c.mu.Lock()
	c.handle = h
	c.mu.Unlock()
}
