// Package engine defines the layout-engine boundary and bundles a compact
// spiral packer as the default implementation.
//
// The orchestrator in pkg/layout treats the engine as a black box: it
// starts an attempt with sized and rotated words, holds on to the returned
// handle, and receives the subset of words that fit via the completion
// callback. An engine may place fewer words than given; words that do not
// fit are silently dropped from the result.
package engine

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Config describes one placement attempt.
type Config struct {
	// RNG jitters the spiral start point and is the only source of
	// randomness the engine may use. It must not be shared with a
	// concurrently running attempt.
	RNG *rand.Rand

	// Spiral selects the search curve.
	Spiral wordcloud.SpiralKind

	// Width and Height are the canvas dimensions in pixels.
	Width, Height float64

	// BatchSize is the number of words placed between stop checks.
	// Non-positive values fall back to wordcloud.DefaultBatchSize.
	BatchSize int

	// Words is the sized and rotated input sequence, highest weight first.
	Words []wordcloud.FormattedWord

	// OnDone receives the placed subset exactly once, unless the attempt
	// is stopped first, in which case it is never called.
	OnDone func(placed []wordcloud.PlacedWord)
}

// Handle controls a running attempt.
type Handle interface {
	// Stop halts processing and releases the attempt's resources. It is
	// idempotent and safe to call after completion. Once Stop returns the
	// attempt's OnDone callback will not fire.
	Stop()
}

// Engine starts placement attempts.
type Engine interface {
	Start(cfg Config) Handle
}

// handle is the stop flag shared between the caller and the worker
// goroutine. The atomic is the explicit substitute for the single-threaded
// "stop before next attempt" discipline of callback-driven hosts.
type handle struct {
	stopped atomic.Bool
	done    chan struct{}
}

func newHandle() *handle {
	return &handle{done: make(chan struct{})}
}

// Stop implements Handle.
func (h *handle) Stop() {
	h.stopped.Store(true)
	<-h.done
}

// Stopped reports whether Stop has been requested.
func (h *handle) Stopped() bool {
	return h.stopped.Load()
}
