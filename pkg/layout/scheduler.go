package layout

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/engine"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Request is one full input set for the pipeline. Submitting a new Request
// within the debounce window supersedes any pending one; only the latest
// inputs are ever acted upon.
type Request struct {
	Words []wordcloud.Word

	// MaxWords caps the selection. Zero means "unset" and merges to
	// DefaultMaxWords; a scheduler caller wanting an empty cloud should
	// submit an empty Words slice instead.
	MaxWords  int
	Options   wordcloud.Options
	Callbacks wordcloud.Callbacks

	// Width and Height are the container dimensions in pixels.
	Width, Height float64

	// OnComplete receives the accepted placement. It runs on the
	// scheduler's worker goroutine while the scheduler's internal lock is
	// held, which is what makes Cancel synchronous; it must not call back
	// into the Scheduler.
	OnComplete func(Result)
}

// Scheduler debounces pipeline runs and ties them to a cancellation hook.
// It replaces the module-level debounced-function singleton of callback-
// driven hosts with an explicit object owning a timer and a pending-inputs
// slot.
//
// At most one run is in flight at a time per Scheduler; a newly fired run
// cancels the previous one first. All methods are safe for concurrent use.
type Scheduler struct {
	engine   engine.Engine
	logger   *log.Logger
	debounce time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	pending    *Request
	generation uint64
	cancelRun  context.CancelFunc
	controller *Controller
	closed     bool
}

// NewScheduler creates a scheduler around an engine. A nil engine selects
// the bundled packer; a zero debounce selects the default quiet period.
func NewScheduler(eng engine.Engine, debounce time.Duration, logger *log.Logger) *Scheduler {
	if eng == nil {
		eng = engine.NewPacker()
	}
	if debounce <= 0 {
		debounce = wordcloud.DefaultRenderDebounce
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Scheduler{engine: eng, logger: logger, debounce: debounce}
}

// Schedule submits a new input set. The pipeline executes after the
// debounce quiet period unless another Schedule or Cancel supersedes it
// first. An in-flight run from older inputs is cancelled as soon as the
// new run fires.
func (s *Scheduler) Schedule(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.generation++
	gen := s.generation
	s.pending = &req

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.fire(gen) })
}

// Cancel aborts the scheduler's current work: a pending (not yet fired)
// run is discarded, and an in-flight run is stopped, engine handle
// included. Once Cancel returns, no completion callback or warning from
// the superseded run will fire.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Close cancels outstanding work and rejects future Schedule calls.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
}

// cancelLocked supersedes the current generation. Holding the mutex while
// bumping the generation is what guarantees the superseded run can no
// longer deliver: delivery re-checks the generation under this same lock.
func (s *Scheduler) cancelLocked() {
	s.generation++
	s.pending = nil

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}
	if s.controller != nil {
		s.controller.Stop()
		s.controller = nil
	}
}

// fire runs the pipeline for generation gen, unless that generation has
// been superseded in the meantime.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || s.pending == nil {
		s.mu.Unlock()
		return
	}
	req := *s.pending
	s.pending = nil
	s.timer = nil

	// Stop a still-running older attempt before starting the new one.
	if s.cancelRun != nil {
		s.cancelRun()
	}
	if s.controller != nil {
		s.controller.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctrl := NewController()
	s.cancelRun = cancel
	s.controller = ctrl
	s.mu.Unlock()

	go s.run(ctx, cancel, gen, ctrl, req)
}

// run executes selection → formatting → retry loop and delivers the result
// if the generation is still current.
func (s *Scheduler) run(ctx context.Context, cancel context.CancelFunc, gen uint64, ctrl *Controller, req Request) {
	defer cancel()

	opts := req.Options.Merged()
	rng := wordcloud.NewRand(opts)

	selected := wordcloud.SelectWords(req.Words, maxWordsOrDefault(req.MaxWords))
	formatted := wordcloud.Format(selected, opts, rng)

	result, err := ctrl.Run(ctx, formatted, Config{
		Engine:    s.engine,
		RNG:       rng,
		Spiral:    opts.Spiral,
		Width:     req.Width,
		Height:    req.Height,
		BatchSize: opts.BatchSize,
		Scale:     opts.Scale,
		FontSizes: opts.FontSizes,
		Logger:    s.logger,
	})
	if err != nil {
		// Cancellation is a deliberate abort, not a failure.
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if req.OnComplete != nil {
		req.OnComplete(result)
	}
}

func maxWordsOrDefault(maxWords int) int {
	if maxWords == 0 {
		return wordcloud.DefaultMaxWords
	}
	return maxWords
}
