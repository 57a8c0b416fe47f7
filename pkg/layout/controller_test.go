package layout

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/engine"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// fakeEngine is a scripted engine: placeCounts[i] is how many words the
// i-th attempt places (capped at the input length). It records every
// attempt's config and how often handles were stopped.
type fakeEngine struct {
	mu          sync.Mutex
	placeCounts []int
	attempts    []engine.Config
	stops       int
	block       chan struct{} // when set, attempts block until closed
}

type fakeHandle struct {
	eng *fakeEngine
}

func (h *fakeHandle) Stop() {
	h.eng.mu.Lock()
	h.eng.stops++
	h.eng.mu.Unlock()
}

func (e *fakeEngine) Start(cfg engine.Config) engine.Handle {
	e.mu.Lock()
	attempt := len(e.attempts)
	e.attempts = append(e.attempts, cfg)
	count := len(cfg.Words)
	if attempt < len(e.placeCounts) {
		count = min(e.placeCounts[attempt], len(cfg.Words))
	}
	block := e.block
	e.mu.Unlock()

	go func() {
		if block != nil {
			<-block
		}
		placed := make([]wordcloud.PlacedWord, count)
		for i := range placed {
			placed[i] = wordcloud.PlacedWord{FormattedWord: cfg.Words[i]}
		}
		cfg.OnDone(placed)
	}()
	return &fakeHandle{eng: e}
}

func (e *fakeEngine) attemptBounds() [][2]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	bounds := make([][2]float64, len(e.attempts))
	for i, cfg := range e.attempts {
		lo, hi := cfg.Words[0].Size, cfg.Words[0].Size
		for _, w := range cfg.Words {
			lo, hi = min(lo, w.Size), max(hi, w.Size)
		}
		bounds[i] = [2]float64{lo, hi}
	}
	return bounds
}

func controllerConfig(eng engine.Engine) Config {
	return Config{
		Engine:    eng,
		RNG:       rand.New(rand.NewPCG(42, 42)),
		Spiral:    wordcloud.SpiralRectangular,
		Width:     800,
		Height:    600,
		BatchSize: 200,
		Scale:     wordcloud.ScaleSqrt,
		FontSizes: wordcloud.DefaultFontSizes,
	}
}

func formattedInput(n int) []wordcloud.FormattedWord {
	opts := wordcloud.Options{Deterministic: true}.Merged()
	words := make([]wordcloud.Word, n)
	for i := range words {
		words[i] = wordcloud.Word{Text: "w", Value: float64(n - i)}
	}
	return wordcloud.Format(words, opts, wordcloud.NewRand(opts))
}

func TestControllerAcceptsFirstCompleteAttempt(t *testing.T) {
	eng := &fakeEngine{} // places everything
	result, err := NewController().Run(context.Background(), formattedInput(5), controllerConfig(eng))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Attempts != 1 || result.Exhausted {
		t.Errorf("result = %+v, want 1 attempt, not exhausted", result)
	}
	if len(result.Words) != 5 {
		t.Errorf("placed %d words, want 5", len(result.Words))
	}
}

func TestControllerShrinksAndRetries(t *testing.T) {
	// First attempt places 1 of 2, second places everything.
	eng := &fakeEngine{placeCounts: []int{1}}
	result, err := NewController().Run(context.Background(), formattedInput(2), controllerConfig(eng))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", result.Attempts)
	}

	bounds := eng.attemptBounds()
	if !boundsNear(bounds[0], [2]float64{4, 32}) {
		t.Errorf("first attempt bounds = %v, want [4 32]", bounds[0])
	}
	if !boundsNear(bounds[1], [2]float64{3.8, 30.4}) {
		t.Errorf("second attempt bounds = %v, want [3.8 30.4]", bounds[1])
	}

	// The incomplete attempt's handle must be stopped before the retry.
	eng.mu.Lock()
	stops := eng.stops
	eng.mu.Unlock()
	if stops < 1 {
		t.Error("incomplete attempt's handle was never stopped")
	}
}

func TestControllerExhaustsAfterMaxAttempts(t *testing.T) {
	// Never places everything.
	eng := &fakeEngine{placeCounts: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}
	result, err := NewController().Run(context.Background(), formattedInput(3), controllerConfig(eng))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Exhausted {
		t.Error("result should be exhausted")
	}
	if result.Attempts != MaxAttempts {
		t.Errorf("attempts = %d, want %d", result.Attempts, MaxAttempts)
	}
	if len(eng.attempts) != MaxAttempts {
		t.Errorf("engine invoked %d times, want exactly %d", len(eng.attempts), MaxAttempts)
	}
	// Best-effort: the final partial placement is still returned.
	if len(result.Words) != 1 {
		t.Errorf("placed %d words, want the final attempt's 1", len(result.Words))
	}
}

func TestControllerCancellation(t *testing.T) {
	block := make(chan struct{})
	eng := &fakeEngine{block: block}
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := NewController().Run(ctx, formattedInput(3), controllerConfig(eng))
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.stops == 0 {
		t.Error("cancellation must stop the in-flight handle")
	}
}

// cancellingEngine delivers a partial placement synchronously from Start
// and then cancels the run's context, so the controller's select sees the
// delivery and the cancellation at the same time.
type cancellingEngine struct {
	cancel   context.CancelFunc
	attempts int
}

func (e *cancellingEngine) Start(cfg engine.Config) engine.Handle {
	e.attempts++
	placed := []wordcloud.PlacedWord{{FormattedWord: cfg.Words[0]}}
	cfg.OnDone(placed)
	e.cancel()
	return &fakeHandle{eng: &fakeEngine{}}
}

func TestControllerCancellationRacingDelivery(t *testing.T) {
	// Cancellation that lands together with a partial delivery must not
	// trigger a retry, no matter which ready select case wins.
	for range 50 {
		ctx, cancel := context.WithCancel(context.Background())
		eng := &cancellingEngine{cancel: cancel}

		result, err := NewController().Run(ctx, formattedInput(3), controllerConfig(eng))
		cancel()

		if err != context.Canceled {
			t.Fatalf("Run error = %v, want context.Canceled", err)
		}
		if eng.attempts != 1 {
			t.Fatalf("engine invoked %d times after cancellation, want 1", eng.attempts)
		}
		if result.Exhausted || len(result.Words) != 0 {
			t.Fatalf("cancelled run leaked a result: %+v", result)
		}
	}
}

func TestShrinkFontSizes(t *testing.T) {
	tests := []struct {
		name string
		in   [2]float64
		want [2]float64
	}{
		{"plain shrink", [2]float64{4, 32}, [2]float64{3.8, 30.4}},
		{"min floors at 1", [2]float64{1, 2}, [2]float64{1, 1.9}},
		{"max floors at min", [2]float64{1, 1}, [2]float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShrinkFontSizes(tt.in); !boundsNear(got, tt.want) {
				t.Errorf("ShrinkFontSizes(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// boundsNear compares bound pairs with a small tolerance for the 0.95
// multiplications.
func boundsNear(got, want [2]float64) bool {
	const eps = 1e-9
	return math.Abs(got[0]-want[0]) < eps && math.Abs(got[1]-want[1]) < eps
}

func TestShrinkSequenceIsNonIncreasing(t *testing.T) {
	bounds := [2]float64{4, 32}
	for range 50 {
		next := ShrinkFontSizes(bounds)
		if next[0] > bounds[0] || next[1] > bounds[1] {
			t.Fatalf("bounds grew: %v -> %v", bounds, next)
		}
		if next[0] < minFontFloor || next[1] < next[0] {
			t.Fatalf("invalid bounds %v", next)
		}
		bounds = next
	}
}
