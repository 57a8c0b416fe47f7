package layout

import (
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/engine"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// countingEngine places everything and counts Start invocations.
type countingEngine struct {
	mu     sync.Mutex
	starts int
	inputs [][]wordcloud.FormattedWord
	delay  time.Duration
}

type countingHandle struct{}

func (countingHandle) Stop() {}

func (e *countingEngine) Start(cfg engine.Config) engine.Handle {
	e.mu.Lock()
	e.starts++
	e.inputs = append(e.inputs, cfg.Words)
	delay := e.delay
	e.mu.Unlock()

	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		placed := make([]wordcloud.PlacedWord, len(cfg.Words))
		for i, w := range cfg.Words {
			placed[i] = wordcloud.PlacedWord{FormattedWord: w}
		}
		cfg.OnDone(placed)
	}()
	return countingHandle{}
}

func request(texts []string, onComplete func(Result)) Request {
	words := make([]wordcloud.Word, len(texts))
	for i, text := range texts {
		words[i] = wordcloud.Word{Text: text, Value: float64(i + 1)}
	}
	return Request{
		Words:      words,
		MaxWords:   10,
		Options:    wordcloud.Options{Deterministic: true},
		Width:      800,
		Height:     600,
		OnComplete: onComplete,
	}
}

func TestSchedulerDebouncesToLatestInputs(t *testing.T) {
	eng := &countingEngine{}
	s := NewScheduler(eng, 30*time.Millisecond, nil)
	defer s.Close()

	results := make(chan Result, 3)
	deliver := func(r Result) { results <- r }

	// Three rapid submissions within the quiet window: only the last may
	// execute.
	s.Schedule(request([]string{"first"}, deliver))
	s.Schedule(request([]string{"second"}, deliver))
	s.Schedule(request([]string{"third", "winner"}, deliver))

	select {
	case r := <-results:
		if len(r.Words) != 2 {
			t.Errorf("run used %d words, want the last request's 2", len(r.Words))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no pipeline execution after debounce window")
	}

	// No further deliveries from the superseded submissions.
	select {
	case <-results:
		t.Error("superseded request was executed")
	case <-time.After(100 * time.Millisecond):
	}

	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.starts != 1 {
		t.Errorf("engine started %d times, want 1", eng.starts)
	}
}

func TestSchedulerCancelPendingRun(t *testing.T) {
	eng := &countingEngine{}
	s := NewScheduler(eng, 50*time.Millisecond, nil)
	defer s.Close()

	fired := make(chan Result, 1)
	s.Schedule(request([]string{"word"}, func(r Result) { fired <- r }))
	s.Cancel() // before the debounce timer fires

	select {
	case <-fired:
		t.Error("cancelled pending run still executed")
	case <-time.After(200 * time.Millisecond):
	}

	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.starts != 0 {
		t.Errorf("engine started %d times after cancel, want 0", eng.starts)
	}
}

func TestSchedulerCancelInFlightRun(t *testing.T) {
	eng := &countingEngine{delay: 200 * time.Millisecond}
	s := NewScheduler(eng, time.Millisecond, nil)
	defer s.Close()

	fired := make(chan Result, 1)
	s.Schedule(request([]string{"word"}, func(r Result) { fired <- r }))

	// Wait for the run to start, then cancel mid-attempt.
	deadline := time.Now().Add(time.Second)
	for {
		eng.mu.Lock()
		started := eng.starts > 0
		eng.mu.Unlock()
		if started || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.Cancel()

	// Once Cancel has returned, the completion callback must never fire.
	select {
	case <-fired:
		t.Error("completion callback fired after Cancel returned")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestSchedulerRejectsAfterClose(t *testing.T) {
	eng := &countingEngine{}
	s := NewScheduler(eng, time.Millisecond, nil)
	s.Close()

	fired := make(chan Result, 1)
	s.Schedule(request([]string{"word"}, func(r Result) { fired <- r }))

	select {
	case <-fired:
		t.Error("Schedule after Close executed")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSchedulerSequentialRuns(t *testing.T) {
	eng := &countingEngine{}
	s := NewScheduler(eng, 5*time.Millisecond, nil)
	defer s.Close()

	for _, text := range []string{"one", "two"} {
		fired := make(chan Result, 1)
		s.Schedule(request([]string{text}, func(r Result) { fired <- r }))
		select {
		case r := <-fired:
			if len(r.Words) != 1 || r.Words[0].Text != text {
				t.Errorf("run delivered %v, want %q", r.Words, text)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("run for %q never completed", text)
		}
	}
}
