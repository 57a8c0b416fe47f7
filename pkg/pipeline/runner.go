package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	wcio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete select → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, words []wordcloud.Word, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Compute the input hash for cache keys and API responses
	if wordsData, err := wcio.MarshalWords(words); err == nil {
		result.WordsHash = cache.Hash(wordsData)
	}

	// Stage 1+2: Select and layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, words, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Placed = l.Words
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.WordCount = min(len(words), opts.MaxWords)
	result.Stats.PlacedCount = len(l.Words)
	result.Stats.Attempts = l.Attempts
	result.Stats.Exhausted = l.Exhausted
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"words", result.Stats.WordCount,
		"placed", result.Stats.PlacedCount,
		"attempts", l.Attempts,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo selects, formats, and places words with caching
// and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, words []wordcloud.Word, opts Options) (wcio.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return wcio.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	cacheable := opts.Cacheable()
	var cacheKey string
	if cacheable {
		wordsData, err := wcio.MarshalWords(words)
		if err != nil {
			return wcio.Layout{}, false, fmt.Errorf("serialize words for cache key: %w", err)
		}
		cacheKey = r.Keyer.LayoutKey(cache.Hash(wordsData), opts.LayoutKeyOpts())

		// Try cache first (unless refresh requested)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				if cached, err := wcio.UnmarshalLayout(data); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return cached, true, nil
				}
				// If deserialization fails, fall through to recompute
			}
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	// Select, format, place
	rng := wordcloud.NewRand(opts.Cloud)
	selected := wordcloud.SelectWords(words, opts.MaxWords)
	formatted := wordcloud.Format(selected, opts.Cloud, rng)

	ctrl := layout.NewController()
	cfg := opts.LayoutConfig()
	cfg.RNG = rng
	res, err := ctrl.Run(ctx, formatted, cfg)
	if err != nil {
		return wcio.Layout{}, false, err
	}

	l := wcio.Layout{
		Width:     opts.Width,
		Height:    opts.Height,
		Words:     res.Words,
		Exhausted: res.Exhausted,
		Attempts:  res.Attempts,
	}

	// Cache the result
	if cacheable {
		if data, err := wcio.MarshalLayout(l); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, words []wordcloud.Word, opts Options) (wcio.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, words, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l wcio.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheable := opts.Cacheable()
	var layoutHash string
	if cacheable {
		layoutData, err := wcio.MarshalLayout(l)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		layoutHash = cache.Hash(layoutData)

		// Try to get all formats from cache
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Render().OnRenderStart(ctx, format, len(l.Words))

		data, err := r.renderFormat(l, format, opts)
		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}

	// Cache each format
	if cacheable {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, l wcio.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// renderFormat produces one artifact. Each format gets its own random
// source so color assignment does not depend on format order.
func (r *Runner) renderFormat(l wcio.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		var buf bytes.Buffer
		if err := render.SVG(&buf, l.Words, l.Width, l.Height, opts.Cloud, opts.Callbacks, wordcloud.NewRand(opts.Cloud)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatPNG:
		return render.PNG(l.Words, l.Width, l.Height, opts.Cloud, opts.Callbacks, wordcloud.NewRand(opts.Cloud), opts.PNGScale)

	case FormatJSON:
		return wcio.MarshalLayout(l)

	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
