// Package pipeline provides the core word-cloud pipeline.
//
// This package implements the complete select → format → layout → render
// pipeline that can be used by CLI, API, and TUI components. By centralizing
// this logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Select: Rank the input words by weight and keep the top N
//  2. Layout: Place the selected words via the packing engine, retrying
//     with shrunk font sizes until everything fits or attempts run out
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    MaxWords: 100,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, words, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.ComputeLayout(ctx, words, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/engine"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the resolution multiplier for PNG rasterization.
	// 2.0 produces retina-quality images of the same nominal size.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word-cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Selection options
	MaxWords int `json:"max_words,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Cloud holds the per-word layout configuration (fonts, scale,
	// spiral, rotations, seed).
	Cloud wordcloud.Options `json:"options,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses the layout cache and recomputes from scratch.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger    *log.Logger         `json:"-"`
	Engine    engine.Engine       `json:"-"`
	Callbacks wordcloud.Callbacks `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Placed is the accepted placement.
	Placed []wordcloud.PlacedWord

	// WordsHash is the content hash of the input word list.
	WordsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount   int
	PlacedCount int
	Attempts    int
	Exhausted   bool
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks that a scale kind is valid.
func ValidateScale(scale wordcloud.ScaleKind) error {
	if !wordcloud.ValidScales[scale] {
		return fmt.Errorf("invalid scale: %q (must be one of: linear, sqrt, log)", scale)
	}
	return nil
}

// ValidateSpiral checks that a spiral kind is valid.
func ValidateSpiral(spiral wordcloud.SpiralKind) error {
	if !wordcloud.ValidSpirals[spiral] {
		return fmt.Errorf("invalid spiral: %q (must be one of: rectangular, archimedean)", spiral)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := ValidateScale(o.Cloud.Scale); err != nil {
		return err
	}
	if err := ValidateSpiral(o.Cloud.Spiral); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.MaxWords == 0 {
		o.MaxWords = wordcloud.DefaultMaxWords
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.Cloud = o.Cloud.Merged()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutConfig builds the retry-chain configuration for one layout run.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		Engine:    o.Engine,
		Spiral:    o.Cloud.Spiral,
		Width:     o.Width,
		Height:    o.Height,
		BatchSize: o.Cloud.BatchSize,
		Scale:     o.Cloud.Scale,
		FontSizes: o.Cloud.FontSizes,
		Logger:    o.Logger,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MaxWords:  o.MaxWords,
		Width:     o.Width,
		Height:    o.Height,
		Scale:     string(o.Cloud.Scale),
		Spiral:    string(o.Cloud.Spiral),
		FontMin:   o.Cloud.FontSizes[0],
		FontMax:   o.Cloud.FontSizes[1],
		Padding:   o.Cloud.Padding,
		Rotations: o.Cloud.Rotations,
		Seed:      o.cacheSeed(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		FontFamily: o.Cloud.FontFamily,
		Transition: o.Cloud.TransitionDuration.Milliseconds(),
		Tooltips:   o.Cloud.TooltipEnabled(),
		PNGScale:   o.PNGScale,
		Seed:       o.cacheSeed(),
	}
}

// Cacheable reports whether results of this run may be served from or
// written to the cache. Non-deterministic runs draw fresh randomness per
// invocation, so their outputs are never cache-correct; custom rotation and
// color hooks are opaque to the cache key.
func (o *Options) Cacheable() bool {
	return o.Cloud.Deterministic &&
		o.Cloud.RotationFunc == nil &&
		o.Callbacks.WordColor == nil &&
		o.Callbacks.TooltipText == nil
}

// cacheSeed is the seed that goes into cache keys. Only meaningful for
// deterministic runs.
func (o *Options) cacheSeed() uint64 {
	if !o.Cloud.Deterministic {
		return 0
	}
	if o.Cloud.Seed == 0 {
		return wordcloud.DefaultSeed
	}
	return o.Cloud.Seed
}
