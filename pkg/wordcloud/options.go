package wordcloud

import (
	"math/rand/v2"
	"time"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultMaxWords is the maximum number of words kept after ranking.
	DefaultMaxWords = 100

	// DefaultMinFontSize and DefaultMaxFontSize are the initial font-size
	// bounds in pixels. The retry loop in pkg/layout shrinks these when not
	// every word fits.
	DefaultMinFontSize = 4.0
	DefaultMaxFontSize = 32.0

	// DefaultPadding is the collision padding around each word in pixels.
	DefaultPadding = 1.0

	// DefaultTransitionDuration is the CSS transition applied to rendered
	// words in SVG output.
	DefaultTransitionDuration = 600 * time.Millisecond

	// DefaultRenderDebounce is the quiet period the scheduler waits after
	// the last input change before recomputing a layout.
	DefaultRenderDebounce = 100 * time.Millisecond

	// DefaultBatchSize is the number of words the engine places between
	// cancellation checks.
	DefaultBatchSize = 200

	// DefaultSeed is the random seed used in deterministic mode when the
	// caller does not supply one.
	DefaultSeed = uint64(42)

	// DefaultFontFamily matches the classic word-cloud look.
	DefaultFontFamily = "times new roman"

	// DefaultFontStyle and DefaultFontWeight are plain CSS values.
	DefaultFontStyle  = "normal"
	DefaultFontWeight = "normal"
)

// DefaultRotationAngles is the documented rotation range in degrees.
// Note that the default rotation strategy draws from a narrower set; see
// DefaultRotation.
var DefaultRotationAngles = [2]float64{-90, 90}

// DefaultFontSizes is the initial [min, max] font-size pair.
var DefaultFontSizes = [2]float64{DefaultMinFontSize, DefaultMaxFontSize}

// DefaultColors is the classic ten-color categorical palette.
var DefaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// =============================================================================
// Scale & Spiral Kinds
// =============================================================================

// ScaleKind selects the family of the weight → font-size mapping.
type ScaleKind string

// Supported scale kinds.
const (
	ScaleLinear ScaleKind = "linear"
	ScaleSqrt   ScaleKind = "sqrt"
	ScaleLog    ScaleKind = "log"
)

// ValidScales is the set of supported scale kinds.
var ValidScales = map[ScaleKind]bool{
	ScaleLinear: true,
	ScaleSqrt:   true,
	ScaleLog:    true,
}

// SpiralKind selects the search curve the packing engine walks when looking
// for a free spot.
type SpiralKind string

// Supported spiral kinds.
const (
	SpiralRectangular SpiralKind = "rectangular"
	SpiralArchimedean SpiralKind = "archimedean"
)

// ValidSpirals is the set of supported spiral kinds.
var ValidSpirals = map[SpiralKind]bool{
	SpiralRectangular: true,
	SpiralArchimedean: true,
}

// =============================================================================
// Options
// =============================================================================

// Options is an immutable configuration snapshot for one layout run.
// Zero values mean "use the default"; call Merged to obtain a fully
// populated copy. Invalid font-size bounds are normalized (swapped and
// clamped to be positive) rather than rejected.
type Options struct {
	Colors        []string   `json:"colors,omitempty" toml:"colors"`
	Deterministic bool       `json:"deterministic,omitempty" toml:"deterministic"`
	Seed          uint64     `json:"seed,omitempty" toml:"seed"`
	EnableTooltip *bool      `json:"enable_tooltip,omitempty" toml:"enable_tooltip"`
	FontFamily    string     `json:"font_family,omitempty" toml:"font_family"`
	FontSizes     [2]float64 `json:"font_sizes,omitempty" toml:"font_sizes"`
	FontStyle     string     `json:"font_style,omitempty" toml:"font_style"`
	FontWeight    string     `json:"font_weight,omitempty" toml:"font_weight"`
	Padding       float64    `json:"padding,omitempty" toml:"padding"`

	// Rotations and RotationAngles parameterize the rotation strategy.
	// RotationFunc, when set, replaces the default strategy entirely.
	Rotations      int          `json:"rotations,omitempty" toml:"rotations"`
	RotationAngles [2]float64   `json:"rotation_angles,omitempty" toml:"rotation_angles"`
	RotationFunc   RotationFunc `json:"-" toml:"-"`

	Scale  ScaleKind  `json:"scale,omitempty" toml:"scale"`
	Spiral SpiralKind `json:"spiral,omitempty" toml:"spiral"`

	TransitionDuration time.Duration `json:"transition_duration,omitempty" toml:"transition_duration"`
	RenderDebounce     time.Duration `json:"render_debounce,omitempty" toml:"render_debounce"`
	BatchSize          int           `json:"batch_size,omitempty" toml:"batch_size"`
}

// Merged returns a copy of o with every unset field replaced by its default
// and invalid font-size bounds normalized. The receiver is not modified, so
// a caller-held Options value stays a faithful record of what was requested.
func (o Options) Merged() Options {
	if len(o.Colors) == 0 {
		o.Colors = DefaultColors
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.EnableTooltip == nil {
		enabled := true
		o.EnableTooltip = &enabled
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.FontSizes == [2]float64{} {
		o.FontSizes = DefaultFontSizes
	}
	if o.FontStyle == "" {
		o.FontStyle = DefaultFontStyle
	}
	if o.FontWeight == "" {
		o.FontWeight = DefaultFontWeight
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.RotationAngles == [2]float64{} {
		o.RotationAngles = DefaultRotationAngles
	}
	if o.Scale == "" {
		o.Scale = ScaleSqrt
	}
	if o.Spiral == "" {
		o.Spiral = SpiralRectangular
	}
	if o.TransitionDuration == 0 {
		o.TransitionDuration = DefaultTransitionDuration
	}
	if o.RenderDebounce == 0 {
		o.RenderDebounce = DefaultRenderDebounce
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	o.normalizeFontSizes()
	return o
}

// normalizeFontSizes clamps the font-size bounds to be positive and swaps
// them if they are out of order. The core does not reject invalid bounds;
// callers get a usable configuration instead of an error.
func (o *Options) normalizeFontSizes() {
	if o.FontSizes[0] <= 0 {
		o.FontSizes[0] = DefaultMinFontSize
	}
	if o.FontSizes[1] <= 0 {
		o.FontSizes[1] = DefaultMaxFontSize
	}
	if o.FontSizes[0] > o.FontSizes[1] {
		o.FontSizes[0], o.FontSizes[1] = o.FontSizes[1], o.FontSizes[0]
	}
}

// TooltipEnabled reports whether tooltips should be rendered.
// Unset defaults to true.
func (o Options) TooltipEnabled() bool {
	return o.EnableTooltip == nil || *o.EnableTooltip
}

// =============================================================================
// Callbacks
// =============================================================================

// Callbacks holds the named presentation hooks. All callbacks are expected
// to be pure: same word in, same answer out, no side effects.
type Callbacks struct {
	// WordColor returns the fill color for a word. When nil, a random
	// palette color is drawn per word from the run's random source.
	WordColor func(w Word) string

	// TooltipText returns the tooltip for a word. When nil, the default
	// "text (value)" form is used.
	TooltipText func(w Word) string
}

// Merged returns a copy of c with nil hooks replaced by defaults.
func (c Callbacks) Merged() Callbacks {
	if c.TooltipText == nil {
		c.TooltipText = DefaultTooltipText
	}
	return c
}

// DefaultTooltipText renders a word as "text (value)".
func DefaultTooltipText(w Word) string {
	return formatTooltip(w)
}

// =============================================================================
// Random Source
// =============================================================================

// NewRand builds the random source for one layout run. In deterministic
// mode the PCG is seeded from the configured seed so rotation and size
// assignments are reproducible; otherwise the seed comes from the global
// source.
func NewRand(opts Options) *rand.Rand {
	seed := opts.Seed
	if !opts.Deterministic {
		seed = rand.Uint64()
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
