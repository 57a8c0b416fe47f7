// Package cli implements the wordcloud command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "wordcloud"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "wordcloud",
		Short:        "Wordcloud lays out weighted word lists as word clouds",
		Long:         `Wordcloud is a CLI tool for turning weighted word lists into word-cloud layouts and rendering them as SVG, PNG, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wordcloud/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Loading
// =============================================================================

// inputOpts collects the flags shared by commands that take a word list and
// layout options: the positional words file, an optional TOML config, and
// flag overrides.
type inputOpts struct {
	config   string // optional TOML config file
	maxWords int
	width    float64
	height   float64
	scale    string
	spiral   string
	fontMin  float64
	fontMax  float64
	seed     uint64
	random   bool // disable deterministic mode
}

// registerInputFlags wires the shared flags onto a command.
func registerInputFlags(cmd *cobra.Command, opts *inputOpts) {
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file with [options] and [[words]]")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "maximum number of words to keep")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.scale, "scale", "", "font scale: sqrt (default), linear, log")
	cmd.Flags().StringVar(&opts.spiral, "spiral", "", "placement spiral: rectangular (default), archimedean")
	cmd.Flags().Float64Var(&opts.fontMin, "font-min", 0, "minimum font size in pixels")
	cmd.Flags().Float64Var(&opts.fontMax, "font-max", 0, "maximum font size in pixels")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (implies deterministic layout)")
	cmd.Flags().BoolVar(&opts.random, "random", false, "use fresh randomness instead of the fixed seed")
}

// loadInputs resolves the word list and pipeline options from the positional
// argument, the optional config file, and flag overrides. Precedence, lowest
// to highest: defaults, config file, flags.
func (c *CLI) loadInputs(wordsFile string, in *inputOpts) ([]wordcloud.Word, pipeline.Options, error) {
	opts := pipeline.Options{Logger: c.Logger}
	var words []wordcloud.Word

	if in.config != "" {
		cfg, err := wcio.ReadConfigFile(in.config)
		if err != nil {
			return nil, opts, err
		}
		opts.MaxWords = cfg.MaxWords
		opts.Cloud = cfg.Options
		words = cfg.WordList()
	}

	if wordsFile != "" {
		fileWords, err := wcio.ReadWordsFile(wordsFile)
		if err != nil {
			return nil, opts, err
		}
		words = fileWords
	}

	// Flag overrides
	if in.maxWords != 0 {
		opts.MaxWords = in.maxWords
	}
	if in.width != 0 {
		opts.Width = in.width
	}
	if in.height != 0 {
		opts.Height = in.height
	}
	if in.scale != "" {
		opts.Cloud.Scale = wordcloud.ScaleKind(in.scale)
	}
	if in.spiral != "" {
		opts.Cloud.Spiral = wordcloud.SpiralKind(in.spiral)
	}
	if in.fontMin != 0 {
		opts.Cloud.FontSizes[0] = in.fontMin
	}
	if in.fontMax != 0 {
		opts.Cloud.FontSizes[1] = in.fontMax
	}
	if in.seed != 0 {
		opts.Cloud.Seed = in.seed
		opts.Cloud.Deterministic = true
	}
	if in.random {
		opts.Cloud.Deterministic = false
	} else if !opts.Cloud.Deterministic {
		// CLI runs default to reproducible output.
		opts.Cloud.Deterministic = true
	}

	return words, opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
