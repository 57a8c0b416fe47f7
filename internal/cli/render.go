package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// renderCommand creates the render command: words in, images out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         inputOpts
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		pngScale   float64
	)

	cmd := &cobra.Command{
		Use:   "render [words.json]",
		Short: "Render a word list to a word cloud",
		Long: `Render a word list to a word cloud.

The render command takes a JSON word list (an array of {"text", "value"}
records) or a TOML config (--config) and produces SVG, PNG, or JSON output
in one step. Layouts and artifacts are cached locally for faster subsequent
runs.

Use 'layout' and 'visualize' to run the two stages separately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordsFile := ""
			if len(args) > 0 {
				wordsFile = args[0]
			}
			if wordsFile == "" && in.config == "" {
				return fmt.Errorf("a words file or --config is required")
			}

			words, opts, err := c.loadInputs(wordsFile, &in)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.PNGScale = pngScale
			opts.Refresh = refresh

			input := wordsFile
			if input == "" {
				input = in.config
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runRender(ctx, words, opts, input, output, noCache)
		},
	}

	registerInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().Float64Var(&pngScale, "png-scale", 0, "PNG resolution multiplier (default 2.0)")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, words []wordcloud.Word, opts pipeline.Options, input, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Laying out word cloud...")
	spinner.Start()

	result, err := runner.Execute(ctx, words, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d words", result.Stats.PlacedCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Stats.Exhausted {
		printWarning("Placed %d of %d words; try a larger canvas or smaller fonts",
			result.Stats.PlacedCount, result.Stats.WordCount)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		placed:    result.Stats.PlacedCount,
		attempts:  result.Stats.Attempts,
	})
}
