package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
)

// layoutCommand creates the layout command: words in, layout JSON out.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in      inputOpts
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [words.json]",
		Short: "Compute a word-cloud layout without rendering",
		Long: `Compute a word-cloud layout without rendering.

The layout command runs word selection, font scaling, and placement, then
writes the resulting layout as JSON. Pass that file to 'visualize' to render
it, possibly several times with different formats or scales.`,
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
			opts.Refresh = refresh

			input := wordsFile
			if input == "" {
				input = in.config
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runLayout(ctx, words, opts, input, output, noCache)
		},
	}

	registerInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runLayout computes the layout and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, words []wordcloud.Word, opts pipeline.Options, input, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, words, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d words", len(l.Words)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if l.Exhausted {
		printWarning("Placed %d of %d words; try a larger canvas or smaller fonts",
			len(l.Words), len(words))
	}

	path := output
	if path == "" {
		path = layoutPath(input)
	}
	if err := wcio.WriteLayoutFile(l, path); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(l.Words), l.Attempts, cached)
	printNextStep("Render", fmt.Sprintf("wordcloud visualize %s", path))
	return nil
}

// layoutPath derives the default layout output path from the input path.
func layoutPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".layout.json"
}
