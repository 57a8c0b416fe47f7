package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"

	wcio "github.com/matzehuels/wordcloud/pkg/io"
)

// visualizeCommand creates the visualize command: layout JSON in, images out.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		pngScale   float64
	)

	cmd := &cobra.Command{
		Use:   "visualize <layout.json>",
		Short: "Render a previously computed layout",
		Long: `Render a previously computed layout.

The visualize command takes the JSON produced by 'layout' and renders it as
SVG, PNG, or JSON without recomputing the placement. Rendering the same
layout in several formats reuses the cached placement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Formats:  parseFormats(formatsStr),
				PNGScale: pngScale,
				Refresh:  refresh,
				Logger:   c.Logger,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().Float64Var(&pngScale, "png-scale", 0, "PNG resolution multiplier (default 2.0)")

	return cmd
}

// runVisualize renders a stored layout and writes the artifacts.
func (c *CLI) runVisualize(ctx context.Context, layoutFile string, opts pipeline.Options, output string, noCache bool) error {
	l, err := wcio.ReadLayoutFile(layoutFile)
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}

	// Match the stored canvas so coordinates line up.
	opts.Width = l.Width
	opts.Height = l.Height

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     layoutFile,
		output:    output,
		cacheHit:  cached,
		placed:    len(l.Words),
		attempts:  l.Attempts,
	})
}
