package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // words file the artifacts were derived from
	output    string // --output flag value
	cacheHit  bool
	placed    int
	attempts  int
}

// writeArtifacts writes rendered artifacts to disk. A single format goes to
// the exact output path; multiple formats share a base path and get one file
// per format.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var paths []string
	for _, format := range p.formats {
		path := p.output
		if path == "" || len(p.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, p.artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.placed, p.attempts, p.cacheHit)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that
// extension. This is used when generating multiple files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
