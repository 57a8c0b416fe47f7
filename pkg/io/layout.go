package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// =============================================================================
// Layout - Serialized Placement
// =============================================================================

// Layout is the serialization format for a completed layout run: the placed
// words plus the canvas they were placed on. It is both the cache payload
// for layout results and the JSON output format of the CLI and API.
type Layout struct {
	Width  float64                `json:"width" bson:"width"`
	Height float64                `json:"height" bson:"height"`
	Words  []wordcloud.PlacedWord `json:"words" bson:"words"`

	// Exhausted records that the layout run used up its attempt budget
	// without placing every word; Words then holds the best-effort subset.
	Exhausted bool `json:"exhausted,omitempty" bson:"exhausted,omitempty"`

	// Attempts is the number of packing attempts the run used.
	Attempts int `json:"attempts,omitempty" bson:"attempts,omitempty"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("invalid layout dimensions: %gx%g", l.Width, l.Height)
	}
	return l, nil
}

// ReadLayout decodes a JSON layout from an io.Reader.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return UnmarshalLayout(data)
}

// ReadLayoutFile reads a JSON file and returns the decoded layout.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}

// WriteLayoutFile writes a layout to a JSON file.
// The file is created with 0644 permissions.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
