package wordcloud

import "fmt"

// =============================================================================
// Word Types - Single Source of Truth for Serialization
// =============================================================================

// Word is a single input datum: display text plus a non-negative weight.
// Text uniqueness is not required. Meta carries arbitrary extra fields and
// survives serialization round-trips untouched.
type Word struct {
	Text  string         `json:"text" bson:"text"`
	Value float64        `json:"value" bson:"value"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// FormattedWord is a Word augmented with the rendering attributes computed
// for one layout attempt: padding, rotation (degrees), font size (px), and
// font styling. Instances are created fresh on every attempt and never
// mutated afterwards.
type FormattedWord struct {
	Word `bson:",inline"`

	Padding float64 `json:"padding" bson:"padding"`
	Rotate  float64 `json:"rotate" bson:"rotate"`
	Size    float64 `json:"size" bson:"size"`
	Font    string  `json:"font" bson:"font"`
	Style   string  `json:"style" bson:"style"`
	Weight  string  `json:"weight" bson:"weight"`
}

// PlacedWord is a FormattedWord that the layout engine managed to place.
// X and Y are center-origin coordinates in the engine's frame: (0,0) is the
// middle of the canvas.
type PlacedWord struct {
	FormattedWord `bson:",inline"`

	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// formatTooltip renders the default "text (value)" tooltip form.
func formatTooltip(w Word) string {
	return fmt.Sprintf("%s (%g)", w.Text, w.Value)
}
