package wordcloud

import "math/rand/v2"

// Format combines a selection with the configured options into layout-ready
// word records: padding, rotation (one rng draw per word, in order), font
// size (FontScale over the selection's weights), and font styling. The
// input is not modified.
//
// opts should already be merged; Format consumes the fields as-is.
func Format(selected []Word, opts Options, rng *rand.Rand) []FormattedWord {
	values := make([]float64, len(selected))
	for i, w := range selected {
		values[i] = w.Value
	}
	sizeOf := FontScale(values, opts.FontSizes, opts.Scale)

	formatted := make([]FormattedWord, len(selected))
	for i, w := range selected {
		formatted[i] = FormattedWord{
			Word:    w,
			Padding: opts.Padding,
			Rotate:  rotationFor(opts, rng),
			Size:    sizeOf(w.Value),
			Font:    opts.FontFamily,
			Style:   opts.FontStyle,
			Weight:  opts.FontWeight,
		}
	}
	return formatted
}

// Resize returns a fresh copy of formatted with only the font sizes
// recomputed against new bounds. Rotations, padding, and styling are kept
// exactly as assigned by Format: the retry loop shrinks sizes between
// attempts but never redraws rotations.
func Resize(formatted []FormattedWord, fontSizes [2]float64, kind ScaleKind) []FormattedWord {
	values := make([]float64, len(formatted))
	for i, w := range formatted {
		values[i] = w.Value
	}
	sizeOf := FontScale(values, fontSizes, kind)

	resized := make([]FormattedWord, len(formatted))
	for i, w := range formatted {
		w.Size = sizeOf(w.Value)
		resized[i] = w
	}
	return resized
}
