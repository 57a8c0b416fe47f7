package render

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// PNG rasterizes a placement. scale multiplies the canvas resolution (2.0
// gives a retina-quality image of the same nominal size). The font file is
// resolved once from the system for the words' family; per-word faces are
// derived from it at the word's size.
func PNG(placed []wordcloud.PlacedWord, width, height float64, opts wordcloud.Options, cb wordcloud.Callbacks, rng *rand.Rand, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	cb = cb.Merged()

	font, err := loadFont(opts.FontFamily)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(width*scale), int(height*scale))
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.Scale(scale, scale)
	dc.Translate(width/2, height/2)

	for _, word := range placed {
		dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: word.Size}))
		dc.SetHexColor(wordColor(word.Word, opts, cb, rng))

		dc.Push()
		dc.RotateAbout(gg.Radians(word.Rotate), word.X, word.Y)
		dc.DrawStringAnchored(word.Text, word.X, word.Y, 0.5, 0.5)
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// loadFont resolves and parses the TTF for a family.
func loadFont(family string) (*truetype.Font, error) {
	path, err := fonts.FindTTF(family)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	font, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return font, nil
}
