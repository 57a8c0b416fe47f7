package render

import (
	"fmt"
	"html"
	"io"
	"math/rand/v2"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// SVG writes a word-cloud SVG to w. The canvas uses a centered group so
// placed-word coordinates can be used as-is; each word becomes one <text>
// element with a translate/rotate transform. Colors come from the
// WordColor callback when set, otherwise from a random palette pick drawn
// from rng (reproducible under a fixed seed).
func SVG(w io.Writer, placed []wordcloud.PlacedWord, width, height float64, opts wordcloud.Options, cb wordcloud.Callbacks, rng *rand.Rand) error {
	cb = cb.Merged()

	if _, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height); err != nil {
		return err
	}

	fmt.Fprintf(w, "  <style>text { transition: all %dms ease; }</style>\n",
		opts.TransitionDuration.Milliseconds())
	fmt.Fprintf(w, `  <g transform="translate(%.1f,%.1f)">`+"\n", width/2, height/2)

	for _, word := range placed {
		color := wordColor(word.Word, opts, cb, rng)

		fmt.Fprintf(w,
			`    <text text-anchor="middle" transform="translate(%.2f,%.2f) rotate(%.1f)" font-size="%.2f" font-family=%q font-style=%q font-weight=%q fill=%q>`,
			word.X, word.Y, word.Rotate, word.Size,
			fonts.CSS(word.Font), word.Style, word.Weight, color)

		if opts.TooltipEnabled() {
			fmt.Fprintf(w, "<title>%s</title>", html.EscapeString(cb.TooltipText(word.Word)))
		}
		fmt.Fprintf(w, "%s</text>\n", html.EscapeString(word.Text))
	}

	fmt.Fprint(w, "  </g>\n")
	_, err := fmt.Fprint(w, "</svg>\n")
	return err
}

// wordColor picks the fill color for one word.
func wordColor(word wordcloud.Word, opts wordcloud.Options, cb wordcloud.Callbacks, rng *rand.Rand) string {
	if cb.WordColor != nil {
		return cb.WordColor(word)
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = wordcloud.DefaultColors
	}
	return colors[rng.IntN(len(colors))]
}
