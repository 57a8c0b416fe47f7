package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

func placedWords() []wordcloud.PlacedWord {
	return []wordcloud.PlacedWord{
		{
			FormattedWord: wordcloud.FormattedWord{
				Word:   wordcloud.Word{Text: "hello", Value: 10},
				Size:   32,
				Rotate: -30,
				Font:   "arial",
				Style:  "normal",
				Weight: "bold",
			},
			X: 10, Y: -20,
		},
		{
			FormattedWord: wordcloud.FormattedWord{
				Word: wordcloud.Word{Text: "<world>", Value: 5},
				Size: 16,
				Font: "arial",
			},
			X: -40, Y: 5,
		},
	}
}

func renderSVG(t *testing.T, opts wordcloud.Options, cb wordcloud.Callbacks) string {
	t.Helper()
	opts = opts.Merged()
	var buf bytes.Buffer
	if err := SVG(&buf, placedWords(), 800, 600, opts, cb, wordcloud.NewRand(opts)); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	return buf.String()
}

func TestSVGStructure(t *testing.T) {
	svg := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{})

	for _, want := range []string{
		`viewBox="0 0 800.0 600.0"`,
		`<g transform="translate(400.0,300.0)">`,
		`rotate(-30.0)`,
		`font-size="32.00"`,
		`font-weight="bold"`,
		`>hello</text>`,
		"transition: all 600ms ease",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q:\n%s", want, svg)
		}
	}
}

func TestSVGEscapesText(t *testing.T) {
	svg := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{})
	if strings.Contains(svg, ">< world>") || strings.Contains(svg, "<world></text>") {
		t.Error("markup characters leaked into SVG text")
	}
	if !strings.Contains(svg, "&lt;world&gt;") {
		t.Errorf("expected escaped word text in:\n%s", svg)
	}
}

func TestSVGTooltips(t *testing.T) {
	withTooltips := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{})
	if !strings.Contains(withTooltips, "<title>hello (10)</title>") {
		t.Errorf("default tooltip missing:\n%s", withTooltips)
	}

	disabled := false
	without := renderSVG(t, wordcloud.Options{Deterministic: true, EnableTooltip: &disabled}, wordcloud.Callbacks{})
	if strings.Contains(without, "<title>") {
		t.Error("tooltips rendered despite being disabled")
	}

	custom := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{
		TooltipText: func(w wordcloud.Word) string { return "tip:" + w.Text },
	})
	if !strings.Contains(custom, "<title>tip:hello</title>") {
		t.Error("custom tooltip callback not used")
	}
}

func TestSVGWordColorCallback(t *testing.T) {
	svg := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{
		WordColor: func(w wordcloud.Word) string { return "#123456" },
	})
	if !strings.Contains(svg, `fill="#123456"`) {
		t.Error("WordColor callback not applied")
	}
}

func TestSVGTransitionDuration(t *testing.T) {
	svg := renderSVG(t, wordcloud.Options{Deterministic: true, TransitionDuration: 250 * time.Millisecond}, wordcloud.Callbacks{})
	if !strings.Contains(svg, "transition: all 250ms ease") {
		t.Error("configured transition duration not rendered")
	}
}

func TestSVGDeterministicColors(t *testing.T) {
	first := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{})
	second := renderSVG(t, wordcloud.Options{Deterministic: true}, wordcloud.Callbacks{})
	if first != second {
		t.Error("deterministic mode should give identical SVG output")
	}
}
