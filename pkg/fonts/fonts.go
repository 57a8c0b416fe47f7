// Package fonts maps configured font families to CSS fallback stacks and
// to TTF files on the local system.
//
// SVG output only needs the CSS side; the PNG renderer needs an actual
// font file and resolves one through the system font directories.
package fonts

import (
	"fmt"
	"strings"

	"github.com/flopp/go-findfont"
)

// Common font family names accepted in Options.FontFamily.
const (
	FamilyTimes     = "times new roman"
	FamilyArial     = "arial"
	FamilyCourier   = "courier new"
	FamilyHelvetica = "helvetica"
	FamilyImpact    = "impact"
)

// fallbacks maps a family to its CSS fallback stack.
var fallbacks = map[string]string{
	FamilyTimes:     `'Times New Roman', Times, serif`,
	FamilyArial:     `Arial, Helvetica, sans-serif`,
	FamilyCourier:   `'Courier New', Courier, monospace`,
	FamilyHelvetica: `Helvetica, Arial, sans-serif`,
	FamilyImpact:    `Impact, 'Arial Black', sans-serif`,
}

// CSS returns the font-family value for SVG output: the configured family
// plus a sensible fallback stack. Unknown families fall back to serif.
func CSS(family string) string {
	if stack, ok := fallbacks[strings.ToLower(family)]; ok {
		return stack
	}
	if family == "" {
		return fallbacks[FamilyTimes]
	}
	return fmt.Sprintf("'%s', serif", family)
}

// ttfCandidates maps a family to the font file names tried in order.
var ttfCandidates = map[string][]string{
	FamilyTimes:     {"Times New Roman.ttf", "times.ttf", "LiberationSerif-Regular.ttf", "DejaVuSerif.ttf"},
	FamilyArial:     {"Arial.ttf", "arial.ttf", "LiberationSans-Regular.ttf", "DejaVuSans.ttf"},
	FamilyCourier:   {"Courier New.ttf", "cour.ttf", "LiberationMono-Regular.ttf", "DejaVuSansMono.ttf"},
	FamilyHelvetica: {"Helvetica.ttf", "Arial.ttf", "LiberationSans-Regular.ttf", "DejaVuSans.ttf"},
	FamilyImpact:    {"Impact.ttf", "impact.ttf", "DejaVuSans-Bold.ttf"},
}

// genericCandidates are tried when no family-specific file is found.
var genericCandidates = []string{
	"DejaVuSerif.ttf", "DejaVuSans.ttf", "LiberationSerif-Regular.ttf", "Arial.ttf",
}

// FindTTF resolves a family to a TTF file path via the system font
// directories. Returns an error only when no candidate (family-specific or
// generic) exists on the system.
func FindTTF(family string) (string, error) {
	candidates := ttfCandidates[strings.ToLower(family)]
	if family != "" {
		candidates = append([]string{family + ".ttf"}, candidates...)
	}
	candidates = append(candidates, genericCandidates...)

	for _, name := range candidates {
		if path, err := findfont.Find(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no usable font found for family %q", family)
}
