package export

import (
	"strconv"
	"strings"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// rgb is an 8-bit color used by the PDF and plot renderers.
type rgb struct {
	R, G, B int
}

// kindColors mirrors the color scheme used in the UI site canvas for
// decor layers without an explicit color.
var kindColors = []rgb{
	{R: 46, G: 125, B: 50},   // green
	{R: 102, G: 187, B: 106}, // light green
	{R: 255, G: 193, B: 7},   // amber
	{R: 33, G: 150, B: 243},  // blue
	{R: 156, G: 39, B: 176},  // purple
	{R: 121, G: 85, B: 72},   // brown
}

var (
	buildingFallback = rgb{R: 176, G: 176, B: 176}
	corridorColor    = rgb{R: 90, G: 90, B: 90}
	groundColor      = rgb{R: 222, G: 236, B: 200}
)

// parseHex converts "#RRGGBB" to rgb, returning fallback when s is malformed.
func parseHex(s string, fallback rgb) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}
}

// layerColors assigns a color to every decor kind in a project, preferring
// the layer's own color.
func layerColors(kinds []string, layerColor map[string]string) map[string]rgb {
	out := make(map[string]rgb, len(kinds))
	for i, k := range kinds {
		out[k] = parseHex(layerColor[k], kindColors[i%len(kindColors)])
	}
	return out
}

// projectKinds returns the decor kinds of a project in layer order followed
// by any untracked kinds found in its points, with a color for each.
func projectKinds(p model.Project) ([]string, map[string]rgb) {
	var kinds []string
	seen := map[string]bool{}
	layerColor := map[string]string{}
	for _, l := range p.Layers {
		if !seen[l.Name] {
			seen[l.Name] = true
			kinds = append(kinds, l.Name)
			layerColor[l.Name] = l.Color
		}
	}
	if p.Result != nil {
		for _, pt := range p.Result.Points {
			if !seen[pt.Kind] {
				seen[pt.Kind] = true
				kinds = append(kinds, pt.Kind)
			}
		}
	}
	return kinds, layerColors(kinds, layerColor)
}

// kindLabel names untagged points for legends.
func kindLabel(kind string) string {
	if kind == "" {
		return "Decor"
	}
	return kind
}
