package widgets

import (
	"image/color"
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CampusGrove/internal/model"
)

func TestPlanTransform_FitsSmallerSide(t *testing.T) {
	tr := NewPlanTransform(50, 800, 400)

	assert.InDelta(t, 4.0, tr.Scale, 1e-6)
	assert.InDelta(t, 400.0, tr.Side(), 1e-3)
	assert.Equal(t, fyne.NewPos(0, 0), tr.Pos(-50, -50))
	assert.Equal(t, fyne.NewPos(200, 200), tr.Pos(0, 0))
	assert.Equal(t, fyne.NewPos(400, 0), tr.Pos(50, -50), "z grows down the canvas")
}

func TestPlanTransform_DefaultsNonPositiveHalf(t *testing.T) {
	tr := NewPlanTransform(0, 100, 100)
	assert.Equal(t, model.DefaultSettings().HalfExtent, tr.Half)
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x64, G: 0x99, B: 0xE9, A: 255}, ParseColor("#6499E9", fallbackColor))
	assert.Equal(t, fallbackColor, ParseColor("blue", fallbackColor))
	assert.Equal(t, fallbackColor, ParseColor("", fallbackColor))
}

func TestDecorColors(t *testing.T) {
	layers := []model.DecorLayer{{Name: "Tree", Color: "#000000"}, {Name: "Shrub"}}
	result := &model.PlacementResult{Points: []model.PlacementPoint{{Kind: "Tree"}, {Kind: "Bench"}}}

	colors := DecorColors(layers, result)
	require.Len(t, colors, 3)
	assert.Equal(t, color.NRGBA{A: 255}, colors["Tree"])
	assert.Equal(t, decorColors[1], colors["Shrub"])
	assert.Equal(t, decorColors[2], colors["Bench"])
}

func TestFootprintCorners_Rotated(t *testing.T) {
	f := model.Footprint{CX: 0, CZ: 0, HalfWidth: 2, HalfDepth: 1, Rotation: math.Pi / 2}
	c := footprintCorners(f)
	assert.InDelta(t, 1.0, c[0].X, 1e-9)
	assert.InDelta(t, -2.0, c[0].Z, 1e-9)
}

func TestSummaryLines(t *testing.T) {
	assert.Len(t, SummaryLines(nil), 1)

	res := &model.PlacementResult{
		Points:    []model.PlacementPoint{{Kind: "Tree"}, {Kind: "Tree"}, {}},
		Requested: 4,
		Attempts:  10,
		Seed:      3,
	}
	lines := SummaryLines(res)
	require.Len(t, lines, 5)
	assert.Equal(t, "Placed 3 of 4 points in 10 attempts (75.0% fill, 30.0% acceptance)", lines[0])
	assert.Equal(t, "  Decor: 1", lines[2])
	assert.Equal(t, "  Tree: 2", lines[3])
	assert.Contains(t, lines[4], "Budget exhausted")
}
