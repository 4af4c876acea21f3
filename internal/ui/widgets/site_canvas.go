package widgets

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// Decor colors: cycle through these for layers without their own color.
var decorColors = []color.NRGBA{
	{R: 46, G: 125, B: 50, A: 230},   // green
	{R: 102, G: 187, B: 106, A: 230}, // light green
	{R: 255, G: 193, B: 7, A: 230},   // amber
	{R: 33, G: 150, B: 243, A: 230},  // blue
	{R: 156, G: 39, B: 176, A: 230},  // purple
	{R: 121, G: 85, B: 72, A: 230},   // brown
}

var (
	groundColor    = color.NRGBA{R: 222, G: 236, B: 200, A: 255}
	corridorColor  = color.NRGBA{R: 90, G: 90, B: 90, A: 200}
	outlineColor   = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	violationColor = color.NRGBA{R: 220, G: 0, B: 0, A: 255}
	fallbackColor  = color.NRGBA{R: 176, G: 176, B: 176, A: 255}
)

// pointDiameter is the on-screen size of a decor point in pixels.
const pointDiameter = 6

// PlanTransform maps ground coordinates onto a square canvas. Z grows down.
type PlanTransform struct {
	Half  float64 // half-size of the drawn ground square
	Scale float32 // pixels per ground unit
}

// NewPlanTransform fits a square of half-size half into maxW x maxH pixels.
func NewPlanTransform(half float64, maxW, maxH float32) PlanTransform {
	if half <= 0 {
		half = model.DefaultSettings().HalfExtent
	}
	side := maxW
	if maxH < side {
		side = maxH
	}
	return PlanTransform{Half: half, Scale: side / float32(2*half)}
}

// Side returns the canvas side length in pixels.
func (t PlanTransform) Side() float32 {
	return float32(2*t.Half) * t.Scale
}

// Pos converts a ground coordinate to a canvas position.
func (t PlanTransform) Pos(x, z float64) fyne.Position {
	return fyne.NewPos(float32(x+t.Half)*t.Scale, float32(z+t.Half)*t.Scale)
}

// ParseColor converts "#RRGGBB" to a color, returning fallback when malformed.
func ParseColor(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// DecorColors assigns a color to every decor kind, preferring layer colors.
func DecorColors(layers []model.DecorLayer, result *model.PlacementResult) map[string]color.NRGBA {
	out := map[string]color.NRGBA{}
	next := 0
	assign := func(kind, hex string) {
		if _, ok := out[kind]; ok {
			return
		}
		out[kind] = ParseColor(hex, decorColors[next%len(decorColors)])
		next++
	}
	for _, l := range layers {
		assign(l.Name, l.Color)
	}
	if result != nil {
		for _, p := range result.Points {
			assign(p.Kind, "")
		}
	}
	return out
}

// SiteCanvas renders the site plan: ground square, roads, buildings and decor.
type SiteCanvas struct {
	widget.BaseWidget
	project    model.Project
	violations []model.ClearanceViolation
	maxWidth   float32
	maxHeight  float32
}

// NewSiteCanvas creates a canvas for project scaled into maxW x maxH pixels.
// Points named by violations are ringed in red.
func NewSiteCanvas(project model.Project, violations []model.ClearanceViolation, maxW, maxH float32) *SiteCanvas {
	sc := &SiteCanvas{
		project:    project,
		violations: violations,
		maxWidth:   maxW,
		maxHeight:  maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *SiteCanvas) transform() PlanTransform {
	half := math.Max(sc.project.Settings.HalfExtent, sc.project.ExtentBounds())
	return NewPlanTransform(half, sc.maxWidth, sc.maxHeight)
}

func (sc *SiteCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newSiteCanvasRenderer(sc)
}

type siteCanvasRenderer struct {
	sc      *SiteCanvas
	objects []fyne.CanvasObject
}

func newSiteCanvasRenderer(sc *SiteCanvas) *siteCanvasRenderer {
	r := &siteCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *siteCanvasRenderer) rebuild() {
	r.objects = nil
	t := r.sc.transform()
	side := t.Side()

	bg := canvas.NewRectangle(groundColor)
	bg.Resize(fyne.NewSize(side, side))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(side, side))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	for _, c := range r.sc.project.Corridors {
		lo, hi := c.Bounds()
		rect := canvas.NewRectangle(corridorColor)
		rect.Move(t.Pos(lo.X, lo.Z))
		rect.Resize(fyne.NewSize(float32(hi.X-lo.X)*t.Scale, float32(hi.Z-lo.Z)*t.Scale))
		r.objects = append(r.objects, rect)
	}

	for _, b := range r.sc.project.Buildings {
		r.drawBuilding(b, t)
	}

	r.drawPoints(t)
}

// drawBuilding draws an axis-aligned building as a filled rectangle and a
// rotated one as an outline.
func (r *siteCanvasRenderer) drawBuilding(b model.Building, t PlanTransform) {
	f := b.Footprint()
	col := ParseColor(b.Color, fallbackColor)
	w := float32(2*f.HalfWidth) * t.Scale
	h := float32(2*f.HalfDepth) * t.Scale
	topLeft := t.Pos(f.CX-f.HalfWidth, f.CZ-f.HalfDepth)

	if f.Rotation == 0 {
		rect := canvas.NewRectangle(col)
		rect.StrokeColor = outlineColor
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(w, h))
		rect.Move(topLeft)
		r.objects = append(r.objects, rect)
	} else {
		corners := footprintCorners(f)
		for i := range corners {
			a, c := corners[i], corners[(i+1)%len(corners)]
			line := canvas.NewLine(col)
			line.StrokeWidth = 2
			line.Position1 = t.Pos(a.X, a.Z)
			line.Position2 = t.Pos(c.X, c.Z)
			r.objects = append(r.objects, line)
		}
	}

	if w > 40 && h > 16 {
		label := canvas.NewText(b.Name, color.Black)
		label.TextSize = 9
		label.Move(topLeft.Add(fyne.NewPos(2, 2)))
		r.objects = append(r.objects, label)
	}
}

func (r *siteCanvasRenderer) drawPoints(t PlanTransform) {
	result := r.sc.project.Result
	if result == nil {
		return
	}
	colors := DecorColors(r.sc.project.Layers, result)
	flagged := make(map[int]bool, len(r.sc.violations))
	for _, v := range r.sc.violations {
		flagged[v.PointIndex] = true
	}

	half := fyne.NewPos(pointDiameter/2, pointDiameter/2)
	for i, p := range result.Points {
		dot := canvas.NewCircle(colors[p.Kind])
		dot.Resize(fyne.NewSize(pointDiameter, pointDiameter))
		dot.Move(t.Pos(p.X, p.Z).Subtract(half))
		r.objects = append(r.objects, dot)

		if flagged[i] {
			ring := canvas.NewCircle(color.Transparent)
			ring.StrokeColor = violationColor
			ring.StrokeWidth = 2
			ring.Resize(fyne.NewSize(2*pointDiameter, 2*pointDiameter))
			ring.Move(t.Pos(p.X, p.Z).Subtract(fyne.NewPos(pointDiameter, pointDiameter)))
			r.objects = append(r.objects, ring)
		}
	}
}

// footprintCorners returns the four corners of f rotated about its centre.
func footprintCorners(f model.Footprint) [4]model.Point2D {
	sin, cos := math.Sincos(f.Rotation)
	offsets := [4][2]float64{
		{-f.HalfWidth, -f.HalfDepth},
		{f.HalfWidth, -f.HalfDepth},
		{f.HalfWidth, f.HalfDepth},
		{-f.HalfWidth, f.HalfDepth},
	}
	var out [4]model.Point2D
	for i, o := range offsets {
		out[i] = model.Point2D{
			X: f.CX + o[0]*cos - o[1]*sin,
			Z: f.CZ + o[0]*sin + o[1]*cos,
		}
	}
	return out
}

func (r *siteCanvasRenderer) Layout(size fyne.Size)        {}
func (r *siteCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *siteCanvasRenderer) Destroy()                     {}
func (r *siteCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *siteCanvasRenderer) MinSize() fyne.Size {
	side := r.sc.transform().Side()
	return fyne.NewSize(side, side)
}

// RenderSite creates the site-plan view with a statistics summary below it.
func RenderSite(project model.Project, violations []model.ClearanceViolation) fyne.CanvasObject {
	items := []fyne.CanvasObject{NewSiteCanvas(project, violations, 640, 640)}

	for _, line := range SummaryLines(project.Result) {
		items = append(items, widget.NewLabel(line))
	}

	if len(violations) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d clearance violations. The site changed since generation; regenerate or prune.",
			len(violations),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	return container.NewVScroll(container.NewVBox(items...))
}

// SummaryLines describes a placement result for display.
func SummaryLines(result *model.PlacementResult) []string {
	if result == nil {
		return []string{"No decor yet. Use Tools > Regenerate to scatter the decor layers."}
	}
	lines := []string{fmt.Sprintf(
		"Placed %d of %d points in %d attempts (%.1f%% fill, %.1f%% acceptance)",
		len(result.Points), result.Requested, result.Attempts,
		result.FillRatio()*100, result.AcceptanceRate()*100,
	)}
	lines = append(lines, fmt.Sprintf(
		"Rejected by buildings: %d, by roads: %d, seed: %d",
		result.RejectedByFootprint, result.RejectedByCorridor, result.Seed,
	))

	counts := result.CountByKind()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		name := k
		if name == "" {
			name = "Decor"
		}
		lines = append(lines, fmt.Sprintf("  %s: %d", name, counts[k]))
	}
	if !result.Filled() {
		lines = append(lines, "Budget exhausted before every point was placed; raise the attempt budget or lower the margins.")
	}
	return lines
}
