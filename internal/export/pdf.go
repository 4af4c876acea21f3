// Package export provides functionality for exporting site layouts and
// placement results to various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendWidth  = 70.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// pointRadius is the drawn radius of a decor point in page millimeters.
const pointRadius = 0.8

// sitePlanHalfExtent returns the half-size of the square drawn on the plan.
func sitePlanHalfExtent(p model.Project) float64 {
	h := math.Max(p.Settings.HalfExtent, p.ExtentBounds())
	if h <= 0 {
		h = model.DefaultSettings().HalfExtent
	}
	return h
}

// planTransform maps ground coordinates to page coordinates. Z grows down the page.
type planTransform struct {
	half             float64
	scale            float64
	offsetX, offsetY float64
}

func (t planTransform) page(x, z float64) (float64, float64) {
	return t.offsetX + (x+t.half)*t.scale, t.offsetY + (z+t.half)*t.scale
}

// ExportPDF generates a PDF site plan of the project: a scaled drawing of
// the ground square with corridors, buildings and decor points, followed by
// summary pages with placement statistics and the building list.
func ExportPDF(path string, project model.Project) error {
	if len(project.Buildings) == 0 && len(project.Corridors) == 0 {
		return ErrNoBuildings
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSitePage(pdf, project)

	pdf.AddPage()
	renderSummaryPage(pdf, project)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return nil
}

// renderSitePage draws the site plan on the current PDF page.
func renderSitePage(pdf *fpdf.Fpdf, project model.Project) {
	half := sitePlanHalfExtent(project)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Site Plan: %s (%.0f x %.0f)", project.Name, 2*half, 2*half)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, planStatsLine(project), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - legendWidth
	drawHeight := pageHeight - drawAreaTop - marginBottom
	side := math.Min(drawWidth, drawHeight)

	t := planTransform{
		half:    half,
		scale:   side / (2 * half),
		offsetX: marginLeft + (drawWidth-side)/2,
		offsetY: drawAreaTop,
	}

	pdf.SetFillColor(groundColor.R, groundColor.G, groundColor.B)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(t.offsetX, t.offsetY, side, side, "FD")

	pdf.ClipRect(t.offsetX, t.offsetY, side, side, false)
	drawCorridors(pdf, project.Corridors, t)
	drawBuildings(pdf, project.Buildings, t)
	kinds, colors := projectKinds(project)
	drawPoints(pdf, project.Result, colors, t)
	pdf.ClipEnd()

	drawAxisAnnotations(pdf, t, side)
	drawLegend(pdf, project, kinds, colors, t.offsetX+side+8, drawAreaTop)
}

func planStatsLine(project model.Project) string {
	line := fmt.Sprintf("Buildings: %d | Corridors: %d", len(project.Buildings), len(project.Corridors))
	if r := project.Result; r != nil {
		line += fmt.Sprintf(" | Decor points: %d of %d | Fill: %.1f%%",
			len(r.Points), r.Requested, r.FillRatio()*100)
	}
	return line
}

// drawCorridors renders road bands as dark strips.
func drawCorridors(pdf *fpdf.Fpdf, corridors []model.Corridor, t planTransform) {
	pdf.SetFillColor(corridorColor.R, corridorColor.G, corridorColor.B)
	pdf.SetDrawColor(corridorColor.R, corridorColor.G, corridorColor.B)
	pdf.SetLineWidth(0.1)
	for _, c := range corridors {
		lo, hi := c.Bounds()
		x0, y0 := t.page(lo.X, lo.Z)
		x1, y1 := t.page(hi.X, hi.Z)
		pdf.Rect(x0, y0, x1-x0, y1-y0, "F")
	}
}

// drawBuildings renders building footprints with their rotation and labels
// the ones large enough to hold text.
func drawBuildings(pdf *fpdf.Fpdf, buildings []model.Building, t planTransform) {
	for _, b := range buildings {
		col := parseHex(b.Color, buildingFallback)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)

		corners := footprintCorners(b.Footprint())
		pts := make([]fpdf.PointType, len(corners))
		for i, c := range corners {
			x, y := t.page(c.X, c.Z)
			pts[i] = fpdf.PointType{X: x, Y: y}
		}
		pdf.Polygon(pts, "FD")

		w := b.Width * t.scale
		h := b.Depth * t.scale
		if w > 12 && h > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			label := b.Name
			labelW := pdf.GetStringWidth(label)
			if labelW < w-2 {
				cx, cy := t.page(b.Position.X, b.Position.Z)
				pdf.SetXY(cx-labelW/2, cy-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
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

// drawPoints renders decor points as small filled circles.
func drawPoints(pdf *fpdf.Fpdf, result *model.PlacementResult, colors map[string]rgb, t planTransform) {
	if result == nil {
		return
	}
	for _, p := range result.Points {
		col := colors[p.Kind]
		pdf.SetFillColor(col.R, col.G, col.B)
		x, y := t.page(p.X, p.Z)
		pdf.Circle(x, y, pointRadius, "F")
	}
}

// drawAxisAnnotations labels the ground extents along the plan edges.
func drawAxisAnnotations(pdf *fpdf.Fpdf, t planTransform, side float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lo := fmt.Sprintf("%.0f", -t.half)
	hi := fmt.Sprintf("%.0f", t.half)

	pdf.SetXY(t.offsetX, t.offsetY+side+1)
	pdf.CellFormat(20, 4, "x "+lo, "", 0, "L", false, 0, "")
	hiW := pdf.GetStringWidth(hi) + 2
	pdf.SetXY(t.offsetX+side-hiW, t.offsetY+side+1)
	pdf.CellFormat(hiW, 4, hi, "", 0, "R", false, 0, "")

	pdf.TransformBegin()
	pdf.TransformRotate(90, t.offsetX-3, t.offsetY+side/2)
	zLabel := fmt.Sprintf("z %s .. %s", lo, hi)
	zW := pdf.GetStringWidth(zLabel)
	pdf.SetXY(t.offsetX-3-zW/2, t.offsetY+side/2-2)
	pdf.CellFormat(zW, 4, zLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders building kinds and decor kinds beside the plan.
func drawLegend(pdf *fpdf.Fpdf, project model.Project, kinds []string, colors map[string]rgb, x, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(legendWidth-10, 5, "Legend", "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(corridorColor.R, corridorColor.G, corridorColor.B)
	pdf.Rect(x, y+0.5, 3, 3, "F")
	pdf.SetXY(x+5, y)
	pdf.CellFormat(legendWidth-15, 4, "Road corridor", "", 0, "L", false, 0, "")
	y += 5

	counts := map[string]int{}
	if project.Result != nil {
		counts = project.Result.CountByKind()
	}
	for _, k := range kinds {
		col := colors[k]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Circle(x+1.5, y+2, 1.5, "F")
		pdf.SetXY(x+5, y)
		pdf.CellFormat(legendWidth-15, 4, fmt.Sprintf("%s (%d)", kindLabel(k), counts[k]), "", 0, "L", false, 0, "")
		y += 5
	}

	y += 3
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(x, y)
	pdf.CellFormat(legendWidth-10, 4, "Buildings by kind", "", 0, "L", false, 0, "")
	y += 5

	pdf.SetFont("Helvetica", "", 8)
	byKind := map[model.Kind]int{}
	for _, b := range project.Buildings {
		byKind[b.Kind]++
	}
	for _, k := range model.Kinds {
		if byKind[k] == 0 {
			continue
		}
		pdf.SetXY(x+5, y)
		pdf.CellFormat(legendWidth-15, 4, fmt.Sprintf("%s: %d", k, byKind[k]), "", 0, "L", false, 0, "")
		y += 5
	}
}

// renderSummaryPage draws placement statistics, settings and the building
// list, continuing on further pages when the list is long.
func renderSummaryPage(pdf *fpdf.Fpdf, project model.Project) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	y = drawKeyValues(pdf, summaryItems(project), y)
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Generation Settings", "", 0, "L", false, 0, "")
	y += 9

	s := project.Settings
	settingsItems := []keyValue{
		{"Target Count", fmt.Sprintf("%d", s.Count)},
		{"Half Extent", fmt.Sprintf("%.1f", s.HalfExtent)},
		{"Margin", fmt.Sprintf("%.1f", s.Margin)},
		{"Attempt Budget", fmt.Sprintf("%d", s.Budget())},
	}
	for _, l := range project.Layers {
		settingsItems = append(settingsItems, keyValue{
			"Layer " + l.Name, fmt.Sprintf("%d points, margin %.1f", l.Count, l.Margin),
		})
	}
	y = drawKeyValues(pdf, settingsItems, y)
	y += 5

	drawBuildingTable(pdf, project.Buildings, y)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CampusGrove - Campus Decor Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type keyValue struct {
	label string
	value string
}

func summaryItems(project model.Project) []keyValue {
	r := project.Result
	if r == nil {
		return []keyValue{{"Placement", "not generated"}}
	}
	items := []keyValue{
		{"Points Placed", fmt.Sprintf("%d of %d", len(r.Points), r.Requested)},
		{"Fill Ratio", fmt.Sprintf("%.1f%%", r.FillRatio()*100)},
		{"Samples Drawn", fmt.Sprintf("%d", r.Attempts)},
		{"Acceptance Rate", fmt.Sprintf("%.1f%%", r.AcceptanceRate()*100)},
		{"Rejected by Buildings", fmt.Sprintf("%d", r.RejectedByFootprint)},
		{"Rejected by Roads", fmt.Sprintf("%d", r.RejectedByCorridor)},
	}
	if r.Seed != 0 {
		items = append(items, keyValue{"Seed", fmt.Sprintf("%d", r.Seed)})
	}

	counts := r.CountByKind()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		items = append(items, keyValue{kindLabel(k), fmt.Sprintf("%d", counts[k])})
	}
	return items
}

func drawKeyValues(pdf *fpdf.Fpdf, items []keyValue, y float64) float64 {
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}
	return y
}

// drawBuildingTable lists every building, adding pages as needed.
func drawBuildingTable(pdf *fpdf.Fpdf, buildings []model.Building, y float64) {
	if len(buildings) == 0 {
		return
	}

	colWidths := []float64{70, 30, 45, 55, 40}
	headers := []string{"Building", "Kind", "Position (x, z)", "Size (w x d x h)", "Rotation"}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, h := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Buildings", "", 0, "L", false, 0, "")
	y += 9
	header()

	for i, b := range buildings {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
			header()
		}
		row := []string{
			b.Name,
			string(b.Kind),
			fmt.Sprintf("%.1f, %.1f", b.Position.X, b.Position.Z),
			fmt.Sprintf("%.0f x %.0f x %.0f", b.Width, b.Depth, b.Height),
			fmt.Sprintf("%.0f deg", b.Rotation*180/math.Pi),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
