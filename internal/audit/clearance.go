package audit

import (
	"fmt"
	"math"

	"github.com/piwi3910/CampusGrove/internal/engine"
	"github.com/piwi3910/CampusGrove/internal/model"
)

// CheckClearance re-checks stored placement points against a catalog that
// may have been edited since generation. A point violates a footprint when
// it sits strictly inside the footprint expanded by margin, and a corridor
// when it sits strictly inside the band. Each (point, obstacle) pair is
// reported once, in point order.
//
// Distance is measured to the bare obstacle rectangle and is 0 inside it.
func CheckClearance(result model.PlacementResult, catalog model.Catalog, margin float64) []model.ClearanceViolation {
	return check(result, catalog, func(string) float64 { return margin })
}

// CheckLayers audits a decorated result, using the margin of the layer each
// point was placed by. Points whose kind matches no layer use fallback.
// Layers sharing a name are audited with the smallest of their margins,
// which every point tagged with that name cleared when it was placed.
func CheckLayers(result model.PlacementResult, catalog model.Catalog, layers []model.DecorLayer, fallback float64) []model.ClearanceViolation {
	margins := make(map[string]float64, len(layers))
	for _, l := range layers {
		if m, ok := margins[l.Name]; !ok || l.Margin < m {
			margins[l.Name] = l.Margin
		}
	}
	return check(result, catalog, func(kind string) float64 {
		if m, ok := margins[kind]; ok {
			return m
		}
		return fallback
	})
}

func check(result model.PlacementResult, catalog model.Catalog, marginFor func(kind string) float64) []model.ClearanceViolation {
	if len(result.Points) == 0 {
		return nil
	}

	footprints := catalog.Footprints()
	corridors := catalog.Corridors()

	var violations []model.ClearanceViolation
	for i, p := range result.Points {
		pt := p.Point()
		margin := marginFor(p.Kind)
		for fi, f := range footprints {
			if !engine.InsideFootprint(pt, f, margin) {
				continue
			}
			violations = append(violations, model.ClearanceViolation{
				PointIndex:    i,
				Point:         pt,
				Kind:          p.Kind,
				ObstacleType:  model.ObstacleFootprint,
				ObstacleIndex: fi,
				ObstacleLabel: footprintLabel(f, fi),
				Distance:      distanceToFootprint(pt, f),
			})
		}
		for ci, c := range corridors {
			if !engine.InsideCorridor(pt, c) {
				continue
			}
			violations = append(violations, model.ClearanceViolation{
				PointIndex:    i,
				Point:         pt,
				Kind:          p.Kind,
				ObstacleType:  model.ObstacleCorridor,
				ObstacleIndex: ci,
				ObstacleLabel: corridorLabel(c, ci),
			})
		}
	}
	return violations
}

// distanceToFootprint computes the minimum distance from p to the boundary
// of the unexpanded footprint rectangle. Returns 0 if p is inside.
func distanceToFootprint(p model.Point2D, f model.Footprint) float64 {
	lo, hi := f.Bounds()
	nearestX := math.Max(lo.X, math.Min(p.X, hi.X))
	nearestZ := math.Max(lo.Z, math.Min(p.Z, hi.Z))

	dx := p.X - nearestX
	dz := p.Z - nearestZ

	return math.Sqrt(dx*dx + dz*dz)
}

func footprintLabel(f model.Footprint, i int) string {
	if f.Label != "" {
		return f.Label
	}
	return fmt.Sprintf("footprint #%d", i+1)
}

func corridorLabel(c model.Corridor, i int) string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("corridor #%d", i+1)
}

// FormatViolations produces human-readable warning messages from violation data.
func FormatViolations(violations []model.ClearanceViolation) []string {
	var warnings []string
	for _, v := range violations {
		kind := v.Kind
		if kind == "" {
			kind = "point"
		}
		var msg string
		if v.ObstacleType == model.ObstacleCorridor {
			msg = fmt.Sprintf("%s %d at (%.1f, %.1f) sits on %s",
				kind, v.PointIndex+1, v.Point.X, v.Point.Z, v.ObstacleLabel)
		} else {
			msg = fmt.Sprintf("%s %d at (%.1f, %.1f) is too close to %s: clearance %.2f",
				kind, v.PointIndex+1, v.Point.X, v.Point.Z, v.ObstacleLabel, v.Distance)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}

// Prune returns a copy of result without the points named by violations.
// Statistics are kept; only the point list shrinks.
func Prune(result model.PlacementResult, violations []model.ClearanceViolation) model.PlacementResult {
	drop := make(map[int]bool, len(violations))
	for _, v := range violations {
		drop[v.PointIndex] = true
	}

	pruned := result
	pruned.Points = make([]model.PlacementPoint, 0, len(result.Points))
	for i, p := range result.Points {
		if !drop[i] {
			pruned.Points = append(pruned.Points, p)
		}
	}
	return pruned
}
