package engine

import (
	"math"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// Reason says why the filter rejected a candidate point.
type Reason int

const (
	Accepted Reason = iota
	RejectedFootprint
	RejectedCorridor
)

func (r Reason) String() string {
	switch r {
	case RejectedFootprint:
		return "footprint"
	case RejectedCorridor:
		return "corridor"
	default:
		return "accepted"
	}
}

// Verdict is the outcome of classifying one candidate point.
// Index is the first obstacle that rejected the point, or -1 when accepted.
type Verdict struct {
	Reason Reason
	Index  int
}

// Accepted reports whether the point passed every obstacle test.
func (v Verdict) Accepted() bool {
	return v.Reason == Accepted
}

// Accept reports whether p keeps at least margin clearance from every
// footprint and lies outside every corridor band. Footprint rotation is
// ignored. Points exactly at the margin are accepted.
func Accept(p model.Point2D, footprints []model.Footprint, corridors []model.Corridor, margin float64) bool {
	return classify(p, footprints, corridors, margin).Accepted()
}

// Classify runs the same test as Accept against a catalog and reports the
// obstacle that rejected the point. Footprints are checked before corridors.
func Classify(p model.Point2D, catalog model.Catalog, margin float64) Verdict {
	for i := 0; i < catalog.NumFootprints(); i++ {
		if InsideFootprint(p, catalog.FootprintAt(i), margin) {
			return Verdict{Reason: RejectedFootprint, Index: i}
		}
	}
	for i := 0; i < catalog.NumCorridors(); i++ {
		if InsideCorridor(p, catalog.CorridorAt(i)) {
			return Verdict{Reason: RejectedCorridor, Index: i}
		}
	}
	return Verdict{Reason: Accepted, Index: -1}
}

func classify(p model.Point2D, footprints []model.Footprint, corridors []model.Corridor, margin float64) Verdict {
	for i, f := range footprints {
		if InsideFootprint(p, f, margin) {
			return Verdict{Reason: RejectedFootprint, Index: i}
		}
	}
	for i, c := range corridors {
		if InsideCorridor(p, c) {
			return Verdict{Reason: RejectedCorridor, Index: i}
		}
	}
	return Verdict{Reason: Accepted, Index: -1}
}

// InsideFootprint reports whether p lies strictly inside f expanded by margin.
func InsideFootprint(p model.Point2D, f model.Footprint, margin float64) bool {
	return math.Abs(p.X-f.CX) < f.HalfWidth+margin &&
		math.Abs(p.Z-f.CZ) < f.HalfDepth+margin
}

// InsideCorridor reports whether p lies strictly inside the corridor band.
func InsideCorridor(p model.Point2D, c model.Corridor) bool {
	band, along := p.Z, p.X
	if c.Axis == model.AxisZ {
		band, along = p.X, p.Z
	}
	return math.Abs(band-c.Offset) < c.HalfWidth &&
		math.Abs(along-c.Center) < c.HalfExtent
}
