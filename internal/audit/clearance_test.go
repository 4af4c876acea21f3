package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CampusGrove/internal/engine"
	"github.com/piwi3910/CampusGrove/internal/model"
)

// ─── distanceToFootprint Tests ──────────────────────────────

func TestDistanceToFootprint_PointOutside(t *testing.T) {
	f := model.Footprint{CX: 0, CZ: 0, HalfWidth: 5, HalfDepth: 5}

	assert.InDelta(t, 2.0, distanceToFootprint(model.Point2D{X: -7, Z: 0}, f), 0.001)
	assert.InDelta(t, 3.0, distanceToFootprint(model.Point2D{X: 0, Z: 8}, f), 0.001)
	assert.InDelta(t, 2.828, distanceToFootprint(model.Point2D{X: 7, Z: 7}, f), 0.01)
}

func TestDistanceToFootprint_PointInsideOrOnEdge(t *testing.T) {
	f := model.Footprint{CX: 10, CZ: 10, HalfWidth: 2, HalfDepth: 2}

	assert.InDelta(t, 0.0, distanceToFootprint(model.Point2D{X: 10, Z: 10}, f), 0.001)
	assert.InDelta(t, 0.0, distanceToFootprint(model.Point2D{X: 8, Z: 11}, f), 0.001)
}

// ─── CheckClearance Tests ───────────────────────────────────

func TestCheckClearance_EmptyResult(t *testing.T) {
	assert.Nil(t, CheckClearance(model.PlacementResult{}, model.CampusCatalog(), 3))
}

func TestCheckClearance_FreshResultIsClean(t *testing.T) {
	cat := model.CampusCatalog()
	s := model.DefaultSettings()
	s.Seed = 31
	res := engine.NewPlacer(s, nil).Place(cat)
	require.NotEmpty(t, res.Points)

	assert.Empty(t, CheckClearance(res, cat, s.Margin))
}

func TestCheckClearance_DetectsEditedCatalog(t *testing.T) {
	res := model.PlacementResult{Points: []model.PlacementPoint{
		{X: 20, Z: 20, Kind: "Tree"},
		{X: -20, Z: -20, Kind: "Shrub"},
		{X: 0, Z: 40},
	}}
	cat := model.NewCatalog(
		[]model.Footprint{{Label: "New Lab", CX: 22, CZ: 20, HalfWidth: 1, HalfDepth: 1}},
		[]model.Corridor{{Axis: model.AxisZ, Offset: 0, HalfWidth: 3, Center: 0, HalfExtent: 50}},
	)

	violations := CheckClearance(res, cat, 3)
	require.Len(t, violations, 2)

	assert.Equal(t, 0, violations[0].PointIndex)
	assert.Equal(t, model.ObstacleFootprint, violations[0].ObstacleType)
	assert.Equal(t, "New Lab", violations[0].ObstacleLabel)
	assert.Equal(t, "Tree", violations[0].Kind)
	assert.InDelta(t, 1.0, violations[0].Distance, 0.001)

	assert.Equal(t, 2, violations[1].PointIndex)
	assert.Equal(t, model.ObstacleCorridor, violations[1].ObstacleType)
	assert.Equal(t, "corridor #1", violations[1].ObstacleLabel)
}

func TestCheckClearance_OnePerObstacle(t *testing.T) {
	res := model.PlacementResult{Points: []model.PlacementPoint{{X: 0, Z: 0}}}
	cat := model.NewCatalog(
		[]model.Footprint{{HalfWidth: 1, HalfDepth: 1}, {CX: 0.5, HalfWidth: 1, HalfDepth: 1}},
		[]model.Corridor{{Axis: model.AxisX, HalfWidth: 1, HalfExtent: 5}},
	)

	violations := CheckClearance(res, cat, 0)
	assert.Len(t, violations, 3)
}

// ─── Format / Prune Tests ───────────────────────────────────

func TestCheckLayers_UsesLayerMargin(t *testing.T) {
	fp := model.Footprint{Label: "Kiosk", CX: 0, CZ: 0, HalfWidth: 2, HalfDepth: 2}
	catalog := model.NewCatalog([]model.Footprint{fp}, nil)
	res := model.PlacementResult{Points: []model.PlacementPoint{
		{X: 4, Z: 0, Kind: "Tree"},  // 2 from the edge, inside a 3 margin
		{X: 4, Z: 0, Kind: "Shrub"}, // clear of a 1.5 margin
		{X: 3, Z: 0, Kind: "Bench"}, // unknown kind uses the fallback of 1.5
	}}
	layers := []model.DecorLayer{{Name: "Tree", Margin: 3}, {Name: "Shrub", Margin: 1.5}}

	violations := CheckLayers(res, catalog, layers, 1.5)
	require.Len(t, violations, 2)
	assert.Equal(t, 0, violations[0].PointIndex)
	assert.Equal(t, 2, violations[1].PointIndex)
	assert.Equal(t, "Kiosk", violations[1].ObstacleLabel)
}

func TestCheckLayers_SameNamedLayersKeepValidPoints(t *testing.T) {
	catalog := model.CampusCatalog()
	settings := model.DefaultSettings()
	settings.Seed = 5
	layers := []model.DecorLayer{
		{Name: "Tree", Margin: 3, Count: 10},
		{Name: "Tree", Margin: 0.5, Count: 200},
	}

	res := engine.Decorate(catalog, settings, layers, nil, nil)
	require.NotEmpty(t, res.Points)

	violations := CheckLayers(res, catalog, layers, settings.Margin)
	assert.Empty(t, violations)
	assert.Len(t, Prune(res, violations).Points, len(res.Points))
}

func TestCheckLayers_SameNamedLayersUseSmallestMargin(t *testing.T) {
	fp := model.Footprint{Label: "Kiosk", CX: 0, CZ: 0, HalfWidth: 2, HalfDepth: 2}
	catalog := model.NewCatalog([]model.Footprint{fp}, nil)
	res := model.PlacementResult{Points: []model.PlacementPoint{
		{X: 3, Z: 0, Kind: "Tree"},   // 1 from the edge, clear of 0.5
		{X: 2.2, Z: 0, Kind: "Tree"}, // inside 0.5
	}}
	layers := []model.DecorLayer{{Name: "Tree", Margin: 3}, {Name: "Tree", Margin: 0.5}}

	violations := CheckLayers(res, catalog, layers, 3)
	require.Len(t, violations, 1)
	assert.Equal(t, 1, violations[0].PointIndex)
}

func TestFormatViolations(t *testing.T) {
	violations := []model.ClearanceViolation{
		{PointIndex: 0, Point: model.Point2D{X: 1, Z: 2}, Kind: "Tree", ObstacleType: model.ObstacleFootprint, ObstacleLabel: "Mess", Distance: 1.5},
		{PointIndex: 4, Point: model.Point2D{X: 0, Z: 9}, ObstacleType: model.ObstacleCorridor, ObstacleLabel: "Main vertical road"},
	}

	msgs := FormatViolations(violations)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Tree 1 at (1.0, 2.0) is too close to Mess: clearance 1.50", msgs[0])
	assert.Equal(t, "point 5 at (0.0, 9.0) sits on Main vertical road", msgs[1])
	assert.Empty(t, FormatViolations(nil))
}

func TestPrune(t *testing.T) {
	res := model.PlacementResult{
		Points:    []model.PlacementPoint{{X: 1}, {X: 2}, {X: 3}},
		Requested: 3,
		Attempts:  9,
	}
	violations := []model.ClearanceViolation{{PointIndex: 1}, {PointIndex: 1}}

	pruned := Prune(res, violations)
	assert.Equal(t, []model.PlacementPoint{{X: 1}, {X: 3}}, pruned.Points)
	assert.Equal(t, 9, pruned.Attempts)
	assert.Len(t, res.Points, 3, "original untouched")
}
