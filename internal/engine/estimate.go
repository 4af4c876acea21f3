package engine

import (
	"math"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// AcceptanceEstimate holds the result of evaluating the filter on a grid.
type AcceptanceEstimate struct {
	Resolution   int     `json:"resolution"`    // cells per axis
	TotalArea    float64 `json:"total_area"`    // area of the sampling square
	BlockedArea  float64 `json:"blocked_area"`  // area rejected by footprints or corridors
	OpenFraction float64 `json:"open_fraction"` // share of cells the filter accepts
}

// DefaultSafetyFactor pads recommended budgets for sampling variance.
const DefaultSafetyFactor = 1.5

// EstimateAcceptance evaluates the filter at every cell centre of a
// resolution x resolution grid covering [-halfExtent, halfExtent]. The open
// fraction approximates the acceptance probability of a uniform sampler.
func EstimateAcceptance(catalog model.Catalog, halfExtent, margin float64, resolution int) AcceptanceEstimate {
	if halfExtent <= 0 || resolution <= 0 {
		return AcceptanceEstimate{}
	}

	footprints := catalog.Footprints()
	corridors := catalog.Corridors()
	cell := 2 * halfExtent / float64(resolution)

	open := 0
	for i := 0; i < resolution; i++ {
		x := -halfExtent + (float64(i)+0.5)*cell
		for j := 0; j < resolution; j++ {
			z := -halfExtent + (float64(j)+0.5)*cell
			if Accept(model.Point2D{X: x, Z: z}, footprints, corridors, margin) {
				open++
			}
		}
	}

	total := 4 * halfExtent * halfExtent
	fraction := float64(open) / float64(resolution*resolution)
	return AcceptanceEstimate{
		Resolution:   resolution,
		TotalArea:    total,
		BlockedArea:  total * (1 - fraction),
		OpenFraction: fraction,
	}
}

// RecommendedBudget returns the attempt budget expected to place n points,
// padded by safety and never below n. A fully blocked square falls back to
// the default budget since no amount of sampling helps.
func (e AcceptanceEstimate) RecommendedBudget(n int, safety float64) int {
	if n <= 0 {
		return 0
	}
	if e.OpenFraction <= 0 {
		return model.DefaultAttemptBudget(n)
	}
	if safety < 1 {
		safety = 1
	}
	budget := int(math.Ceil(float64(n) / e.OpenFraction * safety))
	if budget < n {
		budget = n
	}
	return budget
}
