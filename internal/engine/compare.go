package engine

import (
	"fmt"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PlacementSettings
}

// ComparisonResult holds the placement result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.PlacementResult
	Accepted       int
	Attempts       int
	FillRatio      float64
	AcceptanceRate float64
}

// CompareScenarios runs placement for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of margins,
// budgets and extents.
func CompareScenarios(scenarios []ComparisonScenario, catalog model.Catalog) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		placer := NewPlacer(scenario.Settings, nil)
		result := placer.Place(catalog)

		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Result:         result,
			Accepted:       len(result.Points),
			Attempts:       result.Attempts,
			FillRatio:      result.FillRatio(),
			AcceptanceRate: result.AcceptanceRate(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
// All scenarios share one seed so differences come from the parameters.
func BuildDefaultScenarios(baseSettings model.PlacementSettings) []ComparisonScenario {
	if baseSettings.Seed == 0 {
		baseSettings.Seed = NewPlacer(baseSettings, nil).Seed()
	}

	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Tighter margin around buildings
	if baseSettings.Margin > 0 {
		tight := baseSettings
		tight.Margin = baseSettings.Margin * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Margin %.1f (half)", tight.Margin),
			Settings: tight,
		})
	}

	// Scenario: More sampling attempts
	larger := baseSettings
	larger.AttemptBudget = baseSettings.Budget() * 5
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Budget %d (x5)", larger.AttemptBudget),
		Settings: larger,
	})

	// Scenario: Wider ground square
	wide := baseSettings
	wide.HalfExtent = baseSettings.HalfExtent * 1.5
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Extent %.0f (x1.5)", wide.HalfExtent),
		Settings: wide,
	})

	return scenarios
}
