package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CampusGrove/internal/engine"
)

// estimateResolution is the grid size used for the acceptance estimate.
const estimateResolution = 200

// showAdvancedSettingsDialog opens a dialog with the sampling settings that
// are not shown in the settings tab, plus an acceptance estimate for the
// current site.
func (a *App) showAdvancedSettingsDialog() {
	s := &a.project.Settings

	budgetEntry := widget.NewEntry()
	budgetEntry.SetText(strconv.Itoa(s.AttemptBudget))
	budgetEntry.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil && v >= 0 {
			s.AttemptBudget = v
		}
	}

	seedEntry := widget.NewEntry()
	seedEntry.SetText(strconv.FormatUint(s.Seed, 10))
	seedEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseUint(text, 10, 64); err == nil {
			s.Seed = v
		}
	}

	reuseSeedBtn := widget.NewButtonWithIcon("Use Last Seed", theme.HistoryIcon(), func() {
		if a.project.Result != nil && a.project.Result.Seed != 0 {
			seedEntry.SetText(strconv.FormatUint(a.project.Result.Seed, 10))
		}
	})

	samplingSection := widget.NewCard("Sampling",
		"Budget 0 uses count x attempts per point. Seed 0 draws a fresh seed.",
		container.NewGridWithColumns(2,
			widget.NewLabel("Attempt Budget"), budgetEntry,
			widget.NewLabel("Seed"), container.NewBorder(nil, nil, nil, reuseSeedBtn, seedEntry),
		))

	// --- Acceptance Estimate ---
	estimate := engine.EstimateAcceptance(a.project.Catalog(), s.HalfExtent, s.Margin, estimateResolution)
	recommended := estimate.RecommendedBudget(s.Count, engine.DefaultSafetyFactor)

	estimateLabel := widget.NewLabel(fmt.Sprintf(
		"Open area: %.1f%% of %.0f sq units\nBlocked area: %.0f sq units\nCurrent budget: %d\nRecommended budget for %d points: %d",
		estimate.OpenFraction*100, estimate.TotalArea, estimate.BlockedArea,
		s.Budget(), s.Count, recommended))

	applyBtn := widget.NewButton("Apply Recommended Budget", func() {
		budgetEntry.SetText(strconv.Itoa(recommended))
	})

	estimateSection := widget.NewCard("Acceptance Estimate",
		"Share of the sampling square that clears every building and road",
		container.NewVBox(estimateLabel, applyBtn))

	content := container.NewVScroll(container.NewVBox(
		samplingSection,
		estimateSection,
	))

	d := dialog.NewCustom("Sampling and Estimate", "Close", content, a.window)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
}
