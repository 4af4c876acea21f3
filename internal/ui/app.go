package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CampusGrove/internal/audit"
	"github.com/piwi3910/CampusGrove/internal/engine"
	"github.com/piwi3910/CampusGrove/internal/export"
	"github.com/piwi3910/CampusGrove/internal/importer"
	"github.com/piwi3910/CampusGrove/internal/model"
	"github.com/piwi3910/CampusGrove/internal/project"
	"github.com/piwi3910/CampusGrove/internal/ui/widgets"
)

// maxRecentProjects bounds the File > Open Recent list.
const maxRecentProjects = 8

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	project model.Project
	tabs    *container.AppTabs
	history *History
	logger  *slog.Logger

	config     model.AppConfig
	decor      model.DecorInventory
	decorPath  string
	templates  model.TemplateStore
	violations []model.ClearanceViolation

	// UI references for dynamic updates
	siteContainer      *fyne.Container
	buildingsContainer *fyne.Container
	layersContainer    *fyne.Container
}

// NewApp loads the user's config, decor presets and templates and starts
// with a project seeded from the built-in campus. Load failures fall back
// to defaults and are logged.
func NewApp(application fyne.App, window fyne.Window) *App {
	a := &App{
		app:     application,
		window:  window,
		history: NewHistory(),
		logger:  slog.Default().With("component", "ui"),
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		a.logger.Warn("config not loaded, using defaults", "err", err)
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	inv, path, err := project.LoadOrCreateDecorInventory()
	if err != nil {
		a.logger.Warn("decor presets not loaded", "path", path, "err", err)
	}
	if len(inv.Presets) == 0 {
		inv = model.DefaultDecorInventory()
	}
	if path == "" {
		path = project.DefaultDecorPath()
	}
	a.decor, a.decorPath = inv, path

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		a.logger.Warn("templates not loaded", "err", err)
	}
	a.templates = templates

	a.project = a.newProject()
	a.applyTheme()
	return a
}

// newProject returns the built-in campus with the user's default settings.
func (a *App) newProject() model.Project {
	p := model.NewProject()
	a.config.ApplyToSettings(&p.Settings)
	return p
}

func (a *App) applyTheme() {
	if a.app == nil {
		return
	}
	a.app.Settings().SetTheme(ThemeForName(a.config.Theme))
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.setProject(a.newProject())
		}),
		fyne.NewMenuItem("New From Template...", func() {
			a.showTemplatePicker()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		a.buildRecentMenuItem(),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItem("Save As Template...", func() {
			a.showSaveTemplateDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Buildings from CSV...", func() {
			a.importBuildings("CSV")
		}),
		fyne.NewMenuItem("Import Buildings from Excel...", func() {
			a.importBuildings("Excel")
		}),
		fyne.NewMenuItem("Import Buildings from DXF...", func() {
			a.importBuildings("DXF")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Site Plan (PDF)...", func() {
			a.exportFile("site-plan.pdf", func(path string) error { return export.ExportPDF(path, a.project) })
		}),
		fyne.NewMenuItem("Export Building Labels (PDF)...", func() {
			a.exportFile("building-labels.pdf", func(path string) error { return export.ExportLabels(path, a.project.Buildings) })
		}),
		fyne.NewMenuItem("Export Preview (PNG)...", func() {
			a.exportFile("preview.png", func(path string) error { return export.ExportPlot(path, a.project) })
		}),
		fyne.NewMenuItem("Export Placements (Excel)...", func() {
			a.exportFile("placements.xlsx", func(path string) error {
				if a.project.Result == nil {
					return export.ErrNoPlacements
				}
				return export.ExportExcel(path, *a.project.Result)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Buildings", func() {
			a.editSite("Clear buildings", func() { a.project.Buildings = []model.Building{} })
		}),
		fyne.NewMenuItem("Restore Campus Roads", func() {
			a.editSite("Restore roads", func() { a.project.Corridors = model.CampusCorridors() })
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Regenerate Decor", func() {
			a.regenerate()
			a.tabs.SelectIndex(0)
		}),
		fyne.NewMenuItem("Compare Scenarios...", func() {
			a.showCompareDialog()
		}),
		fyne.NewMenuItem("Check Clearance", func() {
			a.checkClearance(true)
		}),
		fyne.NewMenuItem("Prune Violating Points", func() {
			a.pruneViolations()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Sampling and Estimate...", func() {
			a.showAdvancedSettingsDialog()
		}),
	)

	adminMenu := fyne.NewMenu("Admin",
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Decor Presets...", func() {
			a.showDecorPresetsDialog()
		}),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, adminMenu, helpMenu))
}

func (a *App) buildRecentMenuItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Open Recent", nil)
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentProjects {
		p := path
		items = append(items, fyne.NewMenuItem(filepath.Base(p), func() {
			a.openProjectPath(p)
		}))
	}
	if len(items) == 0 {
		disabled := fyne.NewMenuItem("(none)", nil)
		disabled.Disabled = true
		items = append(items, disabled)
	}
	item.ChildMenu = fyne.NewMenu("", items...)
	return item
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CampusGrove",
		"CampusGrove: campus decor placement\n\n"+
			"Scatters trees, shrubs and lamp posts across a campus site plan,\n"+
			"keeping clear of building footprints and road corridors.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	siteTab := container.NewTabItem("Site Plan", a.buildSitePanel())
	buildingsTab := container.NewTabItem("Buildings", a.buildBuildingsPanel())
	layersTab := container.NewTabItem("Decor Layers", a.buildLayersPanel())
	settingsTab := container.NewTabItem("Settings", a.buildSettingsPanel())

	a.tabs = container.NewAppTabs(siteTab, buildingsTab, layersTab, settingsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// setProject replaces the open project and refreshes every panel.
func (a *App) setProject(p model.Project) {
	a.project = p
	a.history.Clear()
	a.violations = nil
	a.refreshAll()
}

func (a *App) refreshAll() {
	a.refreshBuildingsList()
	a.refreshLayersList()
	a.refreshSite()
	if a.tabs != nil {
		a.tabs.Items[3].Content = a.buildSettingsPanel()
		a.tabs.Refresh()
	}
}

// ─── Site Plan Panel ───────────────────────────────────────

func (a *App) buildSitePanel() fyne.CanvasObject {
	a.siteContainer = container.NewStack()
	a.refreshSite()

	regenBtn := widget.NewButtonWithIcon("Regenerate", theme.ViewRefreshIcon(), func() {
		a.regenerate()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Site Plan", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			regenBtn,
		),
		nil, nil, nil,
		a.siteContainer,
	)
}

func (a *App) refreshSite() {
	if a.siteContainer == nil {
		return
	}
	a.siteContainer.RemoveAll()
	a.siteContainer.Add(widgets.RenderSite(a.project, a.violations))
	a.siteContainer.Refresh()
}

// ─── Buildings Panel ───────────────────────────────────────

func (a *App) buildBuildingsPanel() fyne.CanvasObject {
	a.buildingsContainer = container.NewVBox()
	a.refreshBuildingsList()

	addBtn := widget.NewButtonWithIcon("Add Building", theme.ContentAddIcon(), func() {
		a.showBuildingDialog(-1)
	})
	undoBtn := newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", func() {
		a.undo()
	})
	redoBtn := newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", func() {
		a.redo()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Buildings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			undoBtn,
			redoBtn,
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.buildingsContainer),
	)
}

func (a *App) refreshBuildingsList() {
	if a.buildingsContainer == nil {
		return
	}
	a.buildingsContainer.RemoveAll()

	if len(a.project.Buildings) == 0 {
		a.buildingsContainer.Add(widget.NewLabel("No buildings. Add one or import a CSV, Excel or DXF file."))
		return
	}

	header := container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Kind", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("X", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Z", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Depth", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.buildingsContainer.Add(header)
	a.buildingsContainer.Add(widget.NewSeparator())

	for i := range a.project.Buildings {
		idx := i
		b := a.project.Buildings[idx]
		row := container.NewGridWithColumns(8,
			widget.NewLabel(b.Name),
			widget.NewLabel(string(b.Kind)),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Position.X)),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Position.Z)),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Width)),
			widget.NewLabel(fmt.Sprintf("%.1f", b.Depth)),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit building", func() {
				a.showBuildingDialog(idx)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete building", func() {
				a.editSite("Delete "+b.Name, func() {
					a.project.Buildings = append(a.project.Buildings[:idx], a.project.Buildings[idx+1:]...)
				})
			}),
		)
		a.buildingsContainer.Add(row)
	}
}

// showBuildingDialog adds a building when idx is negative and edits
// building idx otherwise.
func (a *App) showBuildingDialog(idx int) {
	b := model.NewBuilding(fmt.Sprintf("Building %d", len(a.project.Buildings)+1), model.KindAcademic, 0, 0, 10, 5, 10)
	title, confirm := "Add Building", "Add"
	if idx >= 0 {
		b = a.project.Buildings[idx]
		title, confirm = "Edit Building", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(b.Name)

	kindNames := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		kindNames[i] = string(k)
	}
	kindSelect := widget.NewSelect(kindNames, nil)
	kindSelect.SetSelected(string(b.Kind))

	numEntry := func(v float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(v, 'f', -1, 64))
		return e
	}
	xEntry := numEntry(b.Position.X)
	zEntry := numEntry(b.Position.Z)
	widthEntry := numEntry(b.Width)
	heightEntry := numEntry(b.Height)
	depthEntry := numEntry(b.Depth)
	colorEntry := widget.NewEntry()
	colorEntry.SetText(b.Color)

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Kind", kindSelect),
			widget.NewFormItem("Centre X", xEntry),
			widget.NewFormItem("Centre Z", zEntry),
			widget.NewFormItem("Width (X)", widthEntry),
			widget.NewFormItem("Height (Y)", heightEntry),
			widget.NewFormItem("Depth (Z)", depthEntry),
			widget.NewFormItem("Color (#RRGGBB)", colorEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			x, errX := strconv.ParseFloat(xEntry.Text, 64)
			z, errZ := strconv.ParseFloat(zEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			d, _ := strconv.ParseFloat(depthEntry.Text, 64)
			if errX != nil || errZ != nil || w <= 0 || d <= 0 {
				dialog.ShowError(fmt.Errorf("position must be numeric and width and depth must be > 0"), a.window)
				return
			}
			kind, _ := model.ParseKind(kindSelect.Selected)

			b.Name = strings.TrimSpace(nameEntry.Text)
			b.Kind = kind
			b.Position = model.Point2D{X: x, Z: z}
			b.Width, b.Height, b.Depth = w, h, d
			b.Color = strings.TrimSpace(colorEntry.Text)
			if b.Slug == "" {
				b.Slug = importer.Slugify(b.Name)
			}

			if idx >= 0 {
				a.editSite("Edit "+b.Name, func() { a.project.Buildings[idx] = b })
			} else {
				a.editSite("Add "+b.Name, func() { a.project.Buildings = append(a.project.Buildings, b) })
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 480))
	form.Show()
}

// editSite records an undo snapshot, applies change to the site and
// re-audits the stored placement against the edited catalog.
func (a *App) editSite(label string, change func()) {
	a.history.Push(MakeSnapshot(a.project.Buildings, a.project.Corridors, label))
	change()
	a.afterSiteChange()
}

func (a *App) afterSiteChange() {
	a.refreshBuildingsList()
	a.checkClearance(false)
}

func (a *App) currentSnapshot(label string) Snapshot {
	return MakeSnapshot(a.project.Buildings, a.project.Corridors, label)
}

func (a *App) restoreSnapshot(s Snapshot) {
	a.project.Buildings = s.Buildings
	if a.project.Buildings == nil {
		a.project.Buildings = []model.Building{}
	}
	a.project.Corridors = s.Corridors
	if a.project.Corridors == nil {
		a.project.Corridors = []model.Corridor{}
	}
	a.afterSiteChange()
}

func (a *App) undo() {
	label := a.history.UndoLabel()
	s, ok := a.history.Undo(a.currentSnapshot(label))
	if !ok {
		return
	}
	a.restoreSnapshot(s)
}

func (a *App) redo() {
	s, ok := a.history.Redo(a.currentSnapshot(""))
	if !ok {
		return
	}
	a.restoreSnapshot(s)
}

// ─── Decor Layers Panel ────────────────────────────────────

func (a *App) buildLayersPanel() fyne.CanvasObject {
	a.layersContainer = container.NewVBox()
	a.refreshLayersList()

	presetSelect := widget.NewSelect(a.decor.Names(), nil)
	presetSelect.PlaceHolder = "Add layer from preset..."
	presetSelect.OnChanged = func(name string) {
		if name == "" {
			return
		}
		if p := a.decor.FindByName(name); p != nil {
			layer := p.Layer()
			layer.Name = model.UniqueLayerName(a.project.Layers, layer.Name)
			a.project.Layers = append(a.project.Layers, layer)
			a.refreshLayersList()
		}
		presetSelect.ClearSelected()
	}

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Decor Layers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			presetSelect,
		),
		nil, nil, nil,
		container.NewVScroll(a.layersContainer),
	)
}

func (a *App) refreshLayersList() {
	if a.layersContainer == nil {
		return
	}
	a.layersContainer.RemoveAll()

	if len(a.project.Layers) == 0 {
		a.layersContainer.Add(widget.NewLabel(fmt.Sprintf(
			"No layers. Regenerate places %d untagged points with the margin from Settings.",
			a.project.Settings.Count)))
		return
	}

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Layer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Count", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Margin", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.layersContainer.Add(header)
	a.layersContainer.Add(widget.NewSeparator())

	for i := range a.project.Layers {
		idx := i
		l := &a.project.Layers[idx]

		countEntry := widget.NewEntry()
		countEntry.SetText(strconv.Itoa(l.Count))
		countEntry.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil && v >= 0 {
				a.project.Layers[idx].Count = v
			}
		}
		marginEntry := widget.NewEntry()
		marginEntry.SetText(strconv.FormatFloat(l.Margin, 'f', -1, 64))
		marginEntry.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil && v >= 0 {
				a.project.Layers[idx].Margin = v
			}
		}

		row := container.NewGridWithColumns(5,
			widget.NewLabel(l.Name),
			countEntry,
			marginEntry,
			widget.NewLabel(l.Color),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Remove layer", func() {
				a.project.Layers = append(a.project.Layers[:idx], a.project.Layers[idx+1:]...)
				a.refreshLayersList()
			}),
		)
		a.layersContainer.Add(row)
	}
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.project.Settings

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil && v >= 0 {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil && v >= 0 {
				*val = v
			}
		}
		return e
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	nameEntry.OnChanged = func(text string) { a.project.Name = text }

	placementSection := widget.NewCard("Placement", "Used when the project has no decor layers", container.NewGridWithColumns(2,
		widget.NewLabel("Project Name"), nameEntry,
		widget.NewLabel("Point Count"), intEntry(&s.Count),
		widget.NewLabel("Clearance Margin"), floatEntry(&s.Margin),
	))

	areaSection := widget.NewCard("Sampling Area", "Candidates are drawn from [-H, H) on both axes", container.NewGridWithColumns(2,
		widget.NewLabel("Half Extent (H)"), floatEntry(&s.HalfExtent),
		widget.NewLabel("Attempts per Point"), intEntry(&s.AttemptMultiple),
	))

	advancedBtn := widget.NewButton("Sampling and Estimate...", func() {
		a.showAdvancedSettingsDialog()
	})

	return container.NewVScroll(container.NewVBox(
		placementSection,
		areaSection,
		advancedBtn,
	))
}

// ─── Actions ───────────────────────────────────────────────

// regenerate scatters the decor layers again. The result is kept in the
// project until the next explicit regeneration.
func (a *App) regenerate() {
	result := engine.Decorate(a.project.Catalog(), a.project.Settings, a.project.Layers, nil, a.logger)
	a.project.Result = &result
	a.violations = nil
	a.refreshSite()
}

// checkClearance re-audits the stored result. With report set the outcome
// is shown even when the result is clean.
func (a *App) checkClearance(report bool) {
	if a.project.Result == nil {
		a.violations = nil
		a.refreshSite()
		if report {
			dialog.ShowInformation("Nothing to check", "Regenerate the decor first.", a.window)
		}
		return
	}
	a.violations = audit.CheckLayers(*a.project.Result, a.project.Catalog(), a.project.Layers, a.project.Settings.Margin)
	a.refreshSite()

	if !report {
		return
	}
	if len(a.violations) == 0 {
		dialog.ShowInformation("Clearance OK", "Every decor point clears the buildings and roads.", a.window)
		return
	}
	msgs := audit.FormatViolations(a.violations)
	if len(msgs) > 20 {
		msgs = append(msgs[:20], fmt.Sprintf("... and %d more", len(msgs)-20))
	}
	dialog.ShowInformation("Clearance Violations", strings.Join(msgs, "\n"), a.window)
}

func (a *App) pruneViolations() {
	a.checkClearance(false)
	if len(a.violations) == 0 {
		return
	}
	pruned := audit.Prune(*a.project.Result, a.violations)
	removed := len(a.project.Result.Points) - len(pruned.Points)
	a.project.Result = &pruned
	a.violations = nil
	a.refreshSite()
	dialog.ShowInformation("Pruned", fmt.Sprintf("Removed %d points.", removed), a.window)
}

func (a *App) showCompareDialog() {
	scenarios := engine.BuildDefaultScenarios(a.project.Settings)
	results := engine.CompareScenarios(scenarios, a.project.Catalog())

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Placed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Attempts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Fill", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Acceptance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range results {
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d / %d", r.Accepted, r.Result.Requested)))
		grid.Add(widget.NewLabel(strconv.Itoa(r.Attempts)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.FillRatio*100)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f%%", r.AcceptanceRate*100)))
	}

	d := dialog.NewCustom("Compare Scenarios", "Close", container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(700, 300))
	d.Show()
}

// ─── Project Files ─────────────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberProject(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openProjectPath(reader.URI().Path())
	}, a.window)
	d.Show()
}

func (a *App) openProjectPath(path string) {
	p, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setProject(p)
	a.checkClearance(false)
	a.rememberProject(path)
}

func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("recent projects not saved", "err", err)
	}
	a.SetupMenus()
}

// ─── Templates ─────────────────────────────────────────────

func (a *App) showSaveTemplateDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	descEntry := widget.NewMultiLineEntry()

	dialog.ShowForm("Save As Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok || strings.TrimSpace(nameEntry.Text) == "" {
				return
			}
			a.templates.Add(model.NewSiteTemplate(strings.TrimSpace(nameEntry.Text), descEntry.Text, a.project))
			if err := project.SaveDefaultTemplates(a.templates); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
			}
		},
		a.window,
	)
}

func (a *App) showTemplatePicker() {
	if len(a.templates.Templates) == 0 {
		dialog.ShowInformation("No Templates", "Use File > Save As Template to create one.", a.window)
		return
	}
	templateSelect := widget.NewSelect(a.templates.Names(), nil)
	templateSelect.SetSelectedIndex(0)

	dialog.ShowForm("New From Template", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Template", templateSelect)},
		func(ok bool) {
			if !ok {
				return
			}
			if t := a.templates.FindByName(templateSelect.Selected); t != nil {
				a.setProject(t.ToProject(t.Name))
			}
		},
		a.window,
	)
}

// ─── Export ────────────────────────────────────────────────

// exportFile asks for a destination and runs write against it.
func (a *App) exportFile(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// The exporters write by path, so release the handle first.
		writer.Close()

		err = write(path)
		switch {
		case errors.Is(err, export.ErrNoPlacements):
			dialog.ShowInformation("No decor", "Regenerate the decor first before exporting.", a.window)
		case errors.Is(err, export.ErrNoBuildings):
			dialog.ShowInformation("No buildings", "Add or import buildings first.", a.window)
		case err != nil:
			dialog.ShowError(err, a.window)
		default:
			dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importBuildings(format string) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		var result importer.ImportResult
		switch format {
		case "Excel":
			result = importer.ImportExcel(path)
		case "DXF":
			result = importer.ImportDXF(path)
		default:
			result = importer.ImportCSV(path)
		}
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		a.logger.Info("import warning", "msg", w)
	}

	if len(result.Buildings) > 0 {
		a.editSite(fmt.Sprintf("Import %d buildings", len(result.Buildings)), func() {
			a.project.Buildings = append(a.project.Buildings, result.Buildings...)
		})

		msg := fmt.Sprintf("Successfully imported %d buildings.", len(result.Buildings))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
