package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CampusGrove/internal/model"
	"github.com/piwi3910/CampusGrove/internal/project"
)

// ─── Decor Presets Dialog ──────────────────────────────────

func (a *App) showDecorPresetsDialog() {
	presetList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		presetList.RemoveAll()

		if len(a.decor.Presets) == 0 {
			presetList.Add(widget.NewLabel("No decor presets defined."))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Margin", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Count", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		presetList.Add(header)
		presetList.Add(widget.NewSeparator())

		for i := range a.decor.Presets {
			idx := i
			p := a.decor.Presets[idx]
			row := container.NewGridWithColumns(6,
				widget.NewLabel(p.Name),
				widget.NewLabel(fmt.Sprintf("%.1f", p.Margin)),
				widget.NewLabel(strconv.Itoa(p.DefaultCount)),
				widget.NewLabel(p.Color),
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit preset", func() {
					a.showDecorPresetForm(idx, refreshList)
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete preset", func() {
					a.decor.Remove(p.ID)
					a.saveDecor()
					refreshList()
				}),
			)
			presetList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		a.showDecorPresetForm(-1, refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importDecor(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportDecor()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(presetList),
	)

	d := dialog.NewCustom("Decor Presets", "Close", content, a.window)
	d.SetOnClosed(a.refreshLayersTab)
	d.Resize(fyne.NewSize(640, 420))
	d.Show()
}

// showDecorPresetForm adds a preset when idx is negative and edits preset idx otherwise.
func (a *App) showDecorPresetForm(idx int, onDone func()) {
	p := model.NewDecorPreset("New Decor", 2.0, 20, "#8BC34A")
	title, confirm := "Add Decor Preset", "Add"
	if idx >= 0 {
		p = a.decor.Presets[idx]
		title, confirm = "Edit Decor Preset", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)

	marginEntry := widget.NewEntry()
	marginEntry.SetText(strconv.FormatFloat(p.Margin, 'f', -1, 64))

	countEntry := widget.NewEntry()
	countEntry.SetText(strconv.Itoa(p.DefaultCount))

	colorEntry := widget.NewEntry()
	colorEntry.SetText(p.Color)

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Clearance Margin", marginEntry),
			widget.NewFormItem("Default Count", countEntry),
			widget.NewFormItem("Color (#RRGGBB)", colorEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			margin, errM := strconv.ParseFloat(marginEntry.Text, 64)
			count, errC := strconv.Atoi(countEntry.Text)
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" || errM != nil || errC != nil || margin < 0 || count < 0 {
				dialog.ShowError(fmt.Errorf("name is required and margin and count must be >= 0"), a.window)
				return
			}

			p.Name = name
			p.Margin = margin
			p.DefaultCount = count
			p.Color = strings.TrimSpace(colorEntry.Text)

			if idx >= 0 {
				a.decor.Presets[idx] = p
			} else {
				a.decor.Presets = append(a.decor.Presets, p)
			}
			a.saveDecor()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 320))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importDecor(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportDecorInventory(reader.URI().Path(), a.decor)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.decor = merged
		a.saveDecor()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Decor presets now contain %d entries.", len(a.decor.Presets)),
			a.window)
	}, a.window)
}

func (a *App) exportDecor() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.SaveDecorInventory(writer.URI().Path(), a.decor); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Decor presets exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("decor.json")
	d.Show()
}

// saveDecor persists the current decor presets to disk.
func (a *App) saveDecor() {
	if a.decorPath == "" {
		return
	}
	if err := project.SaveDecorInventory(a.decorPath, a.decor); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save decor presets: %w", err), a.window)
	}
}

// refreshLayersTab rebuilds the layers panel so its preset picker lists
// the current presets.
func (a *App) refreshLayersTab() {
	if a.tabs == nil {
		return
	}
	a.tabs.Items[2].Content = a.buildLayersPanel()
	a.tabs.Refresh()
}
