// CampusGrove: campus decor placement viewer
//
// A cross-platform desktop application that scatters trees, shrubs and
// lamp posts across a campus site plan while keeping clear of building
// footprints and road corridors.
//
// Build:
//   go build -o campusgrove ./cmd/campusgrove
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o campusgrove.exe ./cmd/campusgrove
//   GOOS=darwin  GOARCH=amd64 go build -o campusgrove-darwin ./cmd/campusgrove
//
// For headless batch generation use ./cmd/campusgen.

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/CampusGrove/internal/ui"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	application := app.NewWithID("com.piwi3910.campusgrove")
	window := application.NewWindow("CampusGrove - Campus Decor Placement")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
