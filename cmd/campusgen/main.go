// campusgen decorates a campus site plan headlessly.
//
// It loads a YAML generator config, builds the site from the built-in campus,
// a saved project or imported buildings, scatters the configured decor layers
// and writes the configured outputs.
//
//	campusgen -config config/campusgen.yaml -seed 42 -out build
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/piwi3910/CampusGrove/internal/audit"
	"github.com/piwi3910/CampusGrove/internal/config"
	"github.com/piwi3910/CampusGrove/internal/engine"
	"github.com/piwi3910/CampusGrove/internal/export"
	"github.com/piwi3910/CampusGrove/internal/importer"
	"github.com/piwi3910/CampusGrove/internal/model"
	"github.com/piwi3910/CampusGrove/internal/project"
)

// estimateResolution is the grid size used to predict the acceptance rate.
const estimateResolution = 200

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	seed       uint64
	count      int
	outDir     string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("campusgen", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", config.PathFromEnv(config.DefaultPath), "generator config file (YAML)")
	fs.Uint64Var(&opts.seed, "seed", 0, "placement seed, 0 keeps the configured seed")
	fs.IntVar(&opts.count, "count", -1, "override the point count of every layer")
	fs.StringVar(&opts.outDir, "out", "", "override the output directory")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, logOut io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("campusgen starting", "config", opts.configPath)

	p, err := buildProject(cfg, logger)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	decorate(&p, logger)

	if err := ctx.Err(); err != nil {
		return err
	}
	return writeOutputs(p, cfg.Outputs, logger)
}

// applyOverrides folds command-line flags into the loaded config.
func applyOverrides(cfg *config.Generator, opts options) {
	if opts.seed != 0 {
		cfg.Settings.Seed = opts.seed
	}
	if opts.count >= 0 {
		cfg.Settings.Count = opts.count
		for i := range cfg.Layers {
			cfg.Layers[i].Count = opts.count
		}
	}
	if opts.outDir != "" {
		cfg.Outputs.Dir = opts.outDir
	}
}

// buildProject assembles the site: a saved project or the built-in campus,
// plus any imported buildings.
func buildProject(cfg config.Generator, logger *slog.Logger) (model.Project, error) {
	p := model.NewProject()
	if cfg.Project != "" {
		loaded, err := project.Load(cfg.Project)
		if err != nil {
			return model.Project{}, fmt.Errorf("loading project: %w", err)
		}
		p = loaded
		logger.Info("project loaded", "path", cfg.Project, "buildings", len(p.Buildings), "corridors", len(p.Corridors))
	}

	if cfg.BuildingsCSV != "" {
		res := importer.ImportFile(cfg.BuildingsCSV)
		for _, w := range res.Warnings {
			logger.Warn("import", "path", cfg.BuildingsCSV, "msg", w)
		}
		for _, e := range res.Errors {
			logger.Warn("import row skipped", "path", cfg.BuildingsCSV, "msg", e)
		}
		if len(res.Buildings) == 0 && len(res.Errors) > 0 {
			return model.Project{}, fmt.Errorf("importing buildings from %s: %s", cfg.BuildingsCSV, res.Errors[0])
		}
		p.Buildings = append(p.Buildings, res.Buildings...)
		logger.Info("buildings imported", "path", cfg.BuildingsCSV, "count", len(res.Buildings))
	}

	p.Settings = cfg.PlacementSettings()
	p.Layers = cfg.DecorLayers()
	p.Result = nil
	return p, nil
}

// decorate runs every layer against the project's catalog and stores the
// result in the project. Points that fail the audit are pruned.
func decorate(p *model.Project, logger *slog.Logger) {
	catalog := p.Catalog()

	for _, layer := range layerBudgets(*p) {
		est := engine.EstimateAcceptance(catalog, p.Settings.HalfExtent, layer.Margin, estimateResolution)
		rec := est.RecommendedBudget(layer.Count, engine.DefaultSafetyFactor)
		logger.Debug("acceptance estimate",
			"layer", layer.Name,
			"open_fraction", est.OpenFraction,
			"recommended_budget", rec,
			"budget", layer.budget)
		if rec > layer.budget {
			logger.Warn("attempt budget likely too small",
				"layer", layer.Name,
				"budget", layer.budget,
				"recommended", rec)
		}
	}

	result := engine.Decorate(catalog, p.Settings, p.Layers, nil, logger)

	violations := audit.CheckLayers(result, catalog, p.Layers, p.Settings.Margin)
	for _, msg := range audit.FormatViolations(violations) {
		logger.Warn("clearance violation", "msg", msg)
	}
	if len(violations) > 0 {
		result = audit.Prune(result, violations)
	}

	p.Result = &result
	logger.Info("placement finished",
		"placed", len(result.Points),
		"requested", result.Requested,
		"attempts", result.Attempts,
		"seed", result.Seed)
}

type layerBudget struct {
	model.DecorLayer
	budget int
}

// layerBudgets lists the passes Decorate will run with their attempt budgets.
func layerBudgets(p model.Project) []layerBudget {
	if len(p.Layers) == 0 {
		return []layerBudget{{
			DecorLayer: model.DecorLayer{Name: "decor", Margin: p.Settings.Margin, Count: p.Settings.Count},
			budget:     p.Settings.Budget(),
		}}
	}
	out := make([]layerBudget, len(p.Layers))
	for i, l := range p.Layers {
		s := p.Settings
		s.Count = l.Count
		out[i] = layerBudget{DecorLayer: l, budget: s.Budget()}
	}
	return out
}

// writeOutputs writes every configured output file.
func writeOutputs(p model.Project, out config.Outputs, logger *slog.Logger) error {
	if path := out.Path(out.JSON); path != "" {
		if err := project.Save(path, p); err != nil {
			return err
		}
		logger.Info("project written", "path", path)
	}
	if path := out.Path(out.PDF); path != "" {
		if err := ensureDir(path); err != nil {
			return err
		}
		if err := export.ExportPDF(path, p); err != nil {
			return fmt.Errorf("exporting site plan: %w", err)
		}
		logger.Info("site plan written", "path", path)
	}
	if path := out.Path(out.PNG); path != "" {
		if err := ensureDir(path); err != nil {
			return err
		}
		err := export.ExportPlot(path, p)
		switch {
		case errors.Is(err, export.ErrNoPlacements):
			logger.Warn("preview skipped", "path", path, "reason", err)
		case err != nil:
			return fmt.Errorf("exporting preview: %w", err)
		default:
			logger.Info("preview written", "path", path)
		}
	}
	if path := out.Path(out.XLSX); path != "" {
		if err := ensureDir(path); err != nil {
			return err
		}
		err := export.ExportExcel(path, *p.Result)
		switch {
		case errors.Is(err, export.ErrNoPlacements):
			logger.Warn("placement table skipped", "path", path, "reason", err)
		case err != nil:
			return fmt.Errorf("exporting placement table: %w", err)
		default:
			logger.Info("placement table written", "path", path)
		}
	}
	if path := out.Path(out.Labels); path != "" {
		if err := ensureDir(path); err != nil {
			return err
		}
		err := export.ExportLabels(path, p.Buildings)
		switch {
		case errors.Is(err, export.ErrNoBuildings):
			logger.Warn("labels skipped", "path", path, "reason", err)
		case err != nil:
			return fmt.Errorf("exporting labels: %w", err)
		default:
			logger.Info("labels written", "path", path)
		}
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
