package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// DefaultPath is used when neither a flag nor CAMPUSGROVE_CONFIG names a file.
const DefaultPath = "config/campusgen.yaml"

// EnvPath names the environment variable overriding the config path.
const EnvPath = "CAMPUSGROVE_CONFIG"

// Generator holds all configuration for a headless generation run.
type Generator struct {
	// Site sources. The built-in campus is used when both are empty.
	Project      string `yaml:"project"`
	BuildingsCSV string `yaml:"buildings_csv"`

	Settings Settings `yaml:"settings"`
	Layers   []Layer  `yaml:"layers"`
	Outputs  Outputs  `yaml:"outputs"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Settings mirrors model.PlacementSettings with YAML names.
type Settings struct {
	Count           int     `yaml:"count"`
	HalfExtent      float64 `yaml:"half_extent"`
	Margin          float64 `yaml:"margin"`
	AttemptMultiple int     `yaml:"attempt_multiple"`
	AttemptBudget   int     `yaml:"attempt_budget"`
	Seed            uint64  `yaml:"seed"` // 0 = random
}

// Layer is one decor pass. An empty list means a single untagged pass
// driven by Settings.
type Layer struct {
	Name   string  `yaml:"name"`
	Margin float64 `yaml:"margin"`
	Count  int     `yaml:"count"`
	Color  string  `yaml:"color"`
}

// Outputs lists the files written after generation. Empty entries are skipped
// and relative paths are resolved against Dir.
type Outputs struct {
	Dir    string `yaml:"dir"`
	JSON   string `yaml:"json"`
	PDF    string `yaml:"pdf"`
	PNG    string `yaml:"png"`
	XLSX   string `yaml:"xlsx"`
	Labels string `yaml:"labels"`
}

// Default returns Generator config with sensible defaults.
func Default() Generator {
	s := model.DefaultSettings()
	tree := model.DefaultDecorInventory().Presets[0]
	return Generator{
		Settings: Settings{
			Count:           s.Count,
			HalfExtent:      s.HalfExtent,
			Margin:          s.Margin,
			AttemptMultiple: s.AttemptMultiple,
			AttemptBudget:   s.AttemptBudget,
			Seed:            s.Seed,
		},
		Layers: []Layer{{Name: tree.Name, Margin: tree.Margin, Count: tree.DefaultCount, Color: tree.Color}},
		Outputs: Outputs{
			Dir:  "out",
			JSON: "campus.campus",
			PDF:  "site-plan.pdf",
			PNG:  "preview.png",
		},
		LogLevel: "info",
	}
}

// Load loads generator config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Generator, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// PathFromEnv returns the config path, preferring CAMPUSGROVE_CONFIG over fallback.
func PathFromEnv(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}

// Validate rejects negative or non-finite counts, extents, margins and
// budgets, duplicate layer names, and unknown log levels.
func (g Generator) Validate() error {
	var errs []error
	s := g.Settings
	if s.Count < 0 {
		errs = append(errs, fmt.Errorf("settings.count must not be negative, got %d", s.Count))
	}
	if s.HalfExtent < 0 || !finite(s.HalfExtent) {
		errs = append(errs, fmt.Errorf("settings.half_extent must be a finite non-negative number, got %g", s.HalfExtent))
	}
	if s.Margin < 0 || !finite(s.Margin) {
		errs = append(errs, fmt.Errorf("settings.margin must be a finite non-negative number, got %g", s.Margin))
	}
	if s.AttemptMultiple < 0 || s.AttemptBudget < 0 {
		errs = append(errs, errors.New("settings.attempt_multiple and settings.attempt_budget must not be negative"))
	}
	seen := make(map[string]int, len(g.Layers))
	for i, l := range g.Layers {
		if l.Count < 0 {
			errs = append(errs, fmt.Errorf("layers[%d] (%s): count must not be negative, got %d", i, l.Name, l.Count))
		}
		if l.Margin < 0 || !finite(l.Margin) {
			errs = append(errs, fmt.Errorf("layers[%d] (%s): margin must be a finite non-negative number, got %g", i, l.Name, l.Margin))
		}
		// Points are tagged with the layer name, so names must tell layers apart.
		if first, ok := seen[l.Name]; ok {
			errs = append(errs, fmt.Errorf("layers[%d] (%s): duplicate layer name, first used by layers[%d]", i, l.Name, first))
		} else {
			seen[l.Name] = i
		}
	}
	if _, err := g.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Level parses LogLevel. An empty level means info.
func (g Generator) Level() (slog.Level, error) {
	var lvl slog.Level
	if g.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// PlacementSettings converts the YAML settings into engine settings.
func (g Generator) PlacementSettings() model.PlacementSettings {
	return model.PlacementSettings{
		Count:           g.Settings.Count,
		HalfExtent:      g.Settings.HalfExtent,
		Margin:          g.Settings.Margin,
		AttemptMultiple: g.Settings.AttemptMultiple,
		AttemptBudget:   g.Settings.AttemptBudget,
		Seed:            g.Settings.Seed,
	}
}

// DecorLayers converts the configured layers into project decor layers.
func (g Generator) DecorLayers() []model.DecorLayer {
	if len(g.Layers) == 0 {
		return nil
	}
	out := make([]model.DecorLayer, len(g.Layers))
	for i, l := range g.Layers {
		out[i] = model.DecorLayer{Name: l.Name, Margin: l.Margin, Count: l.Count, Color: l.Color}
	}
	return out
}

// Path resolves an output name against Dir. It returns "" for an empty name.
func (o Outputs) Path(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || o.Dir == "" {
		return name
	}
	return filepath.Join(o.Dir, name)
}
