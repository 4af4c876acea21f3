package engine

import (
	"iter"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// BuildPlacements samples candidates, filters them and collects accepted points
// in acceptance order. It stops once n points are accepted or after
// attemptBudget samples, whichever comes first. Degenerate inputs (n, halfExtent
// or attemptBudget not positive) return an empty slice without sampling.
// Under-filling is a normal outcome.
func BuildPlacements(n int, halfExtent float64, footprints []model.Footprint, corridors []model.Corridor,
	margin float64, attemptBudget int, sampler Sampler) []model.PlacementPoint {
	run := newBuildRun(n, halfExtent, footprints, corridors, margin, attemptBudget, "")
	return run.fill(sampler).Points
}

// buildRun is one generation call with its statistics.
type buildRun struct {
	n          int
	halfExtent float64
	footprints []model.Footprint
	corridors  []model.Corridor
	margin     float64
	budget     int
	kind       string
}

func newBuildRun(n int, halfExtent float64, footprints []model.Footprint, corridors []model.Corridor,
	margin float64, budget int, kind string) buildRun {
	return buildRun{
		n:          n,
		halfExtent: halfExtent,
		footprints: footprints,
		corridors:  corridors,
		margin:     margin,
		budget:     budget,
		kind:       kind,
	}
}

// degenerate also covers NaN and infinite extents or margins, against
// which no comparison can reject a candidate.
func (r buildRun) degenerate() bool {
	return r.n <= 0 || !(r.halfExtent > 0) || r.budget <= 0 ||
		math.IsInf(r.halfExtent, 0) || math.IsNaN(r.margin) || math.IsInf(r.margin, 0)
}

// fill runs the loop to completion and returns the points and counters.
func (r buildRun) fill(sampler Sampler) model.PlacementResult {
	res := model.PlacementResult{
		Points:    []model.PlacementPoint{},
		Requested: max(r.n, 0),
	}
	if r.degenerate() {
		return res
	}
	res.Points = make([]model.PlacementPoint, 0, r.n)
	for res.Attempts < r.budget && len(res.Points) < r.n {
		p := sampler.Sample(r.halfExtent)
		res.Attempts++
		v := classify(p, r.footprints, r.corridors, r.margin)
		switch v.Reason {
		case RejectedFootprint:
			res.RejectedByFootprint++
		case RejectedCorridor:
			res.RejectedByCorridor++
		default:
			res.Points = append(res.Points, model.PlacementPoint{X: p.X, Z: p.Z, Kind: r.kind})
		}
	}
	return res
}

// Placer generates decorative placements for a catalog using its settings.
type Placer struct {
	Settings model.PlacementSettings
	Sampler  Sampler
	Logger   *slog.Logger

	seed uint64
}

// NewPlacer creates a placer with a uniform sampler. A zero seed in settings
// picks a random one, which is reported in every result so a run can be
// reproduced. A nil logger uses slog.Default().
func NewPlacer(settings model.PlacementSettings, logger *slog.Logger) *Placer {
	seed := resolveSeed(settings.Seed)
	return &Placer{
		Settings: settings,
		Sampler:  NewSeededSampler(seed),
		Logger:   logger,
		seed:     seed,
	}
}

func (p *Placer) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// resolveSeed maps the zero "random" seed to a freshly drawn one.
func resolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

func (p *Placer) sampler() Sampler {
	if p.Sampler == nil {
		p.seed = resolveSeed(p.Settings.Seed)
		p.Sampler = NewSeededSampler(p.seed)
	}
	return p.Sampler
}

// Seed returns the seed driving the default sampler. A placer built without
// NewPlacer and without a sampler gets its seed minted here.
func (p *Placer) Seed() uint64 {
	if p.Sampler == nil {
		p.sampler()
	}
	return p.seed
}

func (p *Placer) run(catalog model.Catalog, kind string) buildRun {
	req := p.Settings.Request()
	return newBuildRun(req.Count, req.HalfExtent, catalog.Footprints(), catalog.Corridors(),
		req.Margin, req.AttemptBudget, kind)
}

// Place fills the catalog's ground square and records sampling statistics.
func (p *Placer) Place(catalog model.Catalog) model.PlacementResult {
	return p.place(catalog, "")
}

func (p *Placer) place(catalog model.Catalog, kind string) model.PlacementResult {
	log := p.logger()
	run := p.run(catalog, kind)
	log.Debug("placement started",
		"kind", kind,
		"count", run.n,
		"half_extent", run.halfExtent,
		"margin", run.margin,
		"budget", run.budget)

	res := run.fill(p.sampler())
	res.Seed = p.seed

	log.Debug("placement finished",
		"kind", kind,
		"accepted", len(res.Points),
		"attempts", res.Attempts,
		"rejected_footprint", res.RejectedByFootprint,
		"rejected_corridor", res.RejectedByCorridor)
	if !res.Filled() {
		log.Info("placement under-filled",
			"kind", kind,
			"requested", res.Requested,
			"accepted", len(res.Points),
			"budget", run.budget)
	}
	return res
}

// Points streams accepted points lazily with the same stop conditions as
// Place. The sequence is finite and can be ranged over only once; later
// iterations yield nothing. Stopping early consumes no further samples.
func (p *Placer) Points(catalog model.Catalog) iter.Seq[model.PlacementPoint] {
	run := p.run(catalog, "")
	sampler := p.sampler()
	used := false
	return func(yield func(model.PlacementPoint) bool) {
		if used || run.degenerate() {
			return
		}
		used = true
		accepted := 0
		for attempts := 0; attempts < run.budget && accepted < run.n; attempts++ {
			pt := sampler.Sample(run.halfExtent)
			if !classify(pt, run.footprints, run.corridors, run.margin).Accepted() {
				continue
			}
			accepted++
			if !yield(model.PlacementPoint{X: pt.X, Z: pt.Z}) {
				return
			}
		}
	}
}

// Decorate fills each decor layer in order against the same catalog. Every
// layer uses its own count and margin and tags its points with the layer
// name. Layers do not avoid each other. With no layers a single untagged
// pass uses settings as given. A nil sampler uses a seeded uniform sampler.
func Decorate(catalog model.Catalog, settings model.PlacementSettings, layers []model.DecorLayer,
	sampler Sampler, logger *slog.Logger) model.PlacementResult {
	placer := NewPlacer(settings, logger)
	if sampler != nil {
		placer.Sampler = sampler
		placer.seed = settings.Seed
	}
	if len(layers) == 0 {
		return placer.Place(catalog)
	}

	combined := model.PlacementResult{Points: []model.PlacementPoint{}, Seed: placer.seed}
	for _, layer := range layers {
		placer.Settings = settings
		placer.Settings.Count = layer.Count
		placer.Settings.Margin = layer.Margin
		combined.Merge(placer.place(catalog, layer.Name))
	}
	placer.logger().Debug("decoration finished",
		"layers", len(layers),
		"accepted", len(combined.Points),
		"requested", combined.Requested)
	return combined
}
