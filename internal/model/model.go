package model

import (
	"math"

	"github.com/google/uuid"
)

// Kind classifies a campus building.
type Kind string

const (
	KindAcademic  Kind = "Academic"
	KindResidence Kind = "Residence"
	KindHostel    Kind = "Hostel"
	KindDining    Kind = "Dining"
	KindFacility  Kind = "Facility"
)

// Kinds lists every known building kind in display order.
var Kinds = []Kind{KindAcademic, KindResidence, KindHostel, KindDining, KindFacility}

// ParseKind returns the kind matching s (case-sensitive) and whether it was recognized.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return KindFacility, false
}

// Point2D is a coordinate on the ground plane. Y is implicitly ground level.
type Point2D struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Building is a single entry of the campus catalog.
type Building struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	Kind     Kind    `json:"kind"`
	Position Point2D `json:"position"`
	Width    float64 `json:"width"`  // extent along X
	Height   float64 `json:"height"` // extent along Y (visual only)
	Depth    float64 `json:"depth"`  // extent along Z
	Color    string  `json:"color"`
	Rotation float64 `json:"rotation,omitempty"` // radians around Y
	Details  string  `json:"details,omitempty"`
}

func NewBuilding(name string, kind Kind, x, z, w, h, d float64) Building {
	return Building{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Kind:     kind,
		Position: Point2D{X: x, Z: z},
		Width:    w,
		Height:   h,
		Depth:    d,
		Color:    "#B0B0B0",
	}
}

// Footprint derives the ground obstacle covered by the building.
func (b Building) Footprint() Footprint {
	return Footprint{
		Label:     b.Name,
		CX:        b.Position.X,
		CZ:        b.Position.Z,
		HalfWidth: b.Width / 2,
		HalfDepth: b.Depth / 2,
		Rotation:  b.Rotation,
	}
}

// Footprint is a rectangular obstacle on the ground plane.
// Rotation is carried for display but ignored by the placement filter.
type Footprint struct {
	Label     string  `json:"label,omitempty"`
	CX        float64 `json:"cx"`
	CZ        float64 `json:"cz"`
	HalfWidth float64 `json:"half_width"`
	HalfDepth float64 `json:"half_depth"`
	Rotation  float64 `json:"rotation,omitempty"`
}

// Bounds returns the min and max corners of the unrotated footprint.
func (f Footprint) Bounds() (min, max Point2D) {
	return Point2D{X: f.CX - f.HalfWidth, Z: f.CZ - f.HalfDepth},
		Point2D{X: f.CX + f.HalfWidth, Z: f.CZ + f.HalfDepth}
}

// Area returns the ground area of the footprint.
func (f Footprint) Area() float64 {
	return 4 * f.HalfWidth * f.HalfDepth
}

// Axis is the direction a corridor runs along.
type Axis int

const (
	AxisX Axis = iota // runs along X; the band is a range of Z
	AxisZ             // runs along Z; the band is a range of X
)

func (a Axis) String() string {
	if a == AxisZ {
		return "Z"
	}
	return "X"
}

// Corridor is an axis-aligned exclusion band representing a road.
type Corridor struct {
	Label      string  `json:"label,omitempty"`
	Axis       Axis    `json:"axis"`
	Offset     float64 `json:"offset"`      // band center on the band axis
	HalfWidth  float64 `json:"half_width"`  // half-width of the band
	Center     float64 `json:"center"`      // extent center on the running axis
	HalfExtent float64 `json:"half_extent"` // half-length on the running axis
}

// Bounds returns the min and max corners of the corridor rectangle.
func (c Corridor) Bounds() (min, max Point2D) {
	if c.Axis == AxisZ {
		return Point2D{X: c.Offset - c.HalfWidth, Z: c.Center - c.HalfExtent},
			Point2D{X: c.Offset + c.HalfWidth, Z: c.Center + c.HalfExtent}
	}
	return Point2D{X: c.Center - c.HalfExtent, Z: c.Offset - c.HalfWidth},
		Point2D{X: c.Center + c.HalfExtent, Z: c.Offset + c.HalfWidth}
}

// Catalog is the immutable obstacle set handed to the placement engine.
// The zero value is an empty catalog.
type Catalog struct {
	footprints []Footprint
	corridors  []Corridor
}

// NewCatalog copies the given obstacles into a new catalog.
func NewCatalog(footprints []Footprint, corridors []Corridor) Catalog {
	c := Catalog{
		footprints: make([]Footprint, len(footprints)),
		corridors:  make([]Corridor, len(corridors)),
	}
	copy(c.footprints, footprints)
	copy(c.corridors, corridors)
	return c
}

// CatalogFromBuildings builds a catalog from building footprints and corridors.
func CatalogFromBuildings(buildings []Building, corridors []Corridor) Catalog {
	fps := make([]Footprint, len(buildings))
	for i, b := range buildings {
		fps[i] = b.Footprint()
	}
	return NewCatalog(fps, corridors)
}

// Footprints returns a copy of the catalog footprints in order.
func (c Catalog) Footprints() []Footprint {
	out := make([]Footprint, len(c.footprints))
	copy(out, c.footprints)
	return out
}

// Corridors returns a copy of the catalog corridors in order.
func (c Catalog) Corridors() []Corridor {
	out := make([]Corridor, len(c.corridors))
	copy(out, c.corridors)
	return out
}

// FootprintAt returns the i-th footprint without copying the whole list.
func (c Catalog) FootprintAt(i int) Footprint { return c.footprints[i] }

// CorridorAt returns the i-th corridor without copying the whole list.
func (c Catalog) CorridorAt(i int) Corridor { return c.corridors[i] }

func (c Catalog) NumFootprints() int { return len(c.footprints) }
func (c Catalog) NumCorridors() int  { return len(c.corridors) }

// PlacementPoint is a single accepted location for a decorative object.
type PlacementPoint struct {
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Kind string  `json:"kind,omitempty"` // decor layer name, empty for untagged points
}

// Point returns the ground coordinate of the placement.
func (p PlacementPoint) Point() Point2D {
	return Point2D{X: p.X, Z: p.Z}
}

// DefaultAttemptMultiple bounds the number of samples per requested point.
const DefaultAttemptMultiple = 20

// DefaultAttemptBudget returns the sample budget used for n requested points.
func DefaultAttemptBudget(n int) int {
	if n <= 0 {
		return 0
	}
	return n * DefaultAttemptMultiple
}

// PlacementRequest describes one generation call.
type PlacementRequest struct {
	Count         int     // target number of points
	HalfExtent    float64 // sampling square is [-HalfExtent, HalfExtent] on both axes
	Margin        float64 // clearance kept from every footprint edge
	AttemptBudget int     // maximum number of candidate samples
}

// PlacementSettings holds the persistent generation configuration.
type PlacementSettings struct {
	Count           int     `json:"count"`
	HalfExtent      float64 `json:"half_extent"`
	Margin          float64 `json:"margin"`
	AttemptMultiple int     `json:"attempt_multiple"`
	AttemptBudget   int     `json:"attempt_budget"` // explicit override, 0 = Count * AttemptMultiple
	Seed            uint64  `json:"seed"`           // 0 = random
}

func DefaultSettings() PlacementSettings {
	return PlacementSettings{
		Count:           50,
		HalfExtent:      50,
		Margin:          3,
		AttemptMultiple: DefaultAttemptMultiple,
		AttemptBudget:   0,
		Seed:            0,
	}
}

// Budget returns the effective attempt budget for these settings.
func (s PlacementSettings) Budget() int {
	if s.AttemptBudget > 0 {
		return s.AttemptBudget
	}
	if s.Count <= 0 {
		return 0
	}
	mult := s.AttemptMultiple
	if mult <= 0 {
		mult = DefaultAttemptMultiple
	}
	return s.Count * mult
}

// Request converts the settings into a single generation request.
func (s PlacementSettings) Request() PlacementRequest {
	return PlacementRequest{
		Count:         s.Count,
		HalfExtent:    s.HalfExtent,
		Margin:        s.Margin,
		AttemptBudget: s.Budget(),
	}
}

// PlacementResult holds the accepted points of one or more generation calls
// together with the sampling statistics.
type PlacementResult struct {
	Points              []PlacementPoint `json:"points"`
	Requested           int              `json:"requested"`
	Attempts            int              `json:"attempts"`
	RejectedByFootprint int              `json:"rejected_by_footprint"`
	RejectedByCorridor  int              `json:"rejected_by_corridor"`
	Seed                uint64           `json:"seed,omitempty"`
}

// Filled reports whether every requested point was placed.
func (r PlacementResult) Filled() bool {
	return len(r.Points) >= r.Requested
}

// FillRatio returns the share of requested points that were placed.
func (r PlacementResult) FillRatio() float64 {
	if r.Requested <= 0 {
		return 1
	}
	return float64(len(r.Points)) / float64(r.Requested)
}

// AcceptanceRate returns accepted samples over total samples.
func (r PlacementResult) AcceptanceRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(len(r.Points)) / float64(r.Attempts)
}

// Merge appends the points and statistics of other into r.
func (r *PlacementResult) Merge(other PlacementResult) {
	r.Points = append(r.Points, other.Points...)
	r.Requested += other.Requested
	r.Attempts += other.Attempts
	r.RejectedByFootprint += other.RejectedByFootprint
	r.RejectedByCorridor += other.RejectedByCorridor
}

// CountByKind returns the number of points per decor kind.
func (r PlacementResult) CountByKind() map[string]int {
	counts := make(map[string]int)
	for _, p := range r.Points {
		counts[p.Kind]++
	}
	return counts
}

// DecorLayer is one pass of decorative placement inside a project.
type DecorLayer struct {
	Name   string  `json:"name"`
	Margin float64 `json:"margin"`
	Count  int     `json:"count"`
	Color  string  `json:"color,omitempty"`
}

// Project ties everything together for save/load.
type Project struct {
	Name      string            `json:"name"`
	Buildings []Building        `json:"buildings"`
	Corridors []Corridor        `json:"corridors"`
	Settings  PlacementSettings `json:"settings"`
	Layers    []DecorLayer      `json:"layers,omitempty"`
	Result    *PlacementResult  `json:"result,omitempty"`
}

// NewProject returns a project seeded with the built-in campus.
func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Buildings: CampusBuildings(),
		Corridors: CampusCorridors(),
		Settings:  DefaultSettings(),
		Layers:    []DecorLayer{DefaultDecorInventory().Presets[0].Layer()},
	}
}

// Catalog builds the immutable obstacle catalog of the project.
func (p Project) Catalog() Catalog {
	return CatalogFromBuildings(p.Buildings, p.Corridors)
}

// ExtentBounds returns the smallest square half-extent covering every building and corridor.
func (p Project) ExtentBounds() float64 {
	var h float64
	for _, b := range p.Buildings {
		fmin, fmax := b.Footprint().Bounds()
		h = math.Max(h, math.Max(math.Max(math.Abs(fmin.X), math.Abs(fmax.X)), math.Max(math.Abs(fmin.Z), math.Abs(fmax.Z))))
	}
	for _, c := range p.Corridors {
		cmin, cmax := c.Bounds()
		h = math.Max(h, math.Max(math.Max(math.Abs(cmin.X), math.Abs(cmax.X)), math.Max(math.Abs(cmin.Z), math.Abs(cmax.Z))))
	}
	return h
}
