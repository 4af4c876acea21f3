package model

import (
	"time"

	"github.com/google/uuid"
)

// SiteTemplate represents a reusable site layout that captures buildings,
// corridors, and settings but not placement results.
type SiteTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Buildings   []Building        `json:"buildings"`
	Corridors   []Corridor        `json:"corridors"`
	Settings    PlacementSettings `json:"settings"`
	Layers      []DecorLayer      `json:"layers,omitempty"`
}

// NewSiteTemplate creates a new template from the given project data.
// It copies buildings, corridors, layers, and settings and excludes results.
func NewSiteTemplate(name, description string, p Project) SiteTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return SiteTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Buildings:   CopyBuildings(p.Buildings),
		Corridors:   CopyCorridors(p.Corridors),
		Settings:    p.Settings,
		Layers:      copyLayers(p.Layers),
	}
}

// ToProject creates a new Project from this template.
// Buildings get fresh IDs so they are independent of the template.
func (t SiteTemplate) ToProject(projectName string) Project {
	buildings := make([]Building, len(t.Buildings))
	for i, b := range t.Buildings {
		nb := NewBuilding(b.Name, b.Kind, b.Position.X, b.Position.Z, b.Width, b.Height, b.Depth)
		nb.Slug = b.Slug
		nb.Color = b.Color
		nb.Rotation = b.Rotation
		nb.Details = b.Details
		buildings[i] = nb
	}

	return Project{
		Name:      projectName,
		Buildings: buildings,
		Corridors: CopyCorridors(t.Corridors),
		Settings:  t.Settings,
		Layers:    copyLayers(t.Layers),
	}
}

// TemplateStore holds a collection of site templates.
type TemplateStore struct {
	Templates []SiteTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []SiteTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t SiteTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *SiteTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *SiteTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// CopyBuildings returns a copy of a buildings slice, never nil.
func CopyBuildings(buildings []Building) []Building {
	cp := make([]Building, len(buildings))
	copy(cp, buildings)
	return cp
}

// CopyCorridors returns a copy of a corridors slice, never nil.
func CopyCorridors(corridors []Corridor) []Corridor {
	cp := make([]Corridor, len(corridors))
	copy(cp, corridors)
	return cp
}

func copyLayers(layers []DecorLayer) []DecorLayer {
	if layers == nil {
		return nil
	}
	cp := make([]DecorLayer, len(layers))
	copy(cp, layers)
	return cp
}
