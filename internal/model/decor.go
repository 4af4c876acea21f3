package model

import (
	"fmt"

	"github.com/google/uuid"
)

// DecorPreset is a reusable decorative object kind with its own clearance.
type DecorPreset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Margin       float64 `json:"margin"`
	DefaultCount int     `json:"default_count"`
	Color        string  `json:"color"`
}

// NewDecorPreset creates a new DecorPreset with a generated ID.
func NewDecorPreset(name string, margin float64, count int, color string) DecorPreset {
	return DecorPreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Margin:       margin,
		DefaultCount: count,
		Color:        color,
	}
}

// Layer converts the preset into a project decor layer with its default count.
func (dp DecorPreset) Layer() DecorLayer {
	return DecorLayer{
		Name:   dp.Name,
		Margin: dp.Margin,
		Count:  dp.DefaultCount,
		Color:  dp.Color,
	}
}

// UniqueLayerName returns name, or name with the first free " N" suffix
// when a layer in layers already uses it. Placed points are tagged with
// the layer name, so names must tell layers apart.
func UniqueLayerName(layers []DecorLayer, name string) string {
	taken := make(map[string]bool, len(layers))
	for _, l := range layers {
		taken[l.Name] = true
	}
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// DecorInventory holds the user's saved decor presets.
type DecorInventory struct {
	Presets []DecorPreset `json:"presets"`
}

// DefaultDecorInventory returns an inventory populated with the built-in presets.
// Tree must stay first: new projects start with a single tree layer.
func DefaultDecorInventory() DecorInventory {
	return DecorInventory{
		Presets: []DecorPreset{
			NewDecorPreset("Tree", 3.0, 50, "#2E7D32"),
			NewDecorPreset("Shrub", 1.5, 30, "#66BB6A"),
			NewDecorPreset("Lamp Post", 1.0, 12, "#FFC107"),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *DecorInventory) FindByID(id string) *DecorPreset {
	for i := range inv.Presets {
		if inv.Presets[i].ID == id {
			return &inv.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *DecorInventory) FindByName(name string) *DecorPreset {
	for i := range inv.Presets {
		if inv.Presets[i].Name == name {
			return &inv.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names for UI dropdowns.
func (inv *DecorInventory) Names() []string {
	names := make([]string, len(inv.Presets))
	for i, p := range inv.Presets {
		names[i] = p.Name
	}
	return names
}

// Remove removes a preset by ID. Returns true if found and removed.
func (inv *DecorInventory) Remove(id string) bool {
	for i, p := range inv.Presets {
		if p.ID == id {
			inv.Presets = append(inv.Presets[:i], inv.Presets[i+1:]...)
			return true
		}
	}
	return false
}
