package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSiteTemplate(t *testing.T) {
	p := NewProject()
	p.Result = &PlacementResult{Points: []PlacementPoint{{X: 1, Z: 1}}}

	tmpl := NewSiteTemplate("Campus", "Built-in campus", p)

	assert.Equal(t, "Campus", tmpl.Name)
	assert.Equal(t, "Built-in campus", tmpl.Description)
	assert.NotEmpty(t, tmpl.ID)
	assert.NotEmpty(t, tmpl.CreatedAt)
	assert.Len(t, tmpl.Buildings, len(p.Buildings))
	assert.Len(t, tmpl.Corridors, len(p.Corridors))
	assert.Equal(t, p.Settings, tmpl.Settings)
}

func TestSiteTemplateToProjectFreshIDs(t *testing.T) {
	p := NewProject()
	p.Settings.Margin = 5
	tmpl := NewSiteTemplate("Test", "desc", p)

	proj := tmpl.ToProject("My Site")
	assert.Equal(t, "My Site", proj.Name)
	assert.Equal(t, 5.0, proj.Settings.Margin)
	assert.Nil(t, proj.Result)
	require.Len(t, proj.Buildings, len(tmpl.Buildings))

	for i := range proj.Buildings {
		assert.NotEqual(t, tmpl.Buildings[i].ID, proj.Buildings[i].ID)
		assert.Equal(t, tmpl.Buildings[i].Slug, proj.Buildings[i].Slug)
		assert.Equal(t, tmpl.Buildings[i].Position, proj.Buildings[i].Position)
		assert.Equal(t, tmpl.Buildings[i].Rotation, proj.Buildings[i].Rotation)
	}
}

func TestSiteTemplateIndependentOfProject(t *testing.T) {
	p := NewProject()
	tmpl := NewSiteTemplate("T", "", p)

	p.Buildings[0].Name = "Renamed"
	p.Corridors[0].HalfWidth = 99

	assert.NotEqual(t, "Renamed", tmpl.Buildings[0].Name)
	assert.Equal(t, 3.0, tmpl.Corridors[0].HalfWidth)
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	assert.Empty(t, store.Names())

	a := NewSiteTemplate("A", "", NewProject())
	b := NewSiteTemplate("B", "", NewProject())
	store.Add(a)
	store.Add(b)

	assert.Equal(t, []string{"A", "B"}, store.Names())
	require.NotNil(t, store.FindByID(b.ID))
	assert.Equal(t, "B", store.FindByName("B").Name)
	assert.Nil(t, store.FindByName("C"))

	assert.True(t, store.Remove(a.ID))
	assert.False(t, store.Remove(a.ID))
	assert.Equal(t, []string{"B"}, store.Names())
}
