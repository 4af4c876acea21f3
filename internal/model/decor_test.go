package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDecorInventory(t *testing.T) {
	inv := DefaultDecorInventory()
	require.Len(t, inv.Presets, 3)
	assert.Equal(t, []string{"Tree", "Shrub", "Lamp Post"}, inv.Names())

	tree := inv.FindByName("Tree")
	require.NotNil(t, tree)
	assert.Equal(t, 3.0, tree.Margin)
	assert.Equal(t, 50, tree.DefaultCount)
}

func TestDecorPresetLayer(t *testing.T) {
	p := NewDecorPreset("Bench", 0.5, 8, "#795548")
	assert.Len(t, p.ID, 8)

	layer := p.Layer()
	assert.Equal(t, DecorLayer{Name: "Bench", Margin: 0.5, Count: 8, Color: "#795548"}, layer)
}

func TestUniqueLayerName(t *testing.T) {
	layers := []DecorLayer{{Name: "Tree"}, {Name: "Shrub"}, {Name: "Tree 2"}}

	assert.Equal(t, "Lamp Post", UniqueLayerName(layers, "Lamp Post"))
	assert.Equal(t, "Shrub 2", UniqueLayerName(layers, "Shrub"))
	assert.Equal(t, "Tree 3", UniqueLayerName(layers, "Tree"))
	assert.Equal(t, "Tree", UniqueLayerName(nil, "Tree"))
}

func TestDecorInventoryFindAndRemove(t *testing.T) {
	inv := DefaultDecorInventory()
	shrub := inv.FindByName("Shrub")
	require.NotNil(t, shrub)
	id := shrub.ID

	assert.NotNil(t, inv.FindByID(id))
	assert.True(t, inv.Remove(id))
	assert.Nil(t, inv.FindByID(id))
	assert.False(t, inv.Remove(id))
	assert.Len(t, inv.Presets, 2)
	assert.Nil(t, inv.FindByName("Gazebo"))
}
