package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestThemeForName(t *testing.T) {
	dark := ThemeForName("dark")
	assert.True(t, dark.fixed)
	assert.Equal(t, theme.VariantDark, dark.variant)

	light := ThemeForName("light")
	assert.True(t, light.fixed)
	assert.Equal(t, theme.VariantLight, light.variant)

	for _, name := range []string{"system", "", "purple"} {
		assert.False(t, ThemeForName(name).fixed, "theme %q should follow the system", name)
	}
}

func TestCampusTheme_PinnedVariantWins(t *testing.T) {
	test.NewTempApp(t)
	th := ThemeForName("dark")
	base := theme.DefaultTheme()

	got := th.Color(theme.ColorNameBackground, theme.VariantLight)
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantDark), got)
}

func TestCampusTheme_CompactSizes(t *testing.T) {
	th := NewCampusTheme()
	assert.Equal(t, float32(12), th.Size(theme.SizeNameText))
	assert.Equal(t, float32(3), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}
