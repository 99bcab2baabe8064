package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestHighContrastPalette(t *testing.T) {
	hc := NewHighContrastTheme()

	background := hc.Color(theme.ColorNameBackground, theme.VariantDark)
	foreground := hc.Color(theme.ColorNameForeground, theme.VariantDark)

	assert.Equal(t, hcBackground, background)
	assert.Equal(t, hcForeground, foreground)
	assert.NotEqual(t, background, foreground)
}

func TestHighContrastDelegatesFontsAndSizes(t *testing.T) {
	hc := NewHighContrastTheme()
	base := theme.DefaultTheme()

	assert.Equal(t, base.Size(theme.SizeNameText), hc.Size(theme.SizeNameText))
	assert.Equal(t, base.Font(fyne.TextStyle{Bold: true}), hc.Font(fyne.TextStyle{Bold: true}))
	assert.Equal(t, base.Icon(theme.IconNameFolderOpen), hc.Icon(theme.IconNameFolderOpen))
}
