package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// High contrast palette for low-vision users: yellow on black, the scheme
// screen-reader documentation commonly recommends.
var (
	hcBackground = color.Black
	hcForeground = color.NRGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	hcDimmed     = color.NRGBA{R: 0xB0, G: 0xB0, B: 0x00, A: 0xFF}
	hcSurface    = color.NRGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}
)

type highContrastTheme struct {
	base fyne.Theme
}

// NewHighContrastTheme wraps the default theme with a yellow-on-black
// palette.
func NewHighContrastTheme() fyne.Theme {
	return &highContrastTheme{base: theme.DefaultTheme()}
}

func (t *highContrastTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return hcBackground
	case theme.ColorNameForeground:
		return hcForeground
	case theme.ColorNameButton, theme.ColorNameInputBackground:
		return hcSurface
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameHyperlink:
		return hcForeground
	case theme.ColorNameDisabled, theme.ColorNamePlaceHolder:
		return hcDimmed
	default:
		return t.base.Color(name, theme.VariantDark)
	}
}

func (t *highContrastTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *highContrastTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *highContrastTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}
