package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// sidTheme darkens the stock theme and tightens padding so the voice
// meters sit close together. Everything not overridden falls through
// to the embedded default.
type sidTheme struct {
	fyne.Theme
}

func newSIDTheme() fyne.Theme {
	return &sidTheme{Theme: theme.DefaultTheme()}
}

func (t *sidTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xe4, G: 0xe4, B: 0xe8, A: 0xff}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x7a, G: 0xa2, B: 0xf7, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x24, G: 0x24, B: 0x2c, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x1c, G: 0x1c, B: 0x22, A: 0xff}
	}
	return t.Theme.Color(name, theme.VariantDark)
}

func (t *sidTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 4
	}
	return t.Theme.Size(name)
}
