package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	themeKey   = "turtleboard.theme"
	themeDark  = "dark"
	themeLight = "light"
)

// fixedVariant pins the default theme to one variant regardless of the OS
// preference.
type fixedVariant struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t fixedVariant) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

func themeFor(name string) fyne.Theme {
	if name == themeDark {
		return fixedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantDark}
	}
	return fixedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantLight}
}

// savedTheme returns the stored theme name, defaulting to light.
func savedTheme(p fyne.Preferences) string {
	if p.StringWithFallback(themeKey, themeLight) == themeDark {
		return themeDark
	}
	return themeLight
}

func applyTheme(a fyne.App, b *BoardWidget, name string) {
	a.Preferences().SetString(themeKey, name)
	a.Settings().SetTheme(themeFor(name))
	b.SetDark(name == themeDark)
}
