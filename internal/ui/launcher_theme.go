package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LauncherTheme defines the launcher look: dark-first palette with a teal
// primary and slightly tightened spacing.
type LauncherTheme struct{}

// NewLauncherTheme creates the launcher theme
func NewLauncherTheme() fyne.Theme {
	return &LauncherTheme{}
}

// Color returns theme colors
func (t *LauncherTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 52, G: 168, B: 83, A: 255} // Green for ready/completed
	case theme.ColorNameError:
		return color.RGBA{R: 198, G: 40, B: 40, A: 255} // Red for errors
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 179, B: 0, A: 255} // Amber for update banner
	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 150, B: 136, A: 255} // Teal for play/primary actions
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 21, G: 24, B: 28, A: 255} // Deep slate
		}
		return color.RGBA{R: 246, G: 248, B: 250, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 235, G: 238, B: 240, A: 255}
		}
		return color.RGBA{R: 30, G: 34, B: 38, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *LauncherTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Use default theme fonts
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *LauncherTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	// Use default theme icons
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *LauncherTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 17
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameInputRadius:
		return 4
	case theme.SizeNameSelectionRadius:
		return 3
	}

	// Use default theme for everything else
	return theme.DefaultTheme().Size(name)
}
