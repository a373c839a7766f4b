package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility; the platform maps
// each value to a concrete style.
type Color uint8

// Palette entries.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Semantic colors used by the lander renderer.
const (
	ColorSurface = ColorGray
	ColorPad     = ColorBrightGreen
	ColorCraft   = ColorBrightWhite
	ColorFlame   = ColorOrange
	ColorHUD     = ColorCyan
	ColorWarning = ColorBrightRed
)
