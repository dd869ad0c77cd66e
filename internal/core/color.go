package core

// Color is a foreground color for a screen cell. The terminal renderer maps
// each value to an ANSI 256-color style.
type Color uint8

// Colors used by the terminal canvas.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorGray
)
