// Package world provides the ship's spatial model: decks of tiles, the portals
// that link them, the logical room graph, and the line-of-sight helpers that
// work against a deck's opacity map.
package world

// Color is one of the 16 standard terminal colors
type Color uint8

// Terminal palette, in ANSI index order
const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Gray
	DarkGray
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
)

var colorNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "gray",
	"dark_gray", "light_red", "light_green", "light_yellow", "light_blue", "light_magenta", "light_cyan", "white",
}

// String returns the markup name of the color
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "reset"
}

// Dim maps a color to its darker counterpart; used for remembered tiles
func (c Color) Dim() Color {
	switch {
	case c == White:
		return Gray
	case c > DarkGray:
		return c - 8
	case c == Black:
		return Black
	default:
		return DarkGray
	}
}

// Modifier is a bitset of text attributes
type Modifier uint16

// Text attributes understood by the renderer
const (
	ModBold Modifier = 1 << iota
	ModDim
	ModItalic
	ModUnderlined
	ModSlowBlink
	ModRapidBlink
	ModReversed
	ModHidden
	ModStrikeout
)

// ScreenCell is one printable grid cell: a glyph and its styling
type ScreenCell struct {
	Glyph string   `json:"glyph"`
	Fg    Color    `json:"fg"`
	Bg    Color    `json:"bg"`
	Mods  Modifier `json:"mods,omitempty"`
}

// NewScreenCell creates a cell on a black background
func NewScreenCell(glyph string, fg Color) ScreenCell {
	return ScreenCell{Glyph: glyph, Fg: fg, Bg: Black}
}

// Dimmed returns a copy with both colors pushed to their darker variants
func (c ScreenCell) Dimmed() ScreenCell {
	c.Fg = c.Fg.Dim()
	c.Bg = c.Bg.Dim()
	return c
}

// Glyph is one piece of a multi-tile body: where it sits and how it looks
type Glyph struct {
	Pos  Position   `json:"pos"`
	Cell ScreenCell `json:"cell"`
}

// Background is drawn for any unrevealed or off-map screen position
var Background = ScreenCell{Glyph: "░", Fg: DarkGray, Bg: Black}
