package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// palette is the 16 ANSI colors in world.Color order
var palette = [...]tcell.Color{
	tcell.ColorBlack, tcell.ColorMaroon, tcell.ColorGreen, tcell.ColorOlive,
	tcell.ColorNavy, tcell.ColorPurple, tcell.ColorTeal, tcell.ColorSilver,
	tcell.ColorGray, tcell.ColorRed, tcell.ColorLime, tcell.ColorYellow,
	tcell.ColorBlue, tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorWhite,
}

func tcellColor(c world.Color) tcell.Color {
	if int(c) < len(palette) {
		return palette[c]
	}
	return tcell.ColorDefault
}

// withModifiers switches the attributes in mods on or off
func withModifiers(st tcell.Style, mods world.Modifier, on bool) tcell.Style {
	if mods&world.ModBold != 0 {
		st = st.Bold(on)
	}
	if mods&world.ModDim != 0 {
		st = st.Dim(on)
	}
	if mods&world.ModItalic != 0 {
		st = st.Italic(on)
	}
	if mods&world.ModUnderlined != 0 {
		st = st.Underline(on)
	}
	if mods&(world.ModSlowBlink|world.ModRapidBlink) != 0 {
		st = st.Blink(on)
	}
	if mods&world.ModReversed != 0 {
		st = st.Reverse(on)
	}
	if mods&world.ModStrikeout != 0 {
		st = st.StrikeThrough(on)
	}
	return st
}

// CellStyle is the tcell style a map cell is drawn with
func CellStyle(c world.ScreenCell) tcell.Style {
	st := tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
	return withModifiers(st, c.Mods, true)
}

// SpanStyle layers a markup style over base
func SpanStyle(base tcell.Style, s msglog.Style) tcell.Style {
	if s.HasFg {
		base = base.Foreground(tcellColor(s.Fg))
	}
	if s.HasBg {
		base = base.Background(tcellColor(s.Bg))
	}
	base = withModifiers(base, s.Add, true)
	return withModifiers(base, s.Sub, false)
}
