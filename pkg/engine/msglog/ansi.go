package msglog

import (
	"strings"

	"github.com/gookit/color"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

var ansiFg = [...]color.Color{
	color.FgBlack, color.FgRed, color.FgGreen, color.FgYellow,
	color.FgBlue, color.FgMagenta, color.FgCyan, color.FgWhite,
	color.FgDarkGray, color.FgLightRed, color.FgLightGreen, color.FgLightYellow,
	color.FgLightBlue, color.FgLightMagenta, color.FgLightCyan, color.FgLightWhite,
}

var ansiBg = [...]color.Color{
	color.BgBlack, color.BgRed, color.BgGreen, color.BgYellow,
	color.BgBlue, color.BgMagenta, color.BgCyan, color.BgWhite,
	color.BgDarkGray, color.BgLightRed, color.BgLightGreen, color.BgLightYellow,
	color.BgLightBlue, color.BgLightMagenta, color.BgLightCyan, color.BgLightWhite,
}

var ansiOps = []struct {
	mod world.Modifier
	op  color.Color
}{
	{world.ModBold, color.OpBold},
	{world.ModDim, color.OpFuzzy},
	{world.ModItalic, color.OpItalic},
	{world.ModUnderlined, color.OpUnderscore},
	{world.ModSlowBlink, color.OpBlink},
	{world.ModRapidBlink, color.OpFastBlink},
	{world.ModReversed, color.OpReverse},
	{world.ModHidden, color.OpConcealed},
	{world.ModStrikeout, color.OpStrikethrough},
}

// ColorStyle converts a span style to a gookit style
func (s Style) ColorStyle() color.Style {
	var st color.Style
	if s.HasFg && int(s.Fg) < len(ansiFg) {
		st = append(st, ansiFg[s.Fg])
	}
	if s.HasBg && int(s.Bg) < len(ansiBg) {
		st = append(st, ansiBg[s.Bg])
	}
	for _, o := range ansiOps {
		if s.Add&o.mod != 0 {
			st = append(st, o.op)
		}
	}
	return st
}

// CellStyle converts a ScreenCell's colors to a gookit style
func CellStyle(c world.ScreenCell) color.Style {
	return Style{Fg: c.Fg, Bg: c.Bg, HasFg: true, HasBg: c.Bg != world.Black, Add: c.Mods}.ColorStyle()
}

// ANSI renders the span with terminal escape codes
func (sp Span) ANSI() string {
	if sp.Style.IsPlain() {
		return sp.Text
	}
	return sp.Style.ColorStyle().Sprint(sp.Text)
}

// Render converts marked-up text into an ANSI string
func Render(text string) string {
	var b strings.Builder
	for _, span := range Parse(text) {
		b.WriteString(span.ANSI())
	}
	return b.String()
}
