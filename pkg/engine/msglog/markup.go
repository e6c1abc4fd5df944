package msglog

import (
	"strings"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

const (
	tagOpen  = "[["
	tagClose = "]]"
)

// Style is the styling state a span is drawn with
type Style struct {
	Fg    world.Color
	Bg    world.Color
	HasFg bool
	HasBg bool
	Add   world.Modifier
	Sub   world.Modifier
}

// IsPlain reports whether the style changes nothing
func (s Style) IsPlain() bool {
	return !s.HasFg && !s.HasBg && s.Add == 0 && s.Sub == 0
}

// Span is a run of text sharing one style
type Span struct {
	Text  string
	Style Style
}

var colorsByName = map[string]world.Color{
	"black":         world.Black,
	"red":           world.Red,
	"green":         world.Green,
	"yellow":        world.Yellow,
	"blue":          world.Blue,
	"magenta":       world.Magenta,
	"cyan":          world.Cyan,
	"gray":          world.Gray,
	"grey":          world.Gray,
	"dark_gray":     world.DarkGray,
	"dark_grey":     world.DarkGray,
	"darkgray":      world.DarkGray,
	"light_red":     world.LightRed,
	"light_green":   world.LightGreen,
	"light_yellow":  world.LightYellow,
	"light_blue":    world.LightBlue,
	"light_magenta": world.LightMagenta,
	"light_cyan":    world.LightCyan,
	"white":         world.White,
}

var modifiersByName = map[string]world.Modifier{
	"bold":        world.ModBold,
	"dim":         world.ModDim,
	"italic":      world.ModItalic,
	"underlined":  world.ModUnderlined,
	"slow_blink":  world.ModSlowBlink,
	"rapid_blink": world.ModRapidBlink,
	"reversed":    world.ModReversed,
	"hidden":      world.ModHidden,
	"strikeout":   world.ModStrikeout,
}

// Parse splits text into styled spans. Markup looks like
// [[fg:red,bg:black,mod:+bold/-dim]] and [[end]] resets to the plain style.
// Unknown tokens are ignored, a tag without its closing delimiter is kept as
// literal text, and empty runs are dropped. Text with no markup yields one span.
func Parse(text string) []Span {
	if !strings.Contains(text, tagOpen) {
		return []Span{{Text: text}}
	}

	var spans []Span
	var current strings.Builder
	style := Style{}
	flush := func() {
		if current.Len() > 0 {
			spans = append(spans, Span{Text: current.String(), Style: style})
			current.Reset()
		}
	}

	rest := text
	for len(rest) > 0 {
		open := strings.Index(rest, tagOpen)
		if open < 0 {
			current.WriteString(rest)
			break
		}
		end := strings.Index(rest[open+len(tagOpen):], tagClose)
		if end < 0 {
			current.WriteString(rest)
			break
		}
		current.WriteString(rest[:open])
		body := rest[open+len(tagOpen) : open+len(tagOpen)+end]
		rest = rest[open+len(tagOpen)+end+len(tagClose):]

		next := applyTag(style, body)
		if next != style {
			flush()
			style = next
		}
	}
	flush()

	if len(spans) == 0 {
		return []Span{{Text: ""}}
	}
	return spans
}

// applyTag folds one tag body into the running style
func applyTag(style Style, body string) Style {
	body = strings.TrimSpace(body)
	if body == "end" {
		return Style{}
	}
	for _, token := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(token), ":")
		if !ok {
			continue
		}
		value = strings.ToLower(strings.TrimSpace(value))
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "fg":
			if value == "reset" {
				style.HasFg = false
				style.Fg = 0
			} else if c, ok := colorsByName[value]; ok {
				style.Fg, style.HasFg = c, true
			}
		case "bg":
			if value == "reset" {
				style.HasBg = false
				style.Bg = 0
			} else if c, ok := colorsByName[value]; ok {
				style.Bg, style.HasBg = c, true
			}
		case "mod":
			for _, m := range strings.Split(value, "/") {
				style = applyModifier(style, m)
			}
		}
	}
	return style
}

func applyModifier(style Style, token string) Style {
	remove := false
	switch {
	case strings.HasPrefix(token, "-"):
		remove = true
		token = token[1:]
	case strings.HasPrefix(token, "+"):
		token = token[1:]
	}
	mod, ok := modifiersByName[token]
	if !ok {
		return style
	}
	if remove {
		style.Sub |= mod
		style.Add &^= mod
	} else {
		style.Add |= mod
		style.Sub &^= mod
	}
	return style
}

// PlainText strips all markup, keeping only the visible text
func PlainText(text string) string {
	var b strings.Builder
	for _, span := range Parse(text) {
		b.WriteString(span.Text)
	}
	return b.String()
}
