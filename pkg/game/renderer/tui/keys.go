package tui

import (
	"github.com/gdamore/tcell/v2"
)

var keyCodes = map[tcell.Key]string{
	tcell.KeyUp:         "arrow_up",
	tcell.KeyDown:       "arrow_down",
	tcell.KeyLeft:       "arrow_left",
	tcell.KeyRight:      "arrow_right",
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "escape",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyCtrlC:      "ctrl_c",
	tcell.KeyTab:        "tab",
}

// KeyCode converts a tcell key event into the input layer's raw code.
// Keys the game has no use for report false.
func KeyCode(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space", true
		}
		return string(r), true
	}
	code, ok := keyCodes[ev.Key()]
	return code, ok
}
