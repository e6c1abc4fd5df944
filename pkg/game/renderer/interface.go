// Package renderer defines the front-end contract: something that draws a
// frame of the game and hands key presses back to the update loop.
package renderer

import (
	"github.com/zgrow/spacegame-sub000/pkg/engine/input"
	"github.com/zgrow/spacegame-sub000/pkg/game/menu"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

// Frame is everything one redraw reads. It is built on the update loop and
// must not be kept past the RenderFrame call.
type Frame struct {
	Game *state.Game
	// Menu is the top of the menu stack, or nil
	Menu *menu.Menu
	// Cli is the PLANQ shell's pending input line
	Cli string
}

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init acquires the display. Fini must be called on every exit path once
	// Init has succeeded.
	Init() error

	// Fini restores the display
	Fini()

	// RenderFrame draws a complete frame
	RenderFrame(f Frame)

	// Input delivers key presses and resize notifications; it is closed after Fini
	Input() <-chan input.RawInput

	// MapSize returns the map area for a screen of the given size, which is
	// what the camera should be sized to
	MapSize(width, height int) (cols, rows int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// RenderFrame renders a complete game frame with the current renderer
func RenderFrame(f Frame) {
	if Current != nil {
		Current.RenderFrame(f)
	}
}
