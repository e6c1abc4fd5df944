// Package input turns device key codes into high-level intents through
// rebindable bindings, and buffers the text typed into the PLANQ shell.
package input

import (
	"sort"
	"time"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement, one per direction
	ActionMoveNorth
	ActionMoveNorthEast
	ActionMoveEast
	ActionMoveSouthEast
	ActionMoveSouth
	ActionMoveSouthWest
	ActionMoveWest
	ActionMoveNorthWest
	ActionMoveUp
	ActionMoveDown

	// Item pickers
	ActionInventory
	ActionDrop
	ActionGet
	ActionOpen
	ActionClose
	ActionExamine
	ActionUse
	ActionJack

	// Meta / UI
	ActionPause
	ActionMenu
	ActionPlanqCli
	ActionConfirm
	ActionBackspace
	ActionHardQuit
)

var moveDirections = map[Action]world.Direction{
	ActionMoveNorth:     world.North,
	ActionMoveNorthEast: world.NorthEast,
	ActionMoveEast:      world.East,
	ActionMoveSouthEast: world.SouthEast,
	ActionMoveSouth:     world.South,
	ActionMoveSouthWest: world.SouthWest,
	ActionMoveWest:      world.West,
	ActionMoveNorthWest: world.NorthWest,
	ActionMoveUp:        world.Up,
	ActionMoveDown:      world.Down,
}

// Intent is the high-level description of what the player wants to do.
// Text carries the typed character for keys with no binding.
type Intent struct {
	Action Action
	Text   string
}

// Direction returns the movement direction of a move intent
func (i Intent) Direction() (world.Direction, bool) {
	d, ok := moveDirections[i.Action]
	return d, ok
}

// RawInput is an event emitted directly from an input device. Code is a
// device-specific identifier (e.g. "k", "escape", "ctrl_c"); a resize
// notification carries Width and Height instead.
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
	Resize    bool
	Width     int
	Height    int
}

// NewKey creates a key-down event
func NewKey(code string) RawInput {
	return RawInput{Device: DeviceKeyboard, Code: code, Timestamp: time.Now()}
}

// NewResize creates a resize notification
func NewResize(width, height int) RawInput {
	return RawInput{Device: DeviceTerminal, Resize: true, Width: width, Height: height, Timestamp: time.Now()}
}

// DebouncedInput is the representation after debouncing. Terminal key events
// arrive one per press, so this is a thin wrapper that keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// defaultBindings maps raw codes to actions. Multiple codes may point to the same Action.
var defaultBindings = map[string]Action{
	// Movement (vi keys, arrows, stairs)
	"k":           ActionMoveNorth,
	"arrow_up":    ActionMoveNorth,
	"u":           ActionMoveNorthEast,
	"l":           ActionMoveEast,
	"arrow_right": ActionMoveEast,
	"n":           ActionMoveSouthEast,
	"j":           ActionMoveSouth,
	"arrow_down":  ActionMoveSouth,
	"b":           ActionMoveSouthWest,
	"h":           ActionMoveWest,
	"arrow_left":  ActionMoveWest,
	"y":           ActionMoveNorthWest,
	"<":           ActionMoveUp,
	">":           ActionMoveDown,

	"i": ActionInventory,
	"d": ActionDrop,
	"g": ActionGet,
	"o": ActionOpen,
	"c": ActionClose,
	"x": ActionExamine,
	"a": ActionUse,
	"J": ActionJack,

	"p":         ActionPause,
	"escape":    ActionMenu,
	"Q":         ActionMenu,
	"P":         ActionPlanqCli,
	"enter":     ActionConfirm,
	"backspace": ActionBackspace,
	"ctrl_c":    ActionHardQuit,
}

// bindings is the active table, starting from the defaults
var bindings = copyBindings(defaultBindings)

func copyBindings(src map[string]Action) map[string]Action {
	out := make(map[string]Action, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// reserved codes cannot be rebound away from their action
var reserved = map[string]bool{"escape": true, "enter": true, "backspace": true, "ctrl_c": true}

// MapToIntent applies the current bindings to a debounced input. Unbound
// single characters come back as text so the shell can use them.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act, Text: printable(ev.Code)}
	}
	return Intent{Action: ActionNone, Text: printable(ev.Code)}
}

// printable returns code if it is a single printable character
func printable(code string) string {
	runes := []rune(code)
	if len(runes) == 1 && runes[0] >= ' ' && runes[0] != 127 {
		return code
	}
	if code == "space" {
		return " "
	}
	return ""
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveNorthEast:
		return "Move Northeast"
	case ActionMoveEast:
		return "Move East"
	case ActionMoveSouthEast:
		return "Move Southeast"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveSouthWest:
		return "Move Southwest"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveNorthWest:
		return "Move Northwest"
	case ActionMoveUp:
		return "Climb Up"
	case ActionMoveDown:
		return "Climb Down"
	case ActionInventory:
		return "Inventory"
	case ActionDrop:
		return "Drop"
	case ActionGet:
		return "Get"
	case ActionOpen:
		return "Open"
	case ActionClose:
		return "Close"
	case ActionExamine:
		return "Examine"
	case ActionUse:
		return "Use"
	case ActionJack:
		return "Plug In PLANQ"
	case ActionPause:
		return "Pause"
	case ActionMenu:
		return "Menu"
	case ActionPlanqCli:
		return "PLANQ Shell"
	case ActionConfirm:
		return "Confirm"
	case ActionBackspace:
		return "Backspace"
	case ActionHardQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the bindings menu doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// ResetBindings restores the default table
func ResetBindings() {
	bindings = copyBindings(defaultBindings)
}
