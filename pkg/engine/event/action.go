package event

import (
	"fmt"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// ActionKind names an action without its parameters
type ActionKind int

// Action kinds
const (
	NoAction ActionKind = iota
	Examine
	MoveTo
	Inventory
	MoveItem
	DropItem
	UseItem
	KillItem
	OpenItem
	CloseItem
	LockItem
	UnlockItem
)

// String returns the label shown in menus
func (k ActionKind) String() string {
	switch k {
	case NoAction:
		return "NoAction"
	case Examine:
		return "Examine"
	case MoveTo:
		return "MoveTo"
	case Inventory:
		return "Inventory"
	case MoveItem:
		return "Move"
	case DropItem:
		return "Drop"
	case UseItem:
		return "Use"
	case KillItem:
		return "Kill"
	case OpenItem:
		return "Open"
	case CloseItem:
		return "Close"
	case LockItem:
		return "Lock"
	case UnlockItem:
		return "Unlock"
	default:
		return "Unknown"
	}
}

// ActionType is an action kind plus its parameter; only MoveTo uses Dir
type ActionType struct {
	Kind ActionKind      `json:"kind"`
	Dir  world.Direction `json:"dir,omitempty"`
}

// Action builds a parameterless ActionType
func Action(kind ActionKind) ActionType {
	return ActionType{Kind: kind}
}

// Move builds a MoveTo action
func Move(dir world.Direction) ActionType {
	return ActionType{Kind: MoveTo, Dir: dir}
}

func (a ActionType) String() string {
	if a.Kind == MoveTo {
		return fmt.Sprintf("MoveTo(%s)", a.Dir.Short())
	}
	return a.Kind.String()
}

// NeedsSubject reports whether an event carrying this action must name an actor
func (a ActionType) NeedsSubject() bool {
	switch a.Kind {
	case NoAction:
		return false
	default:
		return true
	}
}

// NeedsObject reports whether an event carrying this action must name a target
func (a ActionType) NeedsObject() bool {
	switch a.Kind {
	case Examine, UseItem, MoveItem, DropItem, OpenItem, CloseItem, LockItem, UnlockItem:
		return true
	default:
		return false
	}
}
