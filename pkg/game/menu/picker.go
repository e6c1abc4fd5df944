package menu

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
)

// EntityItem is a picker entry standing for one entity
type EntityItem struct {
	Entity ecs.Entity
	Label  string
	Help   string
}

// GetLabel returns the entity's display name
func (e *EntityItem) GetLabel() string { return e.Label }

// IsSelectable returns true; every candidate can be picked
func (e *EntityItem) IsSelectable() bool { return true }

// GetHelpText returns the entity's description
func (e *EntityItem) GetHelpText() string { return e.Help }

// PickerHandler calls Choose with the picked entity and closes
type PickerHandler struct {
	Title  string
	Choose func(e ecs.Entity)
}

// NewPicker builds a menu listing items under title
func NewPicker(title string, items []*EntityItem, choose func(e ecs.Entity)) *Menu {
	list := make([]MenuItem, len(items))
	for i, item := range items {
		list[i] = item
	}
	return New(list, &PickerHandler{Title: title, Choose: choose})
}

// GetTitle returns the menu title.
func (h *PickerHandler) GetTitle() string {
	return h.Title
}

// GetInstructions returns the menu instructions.
func (h *PickerHandler) GetInstructions(selected MenuItem) string {
	return "Use j/k to select, Enter to choose, Esc to cancel"
}

// OnActivate hands the chosen entity over
func (h *PickerHandler) OnActivate(item MenuItem, index int) (bool, string) {
	if ei, ok := item.(*EntityItem); ok && h.Choose != nil {
		h.Choose(ei.Entity)
	}
	return true, ""
}

// ActionItem is an action picker entry
type ActionItem struct {
	Kind event.ActionKind
}

// GetLabel returns the action's menu label
func (a *ActionItem) GetLabel() string { return a.Kind.String() }

// IsSelectable returns true
func (a *ActionItem) IsSelectable() bool { return true }

// GetHelpText returns nothing; the title names the item
func (a *ActionItem) GetHelpText() string { return "" }

// ActionHandler calls Choose with the picked action and closes
type ActionHandler struct {
	Title  string
	Choose func(kind event.ActionKind)
}

// NewActionPicker builds a menu of the actions that can be taken on one item
func NewActionPicker(title string, kinds []event.ActionKind, choose func(kind event.ActionKind)) *Menu {
	list := make([]MenuItem, len(kinds))
	for i, kind := range kinds {
		list[i] = &ActionItem{Kind: kind}
	}
	return New(list, &ActionHandler{Title: title, Choose: choose})
}

// GetTitle returns the menu title.
func (h *ActionHandler) GetTitle() string {
	return h.Title
}

// GetInstructions returns the menu instructions.
func (h *ActionHandler) GetInstructions(selected MenuItem) string {
	return "Use j/k to select, Enter to choose, Esc to go back"
}

// OnActivate hands the chosen action over
func (h *ActionHandler) OnActivate(item MenuItem, index int) (bool, string) {
	if ai, ok := item.(*ActionItem); ok && h.Choose != nil {
		h.Choose(ai.Kind)
	}
	return true, ""
}
