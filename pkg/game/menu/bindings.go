package menu

import (
	"fmt"
	"strings"

	engineinput "github.com/zgrow/spacegame-sub000/pkg/engine/input"
)

// BindingMenuItem shows the codes bound to one action.
type BindingMenuItem struct {
	Action engineinput.Action
}

// GetLabel returns the display label for this binding menu item.
func (b *BindingMenuItem) GetLabel() string {
	codes := engineinput.GetBindingsByAction()[b.Action]
	codeText := strings.Join(codes, ", ")
	if codeText == "" {
		codeText = "(unbound)"
	}
	return fmt.Sprintf("%-16s %s", engineinput.ActionName(b.Action), codeText)
}

// IsSelectable returns whether this binding can be selected.
func (b *BindingMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this binding.
func (b *BindingMenuItem) GetHelpText() string {
	return ""
}

// BindingsMenuHandler lists the bindings; any activation closes it.
type BindingsMenuHandler struct{}

// NewBindingsMenu lists every gameplay action with its keys
func NewBindingsMenu() *Menu {
	var items []MenuItem
	for act := engineinput.ActionMoveNorth; act <= engineinput.ActionHardQuit; act++ {
		items = append(items, &BindingMenuItem{Action: act})
	}
	return New(items, BindingsMenuHandler{})
}

// GetTitle returns the menu title.
func (BindingsMenuHandler) GetTitle() string {
	return "Bindings"
}

// GetInstructions returns the menu instructions.
func (BindingsMenuHandler) GetInstructions(selected MenuItem) string {
	return "Enter or Esc to go back"
}

// OnActivate closes the list.
func (BindingsMenuHandler) OnActivate(item MenuItem, index int) (bool, string) {
	return true, ""
}
