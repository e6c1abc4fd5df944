// Package menu provides the menu stack shown over the map: the main menu,
// the key bindings list and the item pickers.
package menu

import (
	engineinput "github.com/zgrow/spacegame-sub000/pkg/engine/input"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item activation.
type MenuHandler interface {
	// OnActivate is called when an item is activated (e.g., Enter pressed).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
}

// Menu is one open menu: its items, the highlighted entry and any help text
type Menu struct {
	Items    []MenuItem
	Selected int
	HelpText string
	Handler  MenuHandler
}

// New opens a menu with the first selectable item highlighted
func New(items []MenuItem, handler MenuHandler) *Menu {
	m := &Menu{Items: items, Handler: handler}
	for i, item := range items {
		if item.IsSelectable() {
			m.Selected = i
			break
		}
	}
	return m
}

// Title is the handler's title
func (m *Menu) Title() string {
	return m.Handler.GetTitle()
}

// Instructions is the handler's instructions for the highlighted item
func (m *Menu) Instructions() string {
	return m.Handler.GetInstructions(m.Current())
}

// Current returns the highlighted item, or nil for an empty menu
func (m *Menu) Current() MenuItem {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	return m.Items[m.Selected]
}

// Move shifts the highlight to the next selectable item in dir (+1 or -1), wrapping around
func (m *Menu) Move(dir int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if m.Items[i].IsSelectable() {
			m.Selected = i
			m.HelpText = ""
			return
		}
	}
}

// Activate runs the highlighted item, returning true if the menu should close
func (m *Menu) Activate() bool {
	item := m.Current()
	if item == nil || !item.IsSelectable() {
		return false
	}
	shouldClose, help := m.Handler.OnActivate(item, m.Selected)
	m.HelpText = help
	return shouldClose
}

// Stack is the pile of open menus; only the top one takes input
type Stack struct {
	menus []*Menu
}

// Push opens m on top of the stack
func (s *Stack) Push(m *Menu) {
	s.menus = append(s.menus, m)
}

// Pop closes the topmost menu
func (s *Stack) Pop() {
	if len(s.menus) > 0 {
		s.menus = s.menus[:len(s.menus)-1]
	}
}

// Top returns the topmost menu, or nil
func (s *Stack) Top() *Menu {
	if len(s.menus) == 0 {
		return nil
	}
	return s.menus[len(s.menus)-1]
}

// Len is the number of open menus
func (s *Stack) Len() int {
	return len(s.menus)
}

// Clear closes every menu
func (s *Stack) Clear() {
	s.menus = nil
}

// HandleIntent routes an intent to the topmost menu. It returns false when no
// menu is open, so the caller can treat the intent as gameplay input.
func (s *Stack) HandleIntent(intent engineinput.Intent) bool {
	top := s.Top()
	if top == nil {
		return false
	}
	switch intent.Action {
	case engineinput.ActionMoveNorth:
		top.Move(-1)
	case engineinput.ActionMoveSouth:
		top.Move(1)
	case engineinput.ActionConfirm, engineinput.ActionMoveEast:
		// the handler may have pushed a submenu; close the one that was activated
		if top.Activate() {
			s.remove(top)
		}
	case engineinput.ActionMenu, engineinput.ActionMoveWest:
		s.Pop()
	}
	return true
}

func (s *Stack) remove(m *Menu) {
	for i, open := range s.menus {
		if open == m {
			s.menus = append(s.menus[:i], s.menus[i+1:]...)
			return
		}
	}
}
