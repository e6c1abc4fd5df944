package menu

// MainMenuAction represents the action type for main menu items.
type MainMenuAction int

const (
	MainMenuResume MainMenuAction = iota
	MainMenuSave
	MainMenuLoad
	MainMenuBindings
	MainMenuQuit
)

// MainMenuItem represents a menu item in the main menu.
type MainMenuItem struct {
	Label  string
	Action MainMenuAction
}

// GetLabel returns the display label for this menu item.
func (m *MainMenuItem) GetLabel() string {
	return m.Label
}

// IsSelectable returns whether this item can be selected.
func (m *MainMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this menu item.
func (m *MainMenuItem) GetHelpText() string {
	switch m.Action {
	case MainMenuResume:
		return "Return to the game"
	case MainMenuSave:
		return "Write the game to the save file"
	case MainMenuLoad:
		return "Replace the game with the save file"
	case MainMenuBindings:
		return "Show the key bindings"
	case MainMenuQuit:
		return "Leave the game"
	default:
		return ""
	}
}

// MainMenuHandler calls OnChoose with the activated action and closes.
type MainMenuHandler struct {
	OnChoose func(action MainMenuAction)
}

// NewMainMenu builds the main menu
func NewMainMenu(onChoose func(action MainMenuAction)) *Menu {
	items := []MenuItem{
		&MainMenuItem{Label: "Resume", Action: MainMenuResume},
		&MainMenuItem{Label: "Save", Action: MainMenuSave},
		&MainMenuItem{Label: "Load", Action: MainMenuLoad},
		&MainMenuItem{Label: "Bindings", Action: MainMenuBindings},
		&MainMenuItem{Label: "Quit", Action: MainMenuQuit},
	}
	return New(items, &MainMenuHandler{OnChoose: onChoose})
}

// GetTitle returns the menu title.
func (h *MainMenuHandler) GetTitle() string {
	return "Main Menu"
}

// GetInstructions returns the menu instructions.
func (h *MainMenuHandler) GetInstructions(selected MenuItem) string {
	if selected != nil {
		return selected.GetHelpText()
	}
	return ""
}

// OnActivate reports the chosen action.
func (h *MainMenuHandler) OnActivate(item MenuItem, index int) (bool, string) {
	if mi, ok := item.(*MainMenuItem); ok && h.OnChoose != nil {
		h.OnChoose(mi.Action)
	}
	return true, ""
}
