package gameplay

import (
	"github.com/mlange-42/ark/ecs"

	engineinput "github.com/zgrow/spacegame-sub000/pkg/engine/input"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	gamemenu "github.com/zgrow/spacegame-sub000/pkg/game/menu"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

// cliLimit is the longest line the PLANQ shell accepts
const cliLimit = 64

// Controller turns key presses into events for the next tick. It runs on the
// update loop's goroutine and owns the menus and the shell's input line.
type Controller struct {
	Menus gamemenu.Stack
	Cli   *engineinput.LineBuffer
	Quit  bool
}

// NewController creates a controller with no menus open
func NewController() *Controller {
	return &Controller{Cli: engineinput.NewLineBuffer(cliLimit)}
}

// Handle processes a single key press. Resize notifications are left to the caller.
func (c *Controller) Handle(g *state.Game, raw engineinput.RawInput) {
	if raw.Resize {
		return
	}
	intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
	c.ProcessIntent(g, intent)
}

// ProcessIntent handles a high-level input intent from the tiered input system.
func (c *Controller) ProcessIntent(g *state.Game, intent engineinput.Intent) {
	if intent.Action == engineinput.ActionHardQuit {
		c.Quit = true
		return
	}
	// Ending screen: any key leaves
	if g.IsOver() {
		if intent.Action != engineinput.ActionNone || intent.Text != "" {
			c.Quit = true
		}
		return
	}
	if g.Planq.ActionMode == planq.ActionCliInput {
		c.handleCli(g, intent)
		return
	}
	if c.Menus.HandleIntent(intent) {
		return
	}

	player := g.Player()
	if dir, ok := intent.Direction(); ok {
		g.Inbox.Post(event.NewPlayerAction(event.Move(dir), player, ecs.Entity{}))
		return
	}

	switch intent.Action {
	case engineinput.ActionPause:
		g.Inbox.Post(event.GameEvent{Type: event.PauseToggle})
	case engineinput.ActionMenu:
		c.Menus.Push(c.mainMenu(g))
	case engineinput.ActionPlanqCli:
		c.openCli(g)
	case engineinput.ActionInventory:
		list := carried(g, player, nil)
		if len(list) == 0 {
			notify(g, "You aren't carrying anything.")
			return
		}
		c.Menus.Push(gamemenu.NewPicker("Inventory", c.items(g, list), func(e ecs.Entity) {
			c.itemActions(g, player, e)
		}))
	case engineinput.ActionDrop:
		c.pick(g, "Drop what?", carried(g, player, supports(g, event.DropItem)), event.DropItem, "You aren't carrying anything.")
	case engineinput.ActionGet:
		c.pick(g, "Pick up what?", nearby(g, player, supports(g, event.MoveItem)), event.MoveItem, "There's nothing here to pick up.")
	case engineinput.ActionOpen:
		c.pick(g, "Open what?", nearby(g, player, func(e ecs.Entity) bool {
			o := g.Store.Openables.Get(e)
			return g.Store.Supports(e, event.OpenItem) && o != nil && !o.IsOpen
		}), event.OpenItem, "There's nothing here to open.")
	case engineinput.ActionClose:
		c.pick(g, "Close what?", nearby(g, player, func(e ecs.Entity) bool {
			o := g.Store.Openables.Get(e)
			return g.Store.Supports(e, event.CloseItem) && o != nil && o.IsOpen
		}), event.CloseItem, "There's nothing here to close.")
	case engineinput.ActionExamine:
		describable := supports(g, event.Examine)
		list := append(carried(g, player, describable), nearby(g, player, describable)...)
		c.pick(g, "Examine what?", list, event.Examine, "There's nothing here to examine.")
	case engineinput.ActionUse:
		usable := func(e ecs.Entity) bool {
			return g.Store.Supports(e, event.UseItem) || g.Store.Supports(e, event.UnlockItem)
		}
		list := append(carried(g, player, usable), nearby(g, player, usable)...)
		c.pick(g, "Use what?", list, event.UseItem, "There's nothing here to use.")
	case engineinput.ActionJack:
		c.jack(g, player)
	}
}

func (c *Controller) handleCli(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionConfirm:
		g.Inbox.PostPlanq(event.Command(c.Cli.Submit()))
	case engineinput.ActionMenu:
		c.Cli.Clear()
		g.Inbox.PostPlanq(event.NewPlanqEvent(event.PlanqCliClose))
	case engineinput.ActionBackspace:
		c.Cli.Backspace()
	default:
		c.Cli.Insert(intent.Text)
	}
}

// openCli asks the PLANQ for its shell, if the player has one that is running
func (c *Controller) openCli(g *state.Game) {
	d := g.Planq
	if !d.IsCarried {
		notify(g, "You don't have a PLANQ.")
		return
	}
	if d.CPUMode != planq.Idle && d.CPUMode != planq.Working {
		notify(g, "The PLANQ is not responding.")
		return
	}
	c.Cli.Clear()
	g.Inbox.PostPlanq(event.NewPlanqEvent(event.PlanqCliOpen))
}

// jack plugs the PLANQ's access cable into an adjacent access port
func (c *Controller) jack(g *state.Game, player ecs.Entity) {
	if !g.Planq.IsCarried {
		notify(g, "You don't have a PLANQ.")
		return
	}
	ports := nearby(g, player, func(e ecs.Entity) bool { return g.Store.AccessPorts.Has(e) })
	post := func(e ecs.Entity) { g.Inbox.Post(event.NewPlanqConnect(player, e)) }
	switch len(ports) {
	case 0:
		// let the PLANQ stage report that there's nowhere to plug in
		g.Inbox.Post(event.NewPlanqConnect(player, ecs.Entity{}))
	case 1:
		post(ports[0])
	default:
		c.Menus.Push(gamemenu.NewPicker("Plug into what?", c.items(g, ports), post))
	}
}

// itemActions opens the list of what can be done with a carried item
func (c *Controller) itemActions(g *state.Game, player, item ecs.Entity) {
	var kinds []event.ActionKind
	for _, kind := range g.Store.Actions(item) {
		switch kind {
		case event.NoAction, event.MoveTo, event.Inventory, event.MoveItem, event.KillItem:
		default:
			kinds = append(kinds, kind)
		}
	}
	name := g.Store.Name(item)
	if len(kinds) == 0 {
		notify(g, "You can't do anything with the %s.", name)
		return
	}
	c.Menus.Push(gamemenu.NewActionPicker(name, kinds, func(kind event.ActionKind) {
		g.Inbox.Post(event.NewPlayerAction(actionFor(g, kind, item), player, item))
	}))
}

// pick sends kind at the single candidate, or opens a picker when there are several
func (c *Controller) pick(g *state.Game, title string, list []ecs.Entity, kind event.ActionKind, none string) {
	player := g.Player()
	send := func(e ecs.Entity) {
		g.Inbox.Post(event.NewPlayerAction(actionFor(g, kind, e), player, e))
	}
	switch len(list) {
	case 0:
		notify(g, none)
	case 1:
		send(list[0])
	default:
		c.Menus.Push(gamemenu.NewPicker(title, c.items(g, list), send))
	}
}

// actionFor maps Use on a lock without a power switch to Lock or Unlock
func actionFor(g *state.Game, kind event.ActionKind, e ecs.Entity) event.ActionType {
	if kind == event.UseItem && !g.Store.Devices.Has(e) {
		if lock := g.Store.Lockables.Get(e); lock != nil {
			if lock.IsLocked {
				return event.Action(event.UnlockItem)
			}
			return event.Action(event.LockItem)
		}
	}
	return event.Action(kind)
}

func (c *Controller) items(g *state.Game, list []ecs.Entity) []*gamemenu.EntityItem {
	out := make([]*gamemenu.EntityItem, 0, len(list))
	for _, e := range list {
		item := &gamemenu.EntityItem{Entity: e, Label: g.Store.Name(e)}
		if desc := g.Store.Descriptions.Get(e); desc != nil {
			item.Help = desc.Desc
		}
		out = append(out, item)
	}
	return out
}

func (c *Controller) mainMenu(g *state.Game) *gamemenu.Menu {
	return gamemenu.NewMainMenu(func(action gamemenu.MainMenuAction) {
		switch action {
		case gamemenu.MainMenuSave:
			g.Inbox.Post(event.GameEvent{Type: event.SaveRequest})
		case gamemenu.MainMenuLoad:
			g.Inbox.Post(event.GameEvent{Type: event.LoadRequest})
		case gamemenu.MainMenuBindings:
			c.Menus.Push(gamemenu.NewBindingsMenu())
		case gamemenu.MainMenuQuit:
			c.Quit = true
		}
	})
}

// notify queues a message for the player; the engine stage writes it to the log
func notify(g *state.Game, msg string, args ...any) {
	g.Inbox.Post(event.NewNotice(msg, args...))
}

// supports filters candidates by their action set
func supports(g *state.Game, kind event.ActionKind) func(ecs.Entity) bool {
	return func(e ecs.Entity) bool { return g.Store.Supports(e, kind) }
}

// carried lists what holder carries, filtered by keep when it is set
func carried(g *state.Game, holder ecs.Entity, keep func(ecs.Entity) bool) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range g.Store.CarriedBy(holder) {
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// nearby lists the entities on the tiles within reach of subject, excluding subject
func nearby(g *state.Game, subject ecs.Entity, keep func(ecs.Entity) bool) []ecs.Entity {
	at := g.Store.Positions.Get(subject)
	if at == nil {
		return nil
	}
	center := *at
	var out []ecs.Entity
	spots := append([]world.Position{center}, neighbours(center)...)
	for _, p := range spots {
		for _, e := range g.Model.ContentsAt(p) {
			if e != subject && keep(e) {
				out = append(out, e)
			}
		}
	}
	return out
}

func neighbours(p world.Position) []world.Position {
	out := make([]world.Position, 0, 8)
	for _, d := range world.PlanarDirections() {
		out = append(out, p.Step(d))
	}
	return out
}
