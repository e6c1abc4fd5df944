package gameplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineinput "github.com/zgrow/spacegame-sub000/pkg/engine/input"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
)

func TestKeysBecomeActions(t *testing.T) {
	g, b := newTestGame(t)
	spawnPlayer(g, b, world.NewPosition(3, 3, 0))
	c := NewController()
	p := NewPipeline(g)

	c.Handle(g, engineinput.NewKey("l"))
	c.Handle(g, engineinput.NewResize(80, 24))
	p.Tick(g, tick)
	assert.Equal(t, world.NewPosition(4, 3, 0), g.PlayerPosition())

	c.Handle(g, engineinput.NewKey("p"))
	p.Tick(g, tick)
	assert.Equal(t, event.ModePaused, g.Mode)
}

func TestGetSingleItemActsDirectly(t *testing.T) {
	g, b := newTestGame(t)
	at := world.NewPosition(3, 3, 0)
	spawnPlayer(g, b, at)
	spawnAt(t, g, b, "snack", at.Step(world.East))
	c := NewController()
	p := NewPipeline(g)

	c.Handle(g, engineinput.NewKey("g"))
	assert.Zero(t, c.Menus.Len())
	p.Tick(g, tick)
	assert.Equal(t, "Obtained a _snack_1.", lastSaid(g))
}

func TestGetSeveralItemsOpensPicker(t *testing.T) {
	g, b := newTestGame(t)
	at := world.NewPosition(3, 3, 0)
	spawnPlayer(g, b, at)
	spawnAt(t, g, b, "snack", at)
	spawnAt(t, g, b, "snack", at)
	c := NewController()
	p := NewPipeline(g)

	c.Handle(g, engineinput.NewKey("g"))
	require.Equal(t, 1, c.Menus.Len())
	assert.Equal(t, "Pick up what?", c.Menus.Top().Title())

	c.Handle(g, engineinput.NewKey("j"))
	c.Handle(g, engineinput.NewKey("enter"))
	assert.Zero(t, c.Menus.Len())
	p.Tick(g, tick)
	assert.Equal(t, "Obtained a _snack_1.", lastSaid(g))
	assert.Equal(t, at, g.PlayerPosition(), "menu keys do not move the player")
}

func TestNothingToDo(t *testing.T) {
	g, b := newTestGame(t)
	spawnPlayer(g, b, world.NewPosition(3, 3, 0))
	c := NewController()
	p := NewPipeline(g)

	for code, want := range map[string]string{
		"i": "You aren't carrying anything.",
		"d": "You aren't carrying anything.",
		"g": "There's nothing here to pick up.",
		"o": "There's nothing here to open.",
		"c": "There's nothing here to close.",
		"a": "There's nothing here to use.",
		"P": "You don't have a PLANQ.",
		"J": "You don't have a PLANQ.",
	} {
		g.Log.Clear(msglog.ChannelWorld)
		c.Handle(g, engineinput.NewKey(code))
		assert.Empty(t, lastSaid(g), "key %q is answered on the next tick", code)
		p.Tick(g, tick)
		assert.Equal(t, want, lastSaid(g), "key %q", code)
	}
	assert.Zero(t, c.Menus.Len())
}

func TestInventoryListsItemActions(t *testing.T) {
	g, b := newTestGame(t)
	at := world.NewPosition(3, 3, 0)
	player := spawnPlayer(g, b, at)
	snack, err := b.Spawn("snack", world.Invalid)
	require.NoError(t, err)
	b.GiveTo(snack, player)
	c := NewController()
	p := NewPipeline(g)

	c.Handle(g, engineinput.NewKey("i"))
	require.Equal(t, 1, c.Menus.Len())
	assert.Equal(t, "Inventory", c.Menus.Top().Title())

	c.Handle(g, engineinput.NewKey("enter"))
	require.Equal(t, 1, c.Menus.Len())
	actions := c.Menus.Top()
	assert.Equal(t, "_snack_1", actions.Title())
	var labels []string
	for _, item := range actions.Items {
		labels = append(labels, item.GetLabel())
	}
	assert.Equal(t, []string{"Examine", "Drop"}, labels)

	c.Handle(g, engineinput.NewKey("j"))
	c.Handle(g, engineinput.NewKey("enter"))
	assert.Zero(t, c.Menus.Len())
	p.Tick(g, tick)
	assert.Equal(t, "Dropped a _snack_1.", lastSaid(g))
	assert.Equal(t, at, *g.Store.Positions.Get(snack))
}

func TestUseOnLockedDoorUnlocks(t *testing.T) {
	g, b, player, door := doorInWall(t)
	require.NoError(t, b.Apply(door, "lockable state:true,key_id:1"))
	key, err := b.Spawn("key", world.Invalid)
	require.NoError(t, err)
	b.GiveTo(key, player)
	c := NewController()
	p := NewPipeline(g)

	c.Handle(g, engineinput.NewKey("a"))
	p.Tick(g, tick)
	assert.False(t, g.Store.Lockables.Get(door).IsLocked)
	assert.Equal(t, "You unlock the _door_1.", lastSaid(g))
}

func TestMenuKeys(t *testing.T) {
	g, b := newTestGame(t)
	spawnPlayer(g, b, world.NewPosition(3, 3, 0))
	c := NewController()

	c.Handle(g, engineinput.NewKey("escape"))
	require.Equal(t, 1, c.Menus.Len())
	assert.Equal(t, "Main Menu", c.Menus.Top().Title())

	c.Handle(g, engineinput.NewKey("escape"))
	assert.Zero(t, c.Menus.Len())
	assert.False(t, c.Quit)

	c.Handle(g, engineinput.NewKey("ctrl_c"))
	assert.True(t, c.Quit)
}

func TestAnyKeyLeavesEnding(t *testing.T) {
	g, b := newTestGame(t)
	spawnPlayer(g, b, world.NewPosition(3, 3, 0))
	g.Mode = event.ModeGoodEnd
	c := NewController()

	c.Handle(g, engineinput.NewKey("z"))
	assert.True(t, c.Quit)
}

func TestCliTyping(t *testing.T) {
	g, b := newTestGame(t)
	spawnPlayer(g, b, world.NewPosition(3, 3, 0))
	g.Planq.ActionMode = planq.ActionCliInput
	c := NewController()

	for _, code := range []string{"h", "e", "l", "x", "backspace", "p"} {
		c.Handle(g, engineinput.NewKey(code))
	}
	assert.Equal(t, "help", c.Cli.String())
	c.Handle(g, engineinput.NewKey("enter"))
	assert.Empty(t, c.Cli.String())

	g.Inbox.Drain(g.Bus)
	pending := g.Bus.Planq.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, event.Command("help"), pending[0])
	assert.Empty(t, g.Bus.Game.Pending(), "shell keys never move the player")

	c.Handle(g, engineinput.NewKey("escape"))
	g.Inbox.Drain(g.Bus)
	assert.Equal(t, event.PlanqCliClose, g.Bus.Planq.Pending()[1].Type)
}
