package savestate

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/mason"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/game/setup"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

func init() {
	logger.Silence()
}

const cabin = `{
  "map_list": [
    {"width": 8, "height": 5, "tilemap": [
      "########",
      "#......#",
      "#......#",
      "#......#",
      "########"]}
  ],
  "room_list": [
    {"name": "Cabin", "exits": [], "corner": [0, 0, 0], "width": 7, "height": 4, "contents": [["key", 1], ["snack", 1]]}
  ],
  "ladder_list": [],
  "lock_list": []
}`

func newGame(t *testing.T) *state.Game {
	t.Helper()
	bp, err := mason.LoadJSON(strings.NewReader(cabin))
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Seed = 5
	cfg.Start = world.NewPosition(2, 2, 0)
	cfg.Goal = world.Invalid
	g, err := setup.Build(cfg, bp)
	require.NoError(t, err)
	return g
}

// pocket moves item from the floor into holder's inventory
func pocket(g *state.Game, holder, item ecs.Entity) {
	at := *g.Store.Positions.Get(item)
	g.Model.RemoveOccupant(item, at)
	g.Store.Positions.Remove(item)
	g.Store.Portables.Get(item).Carrier = holder
	g.Store.IsCarrieds.Set(item, entity.IsCarried{})
}

func TestRoundTrip(t *testing.T) {
	g := newGame(t)
	player := g.Player()
	key, ok := g.Store.FindByName("_key_1")
	require.True(t, ok)
	pocket(g, player, key)
	g.Planq.CPUMode = planq.Idle
	g.Monitor.RawData[planq.SourceBattery] = planq.PercentValue(42)
	g.Tick = 77
	g.Log.TellPlayer("before the save")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Capture(g)))

	// keep playing, then go back
	g.Tick = 90
	g.Log.TellPlayer("after the save")
	g.Store.Despawn(key)

	snap, err := Read(&buf)
	require.NoError(t, err)
	require.NoError(t, Restore(snap, g))

	assert.EqualValues(t, 77, g.Tick)
	assert.Equal(t, event.ModeRunning, g.Mode)
	assert.Equal(t, "before the save", g.Log.Last(msglog.ChannelWorld))
	assert.Equal(t, planq.Idle, g.Planq.CPUMode)
	assert.Equal(t, "42%", g.Monitor.RawData[planq.SourceBattery].String())

	player, ok = g.Store.Player()
	require.True(t, ok)
	assert.Equal(t, world.NewPosition(2, 2, 0), g.PlayerPosition())
	assert.Contains(t, g.Model.ContentsAt(g.PlayerPosition()), player, "occupancy rebuilt")

	key, ok = g.Store.FindByName("_key_1")
	require.True(t, ok)
	assert.True(t, g.Store.IsHolding(player, key), "carrier remapped to the restored player")
	assert.True(t, g.Store.IsCarrieds.Has(key))
	assert.Nil(t, g.Store.Positions.Get(key))

	level := g.Model.Level(0)
	assert.True(t, level.IsBlocked(0, 0), "derived layers rebuilt")
}

func TestProcessedEventsRoundTrip(t *testing.T) {
	g := newGame(t)
	player := g.Player()
	key, ok := g.Store.FindByName("_key_1")
	require.True(t, ok)
	g.Processed = []event.GameEvent{
		event.NewPlayerAction(event.Move(world.East), player, ecs.Entity{}),
		event.NewPlayerAction(event.Action(event.MoveItem), player, key),
		event.NewNotice("You don't have a PLANQ."),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Capture(g)))
	g.Processed = nil
	g.Store.Despawn(key)

	snap, err := Read(&buf)
	require.NoError(t, err)
	require.NoError(t, Restore(snap, g))

	require.Len(t, g.Processed, 3)
	player = g.Player()
	key, ok = g.Store.FindByName("_key_1")
	require.True(t, ok)

	assert.Equal(t, event.Move(world.East), g.Processed[0].Action)
	assert.Equal(t, player, g.Processed[0].Subject())
	assert.True(t, g.Processed[0].Object().IsZero())
	assert.True(t, g.Processed[1].IsAction(event.MoveItem))
	assert.Equal(t, player, g.Processed[1].Subject(), "subject remapped")
	assert.Equal(t, key, g.Processed[1].Object(), "object remapped")
	assert.Equal(t, event.Notice, g.Processed[2].Type)
	assert.Nil(t, g.Processed[2].Context)

	last, ok := g.LastAction()
	require.True(t, ok)
	assert.True(t, last.IsAction(event.MoveItem))
}

func TestProcessedDanglingObjectBecomesPlaceholder(t *testing.T) {
	g := newGame(t)
	key, ok := g.Store.FindByName("_key_1")
	require.True(t, ok)
	g.Processed = []event.GameEvent{event.NewPlayerAction(event.Action(event.Examine), g.Player(), key)}

	snap := Capture(g)
	snap.Processed[0].Object = 999
	require.NoError(t, Restore(snap, g))

	require.Len(t, g.Processed, 1)
	assert.Equal(t, g.Player(), g.Processed[0].Subject())
	assert.Equal(t, entity.Placeholder, g.Processed[0].Object())
}

func TestDanglingReferenceBecomesPlaceholder(t *testing.T) {
	g := newGame(t)
	snack, ok := g.Store.FindByName("_snack_2")
	require.True(t, ok)
	pocket(g, g.Player(), snack)

	snap := Capture(g)
	for i, rec := range snap.Entities {
		if rec.Portable != nil && *rec.Portable != 0 {
			gone := uint64(999)
			snap.Entities[i].Portable = &gone
		}
	}
	require.NoError(t, Restore(snap, g))

	snack, ok = g.Store.FindByName("_snack_2")
	require.True(t, ok)
	assert.Equal(t, entity.Placeholder, g.Store.Portables.Get(snack).Carrier)
}

func TestRejectsOtherVersions(t *testing.T) {
	_, err := Read(strings.NewReader(`{"version": 99}`))
	assert.ErrorIs(t, err, ErrVersion)

	g := newGame(t)
	snap := Capture(g)
	snap.Version = 0
	assert.ErrorIs(t, Restore(snap, g), ErrVersion)

	_, err = Read(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	g := newGame(t)
	path := filepath.Join(t.TempDir(), "save.json")
	persist := Handler(path)

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Error(t, persist(g, event.GameEvent{Type: event.LoadRequest}))

	g.Tick = 12
	require.NoError(t, persist(g, event.GameEvent{Type: event.SaveRequest}))
	assert.Equal(t, "Game saved.", g.Log.Last(msglog.ChannelWorld))

	g.Tick = 40
	require.NoError(t, persist(g, event.GameEvent{Type: event.LoadRequest}))
	assert.EqualValues(t, 12, g.Tick)
	assert.Equal(t, "Game loaded.", g.Log.Last(msglog.ChannelWorld))
}
