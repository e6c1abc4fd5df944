package setup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/mason"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

func init() {
	logger.Silence()
}

// cabin and pod share a wall; the door between them takes key 1
func twoRooms(contents string) string {
	return `{
  "map_list": [
    {"width": 12, "height": 5, "tilemap": [
      "############",
      "#....#.....#",
      "#....=.....#",
      "#....#.....#",
      "############"]}
  ],
  "room_list": [
    {"name": "Cabin", "exits": ["Pod"], "corner": [0, 0, 0], "width": 5, "height": 4, "contents": [` + contents + `]},
    {"name": "Pod", "exits": ["Cabin"], "corner": [5, 0, 0], "width": 6, "height": 4, "contents": []}
  ],
  "ladder_list": [],
  "lock_list": [{"at": [5, 2, 0], "key_id": 1}]
}`
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 11
	cfg.Start = world.NewPosition(2, 2, 0)
	cfg.Goal = world.NewPosition(9, 2, 0)
	return cfg
}

func load(t *testing.T, doc string) *mason.Blueprint {
	t.Helper()
	bp, err := mason.LoadJSON(strings.NewReader(doc))
	require.NoError(t, err)
	return bp
}

func TestBuildPlacesEverything(t *testing.T) {
	cfg := testConfig()
	g, err := Build(cfg, load(t, twoRooms(`["key", 1], ["snack", 2]`)))
	require.NoError(t, err)

	assert.Equal(t, event.ModeRunning, g.Mode)
	assert.Equal(t, cfg.Start, g.PlayerPosition())

	handheld, ok := g.Store.Planq()
	require.True(t, ok)
	assert.Equal(t, cfg.Start, *g.Store.Positions.Get(handheld))
	assert.False(t, g.Store.IsCarrieds.Has(handheld))

	door := g.Model.ContentsAt(world.NewPosition(5, 2, 0))
	require.Len(t, door, 1)
	lock := g.Store.Lockables.Get(door[0])
	require.NotNil(t, lock)
	assert.True(t, lock.IsLocked)
	assert.Equal(t, 1, lock.KeyID)
	assert.True(t, g.Store.Obstructives.Has(door[0]))

	key, ok := g.Store.FindByName("_key_2")
	require.True(t, ok, "doors are numbered before contents")
	assert.Equal(t, "Cabin", g.Model.RoomNameAt(*g.Store.Positions.Get(key)))

	timers := entity.Collect[entity.DataSampleTimer](g.Store, nil, nil)
	assert.Len(t, timers, len(planq.DefaultSources))
	assert.True(t, strings.HasPrefix(g.Log.Last(msglog.ChannelWorld), "Get to the escape pod"))
}

func TestBuildRejectsUnreachableGoal(t *testing.T) {
	_, err := Build(testConfig(), load(t, twoRooms(`["snack", 1]`)))
	assert.ErrorIs(t, err, ErrUnsolvable)
}

func TestBuildRejectsStartInWall(t *testing.T) {
	cfg := testConfig()
	cfg.Start = world.NewPosition(0, 0, 0)
	_, err := Build(cfg, load(t, twoRooms("")))
	assert.Error(t, err)

	cfg.Start = world.NewPosition(40, 2, 0)
	_, err = Build(cfg, load(t, twoRooms("")))
	assert.Error(t, err)
}

func TestSkipsUnknownItems(t *testing.T) {
	g, err := Build(testConfig(), load(t, twoRooms(`["key", 1], ["warp core", 1]`)))
	require.NoError(t, err)
	for _, e := range g.Store.All() {
		assert.NotContains(t, g.Store.Name(e), "warp")
	}
}

func TestReachableStopsAtLockedDoors(t *testing.T) {
	cfg := testConfig()
	g, err := Build(cfg, load(t, twoRooms(`["key", 1]`)))
	require.NoError(t, err)

	without := Reachable(g, cfg.Start, mapset.New[int]())
	assert.False(t, without.Has(cfg.Goal))
	assert.True(t, without.Has(world.NewPosition(4, 3, 0)))

	keys := mapset.New[int]()
	keys.Put(1)
	assert.True(t, Reachable(g, cfg.Start, keys).Has(cfg.Goal))
	assert.True(t, Solvable(g, cfg.Start, cfg.Goal))
}

func TestStillConnectedIfBlocked(t *testing.T) {
	cfg := testConfig()
	g, err := Build(cfg, load(t, twoRooms(`["key", 1]`)))
	require.NoError(t, err)

	assert.False(t, StillConnectedIfBlocked(g, cfg.Start, world.NewPosition(5, 2, 0)), "the doorway is the only way through")
	assert.False(t, StillConnectedIfBlocked(g, cfg.Start, cfg.Start))
	assert.True(t, StillConnectedIfBlocked(g, cfg.Start, world.NewPosition(1, 1, 0)))
	assert.True(t, StillConnectedIfBlocked(g, cfg.Start, world.NewPosition(0, 0, 0)), "walls were never reachable")
}

func TestNewGameLoadsShipMap(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 3
	cfg.MapPath = "../../../resources/map.json"
	g, err := NewGame(cfg)
	require.NoError(t, err)

	assert.Len(t, g.Model.Levels, 2)
	assert.Equal(t, "Bridge", g.Model.RoomNameAt(g.PlayerPosition()))
	assert.Equal(t, "Escape Pod", g.Model.RoomNameAt(cfg.Goal))
	assert.True(t, Solvable(g, cfg.Start, cfg.Goal))

	_, ok := g.Store.FindByName("terminal")
	assert.True(t, ok)
	lmr := entity.Collect[entity.LMR](g.Store, nil, nil)
	require.Len(t, lmr, 1)
	assert.Equal(t, LMRRoom, g.Model.RoomNameAt(*g.Store.Positions.Get(lmr[0])))
}

func TestNewGameMissingMap(t *testing.T) {
	cfg := config.Default()
	cfg.MapPath = "does/not/exist.json"
	_, err := NewGame(cfg)
	assert.Error(t, err)
}
