package world

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalExitFrom(t *testing.T) {
	a, b := NewPosition(5, 5, 0), NewPosition(7, 7, 1)

	t.Run("bidirectional", func(t *testing.T) {
		p := NewPortal(a, b, true)
		for _, x := range []Position{a, b} {
			assert.Equal(t, x, p.ExitFrom(p.ExitFrom(x)))
		}
	})
	t.Run("one way", func(t *testing.T) {
		p := NewPortal(a, b, false)
		assert.Equal(t, b, p.ExitFrom(a))
		assert.Equal(t, Invalid, p.ExitFrom(b))
		assert.Equal(t, Invalid, p.ExitFrom(NewPosition(1, 1, 0)))
	})
	t.Run("equal ignores direction", func(t *testing.T) {
		assert.True(t, NewPortal(a, b, true).Equal(NewPortal(b, a, false)))
	})
}

func TestModelPortals(t *testing.T) {
	m := NewModel()
	m.AddLevel(NewMap(10, 10))
	m.AddLevel(NewMap(10, 10))
	a, b := NewPosition(5, 5, 0), NewPosition(7, 7, 1)

	require.True(t, m.AddPortal(a, b, true))
	assert.False(t, m.AddPortal(b, a, true), "duplicate portal")
	assert.Equal(t, b, m.GetExit(a))
	assert.Equal(t, a, m.GetExit(b))
	assert.Equal(t, Invalid, m.GetExit(NewPosition(1, 1, 0)))
}

func TestTileContentsOrdering(t *testing.T) {
	w := ecs.NewWorld(8)
	low, mid, mid2, high := w.NewEntity(), w.NewEntity(), w.NewEntity(), w.NewEntity()
	m := NewMap(3, 3)

	m.TileAt(1, 1).AddOccupant(0, low)
	m.TileAt(1, 1).AddOccupant(30, high)
	m.TileAt(1, 1).AddOccupant(10, mid)
	m.TileAt(1, 1).AddOccupant(10, mid2)

	top, ok := m.GetVisibleEntityAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, high, top)
	assert.Equal(t, []ecs.Entity{high, mid2, mid, low}, m.TileAt(1, 1).Entities())

	require.True(t, m.TileAt(1, 1).RemoveOccupant(high))
	top, _ = m.GetVisibleEntityAt(1, 1)
	assert.Equal(t, mid2, top, "ties go to the most recent arrival")
	assert.False(t, m.TileAt(1, 1).RemoveOccupant(high))

	assert.False(t, m.IsOccupied(0, 0))
	_, ok = m.GetVisibleEntityAt(5, 5)
	assert.False(t, ok)
}

func TestModelOccupants(t *testing.T) {
	w := ecs.NewWorld(8)
	e := w.NewEntity()
	m := NewModel()
	m.AddLevel(NewMap(4, 4))
	from, to := NewPosition(1, 1, 0), NewPosition(2, 1, 0)

	require.True(t, m.AddOccupant(0, e, from))
	m.MoveOccupant(0, e, from, to)
	assert.Empty(t, m.ContentsAt(from))
	assert.Equal(t, []ecs.Entity{e}, m.ContentsAt(to))

	assert.Equal(t, 1, m.PurgeOccupant(e))
	assert.Empty(t, m.ContentsAt(to))
	assert.False(t, m.AddOccupant(0, e, NewPosition(9, 9, 0)))
}

func TestUpdateTilemaps(t *testing.T) {
	m := NewMap(3, 1)
	m.SetTile(0, 0, Wall)
	m.SetTile(1, 0, Floor)
	m.UpdateTilemaps()

	assert.True(t, m.IsBlocked(0, 0))
	assert.True(t, m.IsOpaque(0, 0))
	assert.False(t, m.IsBlocked(1, 0))
	assert.False(t, m.IsBlocked(2, 0), "vacuum is not a wall")
	assert.True(t, m.IsBlocked(-1, 0), "off the map counts as blocked")
}

func room(width, height int) *Map {
	m := NewMap(width, height)
	m.ForEachTile(func(x, y int, tile *Tile) {
		if x == 0 || y == 0 || x == width-1 || y == height-1 {
			m.SetTile(x, y, Wall)
		} else {
			m.SetTile(x, y, Floor)
		}
	})
	m.UpdateTilemaps()
	return m
}

func TestComputeFOV(t *testing.T) {
	m := room(12, 12)
	origin := NewPosition(2, 2, 0)

	visible := ComputeFOV(m, origin, DefaultViewRange)
	assert.Contains(t, visible, origin)
	assert.Contains(t, visible, NewPosition(0, 0, 0), "walls themselves are seen")
	assert.Contains(t, visible, NewPosition(9, 2, 0))
	for _, p := range visible {
		assert.True(t, m.InBounds(p.X, p.Y), "%s stays on the map", p)
	}

	// a wall column at x=4 hides everything east of it
	for y := 1; y < 11; y++ {
		m.SetTile(4, y, Wall)
	}
	m.UpdateTilemaps()
	visible = ComputeFOV(m, origin, DefaultViewRange)
	assert.Contains(t, visible, NewPosition(4, 2, 0))
	assert.NotContains(t, visible, NewPosition(6, 2, 0))
	assert.False(t, HasLineOfSight(m, origin, NewPosition(6, 2, 0), DefaultViewRange))
}

func TestComputeFOVRange(t *testing.T) {
	m := room(30, 30)
	visible := ComputeFOV(m, NewPosition(15, 15, 0), 3)
	assert.Contains(t, visible, NewPosition(18, 15, 0))
	assert.NotContains(t, visible, NewPosition(19, 15, 0))
	assert.Nil(t, ComputeFOV(nil, NewPosition(1, 1, 0), 3))
}

func TestShipGraph(t *testing.T) {
	g := NewShipGraph()
	bridge := g.AddRoom(NewGraphRoom("Bridge", NewPosition(0, 0, 0), 4, 4))
	galley := g.AddRoom(NewGraphRoom("Galley", NewPosition(4, 0, 0), 4, 4))
	hall := g.AddRoom(NewHallway("hallway", []Position{NewPosition(1, 5, 0), NewPosition(2, 5, 0), NewPosition(3, 5, 0)}))

	g.Connect(bridge, galley)
	g.Connect(bridge, hall)
	assert.Equal(t, []int{hall, galley}, g.Successors(bridge))
	assert.Empty(t, g.Successors(galley))
	assert.Equal(t, NoDoor, g.Connect(bridge, 9))

	assert.Equal(t, "Bridge", g.RoomNameAt(NewPosition(1, 1, 0)))
	assert.Equal(t, "Galley", g.RoomNameAt(NewPosition(6, 2, 0)))
	assert.Equal(t, "hallway", g.RoomNameAt(NewPosition(2, 5, 0)))
	assert.Equal(t, "", g.RoomNameAt(NewPosition(2, 2, 1)))
	assert.Equal(t, NewPosition(2, 5, 0), g.Rooms[hall].Center)

	open := g.Rooms[bridge].OpenCells()
	assert.Len(t, open, 9)
	require.True(t, g.ClaimCell(bridge, open[0]))
	assert.False(t, g.ClaimCell(bridge, open[0]))
	assert.Len(t, g.Rooms[bridge].OpenCells(), 8)

	rng := rand.New(rand.NewSource(1))
	for range 20 {
		p, ok := g.RandomOpenCell("Bridge", rng)
		require.True(t, ok)
		assert.NotEqual(t, open[0], p)
	}
	_, ok := g.RandomOpenCell("Engine Room", rng)
	assert.False(t, ok)
}

func TestDoorMarginsStayClear(t *testing.T) {
	g := NewShipGraph()
	bridge := g.AddRoom(NewGraphRoom("Bridge", NewPosition(0, 0, 0), 6, 6))
	require.True(t, g.AddDoorToMapAt(NewPosition(6, 3, 0)))
	assert.Equal(t, CellMargin, g.Rooms[bridge].Interior[NewPosition(5, 3, 0)])
	assert.False(t, g.ClaimCell(bridge, NewPosition(5, 3, 0)))
	assert.False(t, g.AddDoorToMapAt(NewPosition(40, 3, 0)))
}

func TestPositionKeysJSON(t *testing.T) {
	in := map[Position]int{NewPosition(1, 2, 3): 4, NewPosition(-1, 0, 0): 5}
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"1,2,3":4`)

	var out map[Position]int
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestLine(t *testing.T) {
	line := Line(NewPosition(0, 0, 2), NewPosition(3, 1, 2))
	require.Len(t, line, 4)
	assert.Equal(t, NewPosition(0, 0, 2), line[0])
	assert.Equal(t, NewPosition(3, 1, 2), line[3])
	assert.Equal(t, []Position{NewPosition(1, 1, 0)}, Line(NewPosition(1, 1, 0), NewPosition(1, 1, 0)))
}

func TestDirections(t *testing.T) {
	assert.Len(t, PlanarDirections(), 8)
	assert.Len(t, AllDirections(), 10)
	for _, d := range AllDirections() {
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.True(t, d.IsValid())
	}
	assert.Equal(t, NewPosition(3, 2, 0), NewPosition(2, 3, 0).Step(NorthEast))
	assert.True(t, Up.IsVertical())
	assert.False(t, West.IsVertical())
}
