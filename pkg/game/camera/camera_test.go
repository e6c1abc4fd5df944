package camera

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

var (
	playerCell = world.NewScreenCell("@", world.Yellow)
	crateCell  = world.NewScreenCell("&", world.Cyan)
)

// scene is a 9x9 floor with the player at its center
func scene(t *testing.T) (*entity.Store, *world.Model, ecs.Entity) {
	t.Helper()
	level := world.NewMap(9, 9)
	level.ForEachTile(func(x, y int, _ *world.Tile) {
		level.SetTile(x, y, world.Floor)
	})
	model := world.NewModel()
	model.AddLevel(level)

	s := entity.NewStore()
	player := s.Spawn()
	at := world.NewPosition(4, 4, 0)
	s.Positions.Set(player, at)
	s.Bodies.Set(player, entity.NewBody(at, playerCell))
	s.Viewsheds.Set(player, entity.NewViewshed(3))
	s.Memories.Set(player, entity.NewMemory())
	return s, model, player
}

func reveal(m *world.Model, ps ...world.Position) {
	for _, p := range ps {
		level := m.Level(p.Z)
		level.Revealed[level.Index(p.X, p.Y)] = true
	}
}

func TestProjectCentersOnViewer(t *testing.T) {
	s, model, player := scene(t)
	reveal(model, world.NewPosition(4, 4, 0))

	v := New(5, 3)
	v.Project(s, model, player)
	assert.Equal(t, world.NewPosition(2, 3, 0), v.Origin)
	assert.Equal(t, playerCell, v.At(2, 1))
	assert.Equal(t, world.Background, v.At(0, 0), "unrevealed")
	assert.Equal(t, world.Background, v.At(-1, 7), "off screen")
	assert.Equal(t, world.NewPosition(4, 4, 0), v.ScreenToWorld(2, 1))
}

func TestProjectVisibleAndRemembered(t *testing.T) {
	s, model, player := scene(t)
	near, far := world.NewPosition(5, 4, 0), world.NewPosition(4, 2, 0)
	reveal(model, near, far, world.NewPosition(3, 4, 0))

	crate := s.Spawn()
	s.Bodies.Set(crate, entity.NewBody(near, crateCell))
	model.AddOccupant(10, crate, near)
	old := s.Spawn()
	s.Bodies.Set(old, entity.NewBody(world.NewPosition(8, 8, 0), crateCell))

	s.Viewsheds.Get(player).VisiblePoints = []world.Position{world.NewPosition(4, 4, 0), near, world.NewPosition(3, 4, 0)}
	s.Memories.Get(player).Visual[far] = []ecs.Entity{old}

	v := New(9, 9)
	v.Project(s, model, player)
	assert.Equal(t, crateCell, v.At(5, 4))
	assert.Equal(t, world.Floor.DefaultCell(), v.At(3, 4), "visible empty floor")
	assert.Equal(t, crateCell.Dimmed(), v.At(4, 2), "remembered entity after it moved")

	delete(s.Memories.Get(player).Visual, far)
	v.Project(s, model, player)
	assert.Equal(t, world.Floor.DefaultCell().Dimmed(), v.At(4, 2), "remembered terrain")
}

func TestProjectReticle(t *testing.T) {
	s, model, player := scene(t)
	reveal(model, world.NewPosition(4, 4, 0))
	v := New(9, 9)
	v.Reticle = world.NewPosition(4, 4, 0)
	v.Project(s, model, player)

	corners := map[[2]int]string{{3, 3}: "┌", {5, 3}: "┐", {5, 5}: "┘", {3, 5}: "└"}
	for at, glyph := range corners {
		cell := v.At(at[0], at[1])
		assert.Equal(t, glyph, cell.Glyph)
		assert.Equal(t, world.Yellow, cell.Fg)
	}
	assert.Equal(t, playerCell, v.At(4, 4), "the target itself is not covered")

	v.Reticle = world.NewPosition(4, 4, 1)
	v.Project(s, model, player)
	assert.Equal(t, world.Background, v.At(3, 3), "reticle on another deck is hidden")
}

func TestProjectWithoutPosition(t *testing.T) {
	s, model, player := scene(t)
	s.Positions.Remove(player)
	v := New(3, 3)
	v.Cells[0] = playerCell
	v.Project(s, model, player)
	assert.Equal(t, world.Background, v.At(0, 0))
	assert.Len(t, v.Cells, 9)
}
