// Package camera flattens the player's surroundings into the grid of cells the
// renderer draws.
package camera

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// Reticle corner glyphs, clockwise from the upper left
var reticleCorners = [4]string{"┌", "┐", "┘", "└"}

// View is the projected screen: Width x Height cells centered on the player
type View struct {
	Width   int
	Height  int
	Cells   []world.ScreenCell
	Origin  world.Position // world coords of the upper left cell
	Reticle world.Position // world.Invalid hides the reticle
}

// New creates a blank view
func New(width, height int) *View {
	v := &View{Reticle: world.Invalid}
	v.Resize(width, height)
	return v
}

// Resize changes the view size and blanks it
func (v *View) Resize(width, height int) {
	v.Width = max(0, width)
	v.Height = max(0, height)
	v.Cells = make([]world.ScreenCell, v.Width*v.Height)
	for i := range v.Cells {
		v.Cells[i] = world.Background
	}
}

// At returns the cell at screen coords x, y
func (v *View) At(x, y int) world.ScreenCell {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return world.Background
	}
	return v.Cells[y*v.Width+x]
}

// ScreenToWorld maps screen coords to a world position on the projected deck
func (v *View) ScreenToWorld(x, y int) world.Position {
	return world.NewPosition(v.Origin.X+x, v.Origin.Y+y, v.Origin.Z)
}

func (v *View) set(x, y int, c world.ScreenCell) {
	if x >= 0 && y >= 0 && x < v.Width && y < v.Height {
		v.Cells[y*v.Width+x] = c
	}
}

// Project rebuilds the view around viewer using its viewshed and memory
func (v *View) Project(store *entity.Store, model *world.Model, viewer ecs.Entity) {
	posn := store.Positions.Get(viewer)
	if posn == nil {
		v.Resize(v.Width, v.Height)
		return
	}
	center := *posn
	v.Origin = world.NewPosition(center.X-v.Width/2, center.Y-v.Height/2, center.Z)
	level := model.Level(center.Z)
	viewshed := store.Viewsheds.Get(viewer)
	var visible map[world.Position]bool
	if viewshed != nil {
		visible = make(map[world.Position]bool, len(viewshed.VisiblePoints))
		for _, p := range viewshed.VisiblePoints {
			visible[p] = true
		}
	}
	memory := store.Memories.Get(viewer)

	for sy := 0; sy < v.Height; sy++ {
		for sx := 0; sx < v.Width; sx++ {
			p := v.ScreenToWorld(sx, sy)
			v.set(sx, sy, v.cellAt(store, level, p, center, viewer, visible, memory))
		}
	}

	if v.Reticle.IsValid() && v.Reticle.Z == center.Z {
		rx, ry := v.Reticle.X-v.Origin.X, v.Reticle.Y-v.Origin.Y
		offsets := [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for i, o := range offsets {
			cell := v.At(rx+o[0], ry+o[1])
			cell.Glyph = reticleCorners[i]
			cell.Fg = world.Yellow
			v.set(rx+o[0], ry+o[1], cell)
		}
	}
}

func (v *View) cellAt(store *entity.Store, level *world.Map, p, center world.Position, viewer ecs.Entity,
	visible map[world.Position]bool, memory *entity.Memory) world.ScreenCell {
	if level == nil || !level.IsRevealed(p.X, p.Y) {
		return world.Background
	}
	cell := level.TileAt(p.X, p.Y).Cell
	switch {
	case p == center:
		if c, ok := store.CellOf(viewer, p); ok {
			return c
		}
		return cell
	case visible[p]:
		if e, ok := level.GetVisibleEntityAt(p.X, p.Y); ok {
			if c, ok := store.CellOf(e, p); ok {
				return c
			}
		}
		return cell
	default:
		if memory != nil {
			for _, e := range memory.Recall(p) {
				if c, ok := rememberedCell(store, e, p); ok {
					return c.Dimmed()
				}
			}
		}
		return cell.Dimmed()
	}
}

// rememberedCell draws a remembered entity even if it has since moved away
func rememberedCell(store *entity.Store, e ecs.Entity, p world.Position) (world.ScreenCell, bool) {
	if c, ok := store.CellOf(e, p); ok {
		return c, true
	}
	if body := store.Bodies.Get(e); body != nil && len(body.Extent) > 0 {
		return body.Extent[0].Cell, true
	}
	return world.ScreenCell{}, false
}
