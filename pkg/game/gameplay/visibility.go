package gameplay

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

// UpdateVisibility recomputes every dirty viewshed. The player's view also
// reveals tiles and refreshes the visible layer; viewers with a Memory record
// what they saw on each tile.
func UpdateVisibility(g *state.Game) {
	for _, e := range entity.Collect[entity.Viewshed](g.Store, []ecs.Comp{ecs.C[entity.Position]()}, nil) {
		vs := g.Store.Viewsheds.Get(e)
		if !vs.Dirty {
			continue
		}
		origin := *g.Store.Positions.Get(e)
		level := g.Model.Level(origin.Z)
		vs.VisiblePoints = world.ComputeFOV(level, origin, vs.Range)
		vs.Dirty = false

		if g.Store.Players.Has(e) {
			for _, l := range g.Model.Levels {
				l.ClearVisible()
			}
			for _, p := range vs.VisiblePoints {
				idx := level.Index(p.X, p.Y)
				level.Revealed[idx] = true
				level.Visible[idx] = true
			}
		}

		if mem := g.Store.Memories.Get(e); mem != nil {
			remember(g, mem, e, vs.VisiblePoints)
		}
	}
}

// remember overwrites memory for every seen tile with what is there now
func remember(g *state.Game, mem *entity.Memory, viewer ecs.Entity, seen []world.Position) {
	if mem.Visual == nil {
		mem.Visual = make(map[world.Position][]ecs.Entity)
	}
	for _, p := range seen {
		var there []ecs.Entity
		for _, e := range g.Model.ContentsAt(p) {
			if e != viewer {
				there = append(there, e)
			}
		}
		if len(there) == 0 {
			delete(mem.Visual, p)
			continue
		}
		mem.Visual[p] = there
	}
}
