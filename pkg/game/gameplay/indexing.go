package gameplay

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

// IndexMaps rebuilds every deck's blocked and opaque layers from terrain plus
// the obstructive and opaque entities standing on it
func IndexMaps(g *state.Game) {
	for _, level := range g.Model.Levels {
		level.UpdateTilemaps()
	}
	for _, e := range entity.Collect[entity.Position](g.Store, nil, nil) {
		obstructs := g.Store.Obstructives.Has(e)
		opaque := false
		if o := g.Store.Opaques.Get(e); o != nil {
			opaque = o.Opaque
		}
		if !obstructs && !opaque {
			continue
		}
		for _, p := range footprint(g, e) {
			level := g.Model.Level(p.Z)
			if level == nil || !level.InBounds(p.X, p.Y) {
				continue
			}
			idx := level.Index(p.X, p.Y)
			if obstructs {
				level.Blocked[idx] = true
			}
			if opaque {
				level.Opaque[idx] = true
			}
		}
	}
}

// footprint lists the tiles an entity covers: its body if it has one, else its position
func footprint(g *state.Game, e ecs.Entity) []world.Position {
	if body := g.Store.Bodies.Get(e); body != nil && len(body.Extent) > 0 {
		out := make([]world.Position, len(body.Extent))
		for i, glyph := range body.Extent {
			out[i] = glyph.Pos
		}
		return out
	}
	if p := g.Store.Positions.Get(e); p != nil {
		return []world.Position{*p}
	}
	return nil
}
