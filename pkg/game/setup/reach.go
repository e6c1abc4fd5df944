package setup

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

// Reachable returns every position a walker can get to from start by BFS,
// through doors and along portals. A locked door is passable only when its
// key is in keys; extra positions are treated as impassable.
func Reachable(g *state.Game, start world.Position, keys mapset.Set[int], extra ...world.Position) mapset.Set[world.Position] {
	blocked := mapset.New[world.Position]()
	for _, p := range extra {
		blocked.Put(p)
	}
	seen := mapset.New[world.Position]()
	queue := []world.Position{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen.Has(current) || blocked.Has(current) || !passable(g, current, keys) {
			continue
		}
		seen.Put(current)

		for _, d := range world.PlanarDirections() {
			if n := current.Step(d); !seen.Has(n) {
				queue = append(queue, n)
			}
		}
		if exit := g.Model.GetExit(current); exit != world.Invalid && !seen.Has(exit) {
			queue = append(queue, exit)
		}
	}
	return seen
}

// passable reports whether a walker holding keys can stand on p
func passable(g *state.Game, p world.Position, keys mapset.Set[int]) bool {
	tile := g.Model.TileAt(p)
	if tile == nil || (tile.Type != world.Floor && tile.Type != world.Stairway) {
		return false
	}
	for _, e := range g.Model.ContentsAt(p) {
		if lock := g.Store.Lockables.Get(e); lock != nil && lock.IsLocked && !keys.Has(lock.KeyID) {
			return false
		}
		// closed doors open; anything else obstructive stays put
		if g.Store.Obstructives.Has(e) && !g.Store.Openables.Has(e) {
			return false
		}
	}
	return true
}

// Solvable reports whether goal can be reached from start, collecting every
// key lying within reach and retrying until no new key turns up
func Solvable(g *state.Game, start, goal world.Position) bool {
	keys := mapset.New[int]()
	for {
		seen := Reachable(g, start, keys)
		if seen.Has(goal) {
			return true
		}
		found := false
		seen.Each(func(p world.Position) {
			for _, e := range g.Model.ContentsAt(p) {
				if key := g.Store.Keys.Get(e); key != nil && !keys.Has(key.KeyID) {
					keys.Put(key.KeyID)
					found = true
				}
			}
		})
		if !found {
			return false
		}
	}
}

// StillConnectedIfBlocked reports whether putting an obstacle on p leaves
// every other position reachable from start, ignoring locks
func StillConnectedIfBlocked(g *state.Game, start, p world.Position) bool {
	if p == start {
		return false
	}
	all := allKeys(g)
	before := Reachable(g, start, all)
	if !before.Has(p) {
		return true
	}
	after := Reachable(g, start, all, p)
	return after.Size() == before.Size()-1
}

func allKeys(g *state.Game) mapset.Set[int] {
	keys := mapset.New[int]()
	for _, level := range g.Model.Levels {
		level.ForEachTile(func(_, _ int, tile *world.Tile) {
			for _, e := range tile.Entities() {
				if lock := g.Store.Lockables.Get(e); lock != nil {
					keys.Put(lock.KeyID)
				}
			}
		})
	}
	return keys
}
