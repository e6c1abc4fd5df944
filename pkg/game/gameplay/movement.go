// Package gameplay runs the per-tick action pipeline: it reads the events
// queued for a tick and applies them to the entity store and world model.
package gameplay

import (
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// maxGroundListing is the most item names listed when the player steps onto a pile
const maxGroundListing = 3

// MoveEntity tries to step subject one tile in dir, or through a portal for Up and Down
func MoveEntity(g *state.Game, subject ecs.Entity, dir world.Direction) bool {
	posn := g.Store.Positions.Get(subject)
	if posn == nil {
		logger.For("movement").WithField("entity", g.Store.Serial(subject)).Warn("move request for entity without a position")
		return false
	}
	from := *posn
	isPlayer := g.Store.Players.Has(subject)

	target, ok := moveTarget(g, from, dir, isPlayer)
	if !ok {
		return false
	}
	if reason, blocked := obstructionAt(g, subject, target); blocked {
		if isPlayer {
			tell(g, "The way %s is blocked by a %s.", dir.String(), reason)
		}
		return false
	}

	g.Store.Positions.Set(subject, target)
	if body := g.Store.Bodies.Get(subject); body != nil {
		body.MoveTo(target)
	}
	g.Model.MoveOccupant(g.Store.Priority(subject), subject, from, target)
	if vs := g.Store.Viewsheds.Get(subject); vs != nil {
		vs.Dirty = true
	}
	if desc := g.Store.Descriptions.Get(subject); desc != nil {
		if room := g.Model.RoomNameAt(target); room != "" {
			desc.Locn = room
		}
	}
	if isPlayer {
		describeGround(g, subject, target)
	}
	return true
}

// moveTarget resolves where a step in dir leads, reporting failures to the player
func moveTarget(g *state.Game, from world.Position, dir world.Direction, isPlayer bool) (world.Position, bool) {
	if !dir.IsVertical() {
		target := from.Step(dir)
		if !g.Model.InBounds(target) {
			if isPlayer {
				tell(g, "There is no way to go %s from here.", dir.String())
			}
			return world.Invalid, false
		}
		return target, true
	}

	tile := g.Model.TileAt(from)
	exit := g.Model.GetExit(from)
	wrongWay := (dir == world.Up && exit.Z < from.Z) || (dir == world.Down && exit.Z > from.Z)
	if tile == nil || tile.Type != world.Stairway || exit == world.Invalid || wrongWay {
		if isPlayer {
			if dir == world.Up {
				tell(g, "There is nothing here to ascend.")
			} else {
				tell(g, "There is nothing here to descend.")
			}
		}
		return world.Invalid, false
	}
	if !g.Model.InBounds(exit) {
		if isPlayer {
			tell(g, "There is no way to go %s from here.", dir.String())
		}
		return world.Invalid, false
	}
	return exit, true
}

// obstructionAt names whatever stops subject from entering p: another actor,
// an obstructive fixture, or the terrain. The deck's blocked layer is read
// first so the outlying tiles of a multi-tile body stop movement as well.
func obstructionAt(g *state.Game, subject ecs.Entity, p world.Position) (string, bool) {
	tile := g.Model.TileAt(p)
	if tile == nil {
		return world.Vacuum.String(), true
	}
	if level := g.Model.Level(p.Z); level != nil && level.IsBlocked(p.X, p.Y) {
		if tile.Type == world.Wall {
			return tile.Type.String(), true
		}
		if e, ok := bodyCovering(g, subject, p); ok {
			return g.Store.Name(e), true
		}
		// the layer is rebuilt after movement, so an obstruction that has
		// since left is checked against the tile below
	}
	for _, e := range tile.Entities() {
		if e == subject {
			continue
		}
		if g.Store.Players.Has(e) || g.Store.Mobiles.Has(e) || g.Store.Obstructives.Has(e) {
			return g.Store.Name(e), true
		}
	}
	if tile.Type == world.Wall {
		return tile.Type.String(), true
	}
	return "", false
}

// bodyCovering finds an obstructive entity other than subject whose footprint includes p
func bodyCovering(g *state.Game, subject ecs.Entity, p world.Position) (ecs.Entity, bool) {
	for _, e := range entity.Collect[entity.Obstructive](g.Store, nil, nil) {
		if e == subject {
			continue
		}
		for _, at := range footprint(g, e) {
			if at == p {
				return e, true
			}
		}
	}
	return ecs.Entity{}, false
}

// describeGround tells the player what is lying on the tile they stepped onto
func describeGround(g *state.Game, player ecs.Entity, p world.Position) {
	var names []string
	for _, e := range g.Model.ContentsAt(p) {
		if e != player && g.Store.Portables.Has(e) {
			names = append(names, g.Store.Name(e))
		}
	}
	switch {
	case len(names) == 0:
	case len(names) > maxGroundListing:
		tell(g, "There's some stuff here on the ground.")
	default:
		tell(g, "There's %s here.", listItems(names))
	}
}

// listItems renders names as "a X", "a X, and a Y", "a X, a Y, and a Z"
func listItems(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "a " + n
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
}

// tell posts translated player feedback to the world channel
func tell(g *state.Game, msg string, a ...any) {
	g.Log.TellPlayer(gotext.Get(msg, a...))
}
