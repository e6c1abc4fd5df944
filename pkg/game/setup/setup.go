// Package setup turns a loaded ship blueprint into a running game: it spawns
// the doors, room contents and furniture, places the player with the PLANQ
// and checks that the escape pod can be reached.
package setup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leonelquinteros/gotext"
	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/entities"
	"github.com/zgrow/spacegame-sub000/pkg/game/mason"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// ErrUnsolvable is returned when the goal cannot be reached from the start
var ErrUnsolvable = errors.New("goal is not reachable from the start")

// LMRRoom is where the maintenance robot starts, when the ship has one
const LMRRoom = "Engineering"

// NewGame loads the configured map and builds a game from it
func NewGame(cfg config.Config) (*state.Game, error) {
	bp, err := mason.LoadFile(cfg.MapPath)
	if err != nil {
		return nil, err
	}
	return Build(cfg, bp)
}

// Build creates a game in the Running mode from bp
func Build(cfg config.Config, bp *mason.Blueprint) (*state.Game, error) {
	errs := oops.In("setup").With("map", cfg.MapPath)
	if bp == nil || bp.Model == nil {
		return nil, errs.Errorf("blueprint has no world model")
	}
	if !bp.Model.InBounds(cfg.Start) {
		return nil, errs.Errorf("start %s is not on the map", cfg.Start)
	}
	if tile := bp.Model.TileAt(cfg.Start); tile.Type == world.Wall {
		return nil, errs.Errorf("start %s is inside a wall", cfg.Start)
	}

	g := state.NewGame(cfg)
	g.Model = bp.Model
	b := entities.NewBuilder(g.Store)
	log := logger.For("setup")

	for _, p := range []world.Position{cfg.Start, cfg.Goal} {
		if room := g.Model.Layout.RoomNameAt(p); room != "" {
			g.Model.Layout.ClaimCell(g.Model.Layout.RoomIndex(room), p)
		}
	}

	if err := placeDoors(g, b, bp); err != nil {
		return nil, errs.Wrap(err)
	}
	if err := placeContents(g, b, bp.Contents); err != nil {
		return nil, errs.Wrap(err)
	}
	if err := furnish(g, b); err != nil {
		return nil, errs.Wrap(err)
	}

	player := b.SpawnPlayer(cfg.Start, cfg.ViewRange)
	g.Place(player, cfg.Start)
	handheld, err := b.Spawn("planq", cfg.Start)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	g.Place(handheld, cfg.Start)
	if at, ok := freeCell(g, LMRRoom, false); ok {
		g.Place(b.SpawnLMR(at, cfg.ViewRange), at)
	}

	planq.SpawnSampleTimers(g.Store, planq.DefaultSources, cfg.MonitorIntervals)
	g.RebuildOccupancy()

	if cfg.Goal.IsValid() && !Solvable(g, cfg.Start, cfg.Goal) {
		return nil, errs.With("start", cfg.Start.String(), "goal", cfg.Goal.String()).Wrap(ErrUnsolvable)
	}

	g.Mode = event.ModeRunning
	g.Log.TellPlayer(gotext.Get("You wake up aboard the ship. Your PLANQ lies beside you."))
	g.Log.TellPlayer(gotext.Get("Get to the escape pod with it."))
	log.WithField("entities", len(g.Store.All())).WithField("decks", len(g.Model.Levels)).Info("game built")
	return g, nil
}

// placeDoors spawns a door on every door tile and fits the requested locks
func placeDoors(g *state.Game, b *entities.Builder, bp *mason.Blueprint) error {
	for _, p := range bp.Doors {
		door, err := b.Spawn("door", p)
		if err != nil {
			return err
		}
		if id, ok := bp.Locks[p]; ok {
			if err := b.Apply(door, fmt.Sprintf("lockable state:true,key_id:%d", id)); err != nil {
				return err
			}
		}
		g.Place(door, p)
	}
	return nil
}

// placeContents spawns every requested item on a free cell of its room
func placeContents(g *state.Game, b *entities.Builder, requests []mason.ItemRequest) error {
	log := logger.For("setup")
	for _, req := range requests {
		recipe, ok := entities.Recipes[req.Item]
		if !ok {
			log.WithField("item", req.Item).WithField("room", req.Room).Warn("skipping unknown item")
			continue
		}
		at, ok := freeCell(g, req.Room, slices.Contains(recipe.Components, "obstructs"))
		if !ok {
			log.WithField("item", req.Item).WithField("room", req.Room).Warn("no free cell for item")
			continue
		}
		e, err := b.Spawn(req.Item, at)
		if err != nil {
			return err
		}
		g.Place(e, at)
	}
	return nil
}

// furnish adds one random piece of furniture to each room that has a theme
func furnish(g *state.Game, b *entities.Builder) error {
	for _, name := range g.Model.Layout.RoomNames() {
		if len(entities.GetAllFurnitureForRoom(name)) == 0 {
			continue
		}
		at, ok := freeCell(g, name, true)
		if !ok {
			continue
		}
		e, ok, err := b.Furnish(name, at, g.Rng)
		if err != nil {
			return err
		}
		if ok {
			g.Place(e, at)
		}
	}
	return nil
}

// freeCell claims a random open cell of room. Cells for obstacles are
// skipped when blocking them would cut off part of the ship.
func freeCell(g *state.Game, room string, obstacle bool) (world.Position, bool) {
	index := g.Model.Layout.RoomIndex(room)
	if index < 0 {
		return world.Invalid, false
	}
	cells := g.Model.Layout.Rooms[index].OpenCells()
	for _, i := range g.Rng.Perm(len(cells)) {
		at := cells[i]
		if obstacle && !StillConnectedIfBlocked(g, g.Config.Start, at) {
			continue
		}
		g.Model.Layout.ClaimCell(index, at)
		return at, true
	}
	return world.Invalid, false
}
