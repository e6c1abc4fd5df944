package gameplay

import (
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/entities"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

const tick = 100 * time.Millisecond

func init() {
	logger.Silence()
}

// walledDeck is a floor surrounded by a one-tile wall
func walledDeck(width, height int) *world.Map {
	m := world.NewMap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				m.SetTile(x, y, world.Wall)
			} else {
				m.SetTile(x, y, world.Floor)
			}
		}
	}
	m.UpdateTilemaps()
	return m
}

// newTestGame returns a running game on a single 10x10 deck
func newTestGame(t *testing.T) (*state.Game, *entities.Builder) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Goal = world.Invalid
	g := state.NewGame(cfg)
	g.Model.AddLevel(walledDeck(10, 10))
	g.Mode = event.ModeRunning
	return g, entities.NewBuilder(g.Store)
}

func spawnPlayer(g *state.Game, b *entities.Builder, p world.Position) ecs.Entity {
	e := b.SpawnPlayer(p, 8)
	g.Place(e, p)
	return e
}

func spawnAt(t *testing.T, g *state.Game, b *entities.Builder, recipe string, p world.Position) ecs.Entity {
	t.Helper()
	e, err := b.Spawn(recipe, p)
	require.NoError(t, err)
	g.Place(e, p)
	return e
}

func lastSaid(g *state.Game) string {
	return g.Log.Last(msglog.ChannelWorld)
}

// run queues the events and runs one tick
func run(g *state.Game, p *Pipeline, events ...event.GameEvent) {
	for _, ev := range events {
		g.Send(ev)
	}
	p.Tick(g, tick)
}

func act(kind event.ActionKind, subject, object ecs.Entity) event.GameEvent {
	return event.NewPlayerAction(event.Action(kind), subject, object)
}

func move(subject ecs.Entity, dir world.Direction) event.GameEvent {
	return event.NewPlayerAction(event.Move(dir), subject, ecs.Entity{})
}
