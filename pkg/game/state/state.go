// Package state holds the Game: every resource the update loop owns, passed
// explicitly to the stages that need it.
package state

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/camera"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
)

// Game represents the state of one running simulation
type Game struct {
	Mode   event.EngineMode
	Config config.Config

	Store *entity.Store
	Model *world.Model
	Log   *msglog.Log

	Bus   *event.Bus
	Inbox *event.Inbox

	Planq   *planq.Data
	Monitor *planq.Monitor
	Camera  *camera.View

	Rng *rand.Rand

	Tick    uint64
	Elapsed time.Duration

	// Processed lists the valid game events consumed during the most recent
	// tick that had any, oldest first, for readers outside the pipeline
	Processed []event.GameEvent

	Session string
}

// NewGame creates an empty game in Standby with the given configuration
func NewGame(cfg config.Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logCap := cfg.LogCapacity
	return &Game{
		Mode:    event.ModeStandby,
		Config:  cfg,
		Store:   entity.NewStore(),
		Model:   world.NewModel(),
		Log:     msglog.New(logCap),
		Bus:     event.NewBus(),
		Inbox:   event.NewInbox(),
		Planq:   planq.NewData(),
		Monitor: planq.NewMonitor(planq.DefaultSources),
		Camera:  camera.New(cfg.CameraWidth, cfg.CameraHeight),
		Rng:     rand.New(rand.NewSource(seed)),
	}
}

// Player returns the player entity, or the placeholder
func (g *Game) Player() ecs.Entity {
	p, _ := g.Store.Player()
	return p
}

// PlayerPosition returns where the player stands, or world.Invalid
func (g *Game) PlayerPosition() world.Position {
	if p := g.Store.Positions.Get(g.Player()); p != nil {
		return *p
	}
	return world.Invalid
}

// IsRunning reports whether player actions are being processed
func (g *Game) IsRunning() bool {
	return g.Mode == event.ModeRunning
}

// IsOver reports whether the game reached an ending
func (g *Game) IsOver() bool {
	return g.Mode == event.ModeGoodEnd || g.Mode == event.ModeBadEnd
}

// Send queues a game event for the current tick
func (g *Game) Send(ev event.GameEvent) {
	g.Bus.Game.Send(ev)
}

// SendPlanq queues a PLANQ event for the current tick
func (g *Game) SendPlanq(ev event.PlanqEvent) {
	g.Bus.Planq.Send(ev)
}

// LastAction returns the newest player action in Processed
func (g *Game) LastAction() (event.GameEvent, bool) {
	for i := len(g.Processed) - 1; i >= 0; i-- {
		if ev := g.Processed[i]; ev.Type == event.PlayerAction {
			return ev, true
		}
	}
	return event.GameEvent{}, false
}

// Place puts e at p and onto the tile contents there using its occupancy priority
func (g *Game) Place(e ecs.Entity, p world.Position) {
	g.Store.Positions.Set(e, p)
	if body := g.Store.Bodies.Get(e); body != nil {
		body.MoveTo(p)
	}
	g.Model.AddOccupant(g.Store.Priority(e), e, p)
}

// RebuildOccupancy refills every tile's contents stack from entity positions
func (g *Game) RebuildOccupancy() {
	g.Model.ClearOccupants()
	for _, e := range entity.Collect[entity.Position](g.Store, nil, nil) {
		g.Model.AddOccupant(g.Store.Priority(e), e, *g.Store.Positions.Get(e))
	}
}
