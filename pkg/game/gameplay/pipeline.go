package gameplay

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Pipeline is the fixed sequence of update stages run once per tick. Each
// action stage keeps its own cursor into the game event channel.
type Pipeline struct {
	engine    event.Reader[event.GameEvent]
	examine   event.Reader[event.GameEvent]
	items     event.Reader[event.GameEvent]
	movement  event.Reader[event.GameEvent]
	operables event.Reader[event.GameEvent]

	planq *planq.System

	// Persist handles save and load requests; nil ignores them
	Persist func(g *state.Game, ev event.GameEvent) error
}

// NewPipeline creates the stages for g
func NewPipeline(g *state.Game) *Pipeline {
	sys := planq.NewSystem(g.Planq, g.Config.BootInterval)
	return &Pipeline{planq: sys}
}

// Tick runs every stage once, in order, covering dt of game time
func (p *Pipeline) Tick(g *state.Game, dt time.Duration) {
	g.Log.Clock = int(g.Tick)
	g.Inbox.Drain(g.Bus)

	requests := p.engineStage(g)
	refreshActionSets(g)
	p.examineStage(g)
	p.itemStage(g)
	p.movementStage(g)
	p.operableStage(g)
	IndexMaps(g)
	UpdateVisibility(g)

	frozen := g.Mode == event.ModePaused && g.Config.PauseFreezesPlanq
	if g.IsRunning() {
		DrainBatteries(g, dt)
	}
	frame := planq.Frame{
		Store:   g.Store,
		Log:     g.Log,
		Bus:     g.Bus,
		Rng:     g.Rng,
		Elapsed: g.Elapsed,
		Delta:   dt,
		Frozen:  frozen,
	}
	p.planq.Update(frame)
	g.Monitor.Update(frame, g.Planq)

	if player, ok := g.Store.Player(); ok {
		g.Camera.Project(g.Store, g.Model, player)
	}

	checkVictory(g)
	var processed []event.GameEvent
	for _, ev := range g.Bus.Game.Pending() {
		if ev.IsValid() && ev.Type != event.NullEvent {
			processed = append(processed, ev)
		}
	}
	if len(processed) > 0 {
		g.Processed = processed
	}
	g.Bus.EndFrame()

	for _, req := range requests {
		if p.Persist == nil {
			continue
		}
		if err := p.Persist(g, req); err != nil {
			logger.For("engine").WithError(err).WithField("request", req.Type.String()).Error("save state request failed")
			tell(g, "Something went wrong with the save file.")
		}
	}

	if !frozen {
		g.Elapsed += dt
	}
	g.Tick++
}

// engineStage applies mode changes, warns about invalid events and returns
// the save and load requests to run once the tick is over
func (p *Pipeline) engineStage(g *state.Game) []event.GameEvent {
	var requests []event.GameEvent
	for _, ev := range p.engine.Read(g.Bus.Game) {
		if !ev.IsValid() {
			logger.For("engine").WithFields(logrus.Fields{
				"event": ev.String(),
				"tick":  g.Tick,
			}).Warn("dropping invalid event")
			continue
		}
		switch ev.Type {
		case event.PauseToggle:
			switch g.Mode {
			case event.ModeRunning:
				g.Mode = event.ModePaused
			case event.ModePaused:
				g.Mode = event.ModeRunning
			}
		case event.ModeSwitch:
			g.Mode = ev.Mode
		case event.SaveRequest, event.LoadRequest:
			requests = append(requests, ev)
		case event.Notice:
			tell(g, ev.Text, ev.Args...)
		}
	}
	return requests
}

// actions returns the valid action events a stage has not seen yet; while the
// game is not running they are read and discarded
func actions(g *state.Game, r *event.Reader[event.GameEvent]) []event.GameEvent {
	batch := r.Read(g.Bus.Game)
	if !g.IsRunning() {
		return nil
	}
	out := batch[:0]
	for _, ev := range batch {
		if ev.IsValid() && (ev.Type == event.PlayerAction || ev.Type == event.ActorAction) {
			out = append(out, ev)
		}
	}
	return out
}

func refreshActionSets(g *state.Game) {
	for _, e := range entity.Collect[entity.ActionSet](g.Store, nil, nil) {
		g.Store.RefreshActionSet(e)
	}
}

func (p *Pipeline) examineStage(g *state.Game) {
	for _, ev := range actions(g, &p.examine) {
		if ev.IsAction(event.Examine) {
			Examine(g, ev.Subject(), ev.Object())
		}
	}
}

func (p *Pipeline) itemStage(g *state.Game) {
	for _, ev := range actions(g, &p.items) {
		switch ev.Action.Kind {
		case event.MoveItem:
			PickUp(g, ev.Subject(), ev.Object())
		case event.DropItem:
			Drop(g, ev.Subject(), ev.Object())
		case event.KillItem:
			Kill(g, ev)
		}
	}
}

func (p *Pipeline) movementStage(g *state.Game) {
	for _, ev := range actions(g, &p.movement) {
		if ev.IsAction(event.MoveTo) {
			MoveEntity(g, ev.Subject(), ev.Action.Dir)
		}
	}
}

func (p *Pipeline) operableStage(g *state.Game) {
	for _, ev := range actions(g, &p.operables) {
		subject, object := ev.Subject(), ev.Object()
		switch ev.Action.Kind {
		case event.OpenItem:
			Open(g, subject, object)
		case event.CloseItem:
			Close(g, subject, object)
		case event.LockItem:
			SetLocked(g, subject, object, true)
		case event.UnlockItem:
			SetLocked(g, subject, object, false)
		case event.UseItem:
			Use(g, subject, object)
		}
	}
}

// checkVictory ends the game once the player reaches the goal holding the PLANQ
func checkVictory(g *state.Game) {
	if !g.IsRunning() {
		return
	}
	player, ok := g.Store.Player()
	if !ok {
		return
	}
	handheld, ok := g.Store.Planq()
	if !ok || g.PlayerPosition() != g.Config.Goal || !g.Store.IsHolding(player, handheld) {
		return
	}
	g.Mode = event.ModeGoodEnd
	tell(g, "You made it to the escape pod with your PLANQ. You win!")
	logger.For("engine").WithField("tick", g.Tick).Info("victory")
}
