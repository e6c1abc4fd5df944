// Package event defines the two typed event channels the simulation runs on,
// GameEvent for world actions and PlanqEvent for the handheld, along with the
// frame-scoped bus and the thread-safe inbox that input producers write to.
package event

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// GameEventType selects what a GameEvent does
type GameEventType int

// Game event types
const (
	NullEvent GameEventType = iota
	PauseToggle
	ModeSwitch
	PlayerAction
	ActorAction
	PlanqConnect
	SaveRequest
	LoadRequest
	Notice
)

func (t GameEventType) String() string {
	switch t {
	case NullEvent:
		return "NullEvent"
	case PauseToggle:
		return "PauseToggle"
	case ModeSwitch:
		return "ModeSwitch"
	case PlayerAction:
		return "PlayerAction"
	case ActorAction:
		return "ActorAction"
	case PlanqConnect:
		return "PlanqConnect"
	case SaveRequest:
		return "SaveRequest"
	case LoadRequest:
		return "LoadRequest"
	case Notice:
		return "Notice"
	default:
		return "Unknown"
	}
}

// Context names who does an action and to what. A zero Entity is the placeholder.
type Context struct {
	Subject ecs.Entity
	Object  ecs.Entity
}

// GameEvent is a request to change world state
type GameEvent struct {
	Type    GameEventType
	Action  ActionType // PlayerAction and ActorAction
	Mode    EngineMode // ModeSwitch
	Target  ecs.Entity // PlanqConnect
	Text    string     // Notice: a message id for the world channel
	Args    []any      // Notice
	Context *Context
}

// NewContext returns nil when both entities are placeholders
func NewContext(subject, object ecs.Entity) *Context {
	if subject.IsZero() && object.IsZero() {
		return nil
	}
	return &Context{Subject: subject, Object: object}
}

// NewPlayerAction creates a PlayerAction event
func NewPlayerAction(action ActionType, subject, object ecs.Entity) GameEvent {
	return GameEvent{Type: PlayerAction, Action: action, Context: NewContext(subject, object)}
}

// NewActorAction creates an ActorAction event
func NewActorAction(action ActionType, subject, object ecs.Entity) GameEvent {
	return GameEvent{Type: ActorAction, Action: action, Context: NewContext(subject, object)}
}

// NewModeSwitch creates a ModeSwitch event
func NewModeSwitch(mode EngineMode) GameEvent {
	return GameEvent{Type: ModeSwitch, Mode: mode}
}

// NewPlanqConnect creates a PlanqConnect event from the actor plugging in to target
func NewPlanqConnect(subject, target ecs.Entity) GameEvent {
	return GameEvent{Type: PlanqConnect, Target: target, Context: NewContext(subject, ecs.Entity{})}
}

// NewNotice creates a Notice that tells the player msg, formatted with args
func NewNotice(msg string, args ...any) GameEvent {
	return GameEvent{Type: Notice, Text: msg, Args: args}
}

// Subject returns the acting entity, or the placeholder
func (e GameEvent) Subject() ecs.Entity {
	if e.Context == nil {
		return ecs.Entity{}
	}
	return e.Context.Subject
}

// Object returns the target entity, or the placeholder
func (e GameEvent) Object() ecs.Entity {
	if e.Context == nil {
		return ecs.Entity{}
	}
	return e.Context.Object
}

// IsAction reports whether this is a player or actor action of the given kind
func (e GameEvent) IsAction(kind ActionKind) bool {
	return (e.Type == PlayerAction || e.Type == ActorAction) && e.Action.Kind == kind
}

// IsValid checks that the event carries the context its type needs
func (e GameEvent) IsValid() bool {
	switch e.Type {
	case NullEvent, PauseToggle, ModeSwitch, SaveRequest, LoadRequest:
		return true
	case Notice:
		return e.Text != ""
	case PlanqConnect:
		return !e.Subject().IsZero()
	case PlayerAction, ActorAction:
		if e.Action.Kind == MoveTo && !e.Action.Dir.IsValid() {
			return false
		}
		if e.Action.NeedsSubject() && e.Subject().IsZero() {
			return false
		}
		if e.Action.NeedsObject() && e.Object().IsZero() {
			return false
		}
		return true
	default:
		return false
	}
}

func (e GameEvent) String() string {
	switch e.Type {
	case PlayerAction, ActorAction:
		return fmt.Sprintf("%s(%s)", e.Type, e.Action)
	case ModeSwitch:
		return fmt.Sprintf("%s(%s)", e.Type, e.Mode)
	default:
		return e.Type.String()
	}
}
