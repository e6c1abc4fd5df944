// Package entity is the entity-component store for the simulation. Entities
// are opaque ark IDs; capabilities come from which components are attached.
package entity

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/zyedidia/generic/mapset"

	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// Placeholder is the null entity reference
var Placeholder = ecs.Entity{}

// Position is an entity's grid location; entities without one are held by a carrier
type Position = world.Position

// Body is the physical extent of an entity, one glyph per tile it covers
type Body struct {
	RefPosn world.Position
	Extent  []world.Glyph
}

// NewBody creates a single-tile body at p
func NewBody(p world.Position, cell world.ScreenCell) Body {
	return Body{RefPosn: p, Extent: []world.Glyph{{Pos: p, Cell: cell}}}
}

// MoveTo shifts every glyph by the same offset so the body stays in one piece
func (b *Body) MoveTo(p world.Position) {
	dx, dy, dz := p.X-b.RefPosn.X, p.Y-b.RefPosn.Y, p.Z-b.RefPosn.Z
	for i := range b.Extent {
		b.Extent[i].Pos = b.Extent[i].Pos.Add(dx, dy, dz)
	}
	b.RefPosn = p
}

// CellAt returns the glyph drawn at p, if the body covers it
func (b *Body) CellAt(p world.Position) (world.ScreenCell, bool) {
	for _, g := range b.Extent {
		if g.Pos == p {
			return g.Cell, true
		}
	}
	return world.ScreenCell{}, false
}

// SetGlyph changes the character on every tile of the body
func (b *Body) SetGlyph(glyph string) {
	for i := range b.Extent {
		b.Extent[i].Cell.Glyph = glyph
	}
}

// Description is the name, flavor text and current room label of an entity
type Description struct {
	Name string
	Desc string
	Locn string
}

// Player tags the entity the user controls
type Player struct{}

// LMR tags the lead maintenance robot
type LMR struct{}

// ActionSet caches the action kinds an entity supports
type ActionSet struct {
	Actions  mapset.Set[event.ActionKind]
	Outdated bool
}

// NewActionSet returns an empty set flagged for recomputation
func NewActionSet() ActionSet {
	return ActionSet{Actions: mapset.New[event.ActionKind](), Outdated: true}
}

// Supports reports whether kind is in the cached set
func (a *ActionSet) Supports(kind event.ActionKind) bool {
	return a.Actions.Has(kind)
}

// Viewshed is the output of shadowcasting for a sighted entity
type Viewshed struct {
	Range         int
	VisiblePoints []world.Position
	Dirty         bool
}

// NewViewshed creates a viewshed that will be computed on the next visibility pass
func NewViewshed(viewRange int) Viewshed {
	return Viewshed{Range: viewRange, Dirty: true}
}

// CanSee reports whether p was in the last computed viewshed
func (v *Viewshed) CanSee(p world.Position) bool {
	for _, vp := range v.VisiblePoints {
		if vp == p {
			return true
		}
	}
	return false
}

// Memory records what a sighted entity last saw at each position
type Memory struct {
	Visual map[world.Position][]ecs.Entity
}

// NewMemory creates an empty Memory
func NewMemory() Memory {
	return Memory{Visual: make(map[world.Position][]ecs.Entity)}
}

// Recall returns the entities remembered at p
func (m *Memory) Recall(p world.Position) []ecs.Entity {
	return m.Visual[p]
}

// Portable marks something that can be carried; Carrier is the placeholder on the ground
type Portable struct {
	Carrier ecs.Entity
}

// Container can hold Portable entities
type Container struct{}

// Obstructive blocks movement through its tile
type Obstructive struct{}

// Opaque blocks line of sight while Opaque is true
type Opaque struct {
	Opaque bool
}

// Openable is a door, hatch or lid
type Openable struct {
	IsOpen      bool
	IsStuck     bool
	OpenGlyph   string
	ClosedGlyph string
}

// Lockable pairs with a Key of the same KeyID
type Lockable struct {
	IsLocked bool
	KeyID    int
}

// Unlock opens the lock if key matches, returning false otherwise
func (l *Lockable) Unlock(key int) bool {
	if key != l.KeyID {
		return false
	}
	l.IsLocked = false
	return true
}

// Lock closes the lock if key matches, returning false otherwise
func (l *Lockable) Lock(key int) bool {
	if key != l.KeyID {
		return false
	}
	l.IsLocked = true
	return true
}

// Key unlocks Lockables with the same KeyID
type Key struct {
	KeyID int
}

// DeviceState is the operating state of a powered appliance
type DeviceState int

// Device states
const (
	DeviceOffline DeviceState = iota
	DeviceIdle
	DeviceWorking
	DeviceError
)

func (s DeviceState) String() string {
	switch s {
	case DeviceOffline:
		return "offline"
	case DeviceIdle:
		return "idle"
	case DeviceWorking:
		return "working"
	case DeviceError:
		return "error"
	default:
		return "unknown"
	}
}

// Device is a powered appliance. A discharge rate of zero or less means it never drains.
type Device struct {
	PwSwitch      bool
	BattVoltage   int
	BattDischarge int
	State         DeviceState
	// Drawn is powered time not yet charged against the battery
	Drawn time.Duration
}

// CanPowerOn reports whether the battery allows switching on
func (d *Device) CanPowerOn() bool {
	return d.BattVoltage > 0 || d.BattDischarge <= 0
}

// Mobile can move on its own
type Mobile struct{}

// Networkable can join the ship's data network
type Networkable struct{}

// AccessPort accepts the PLANQ's access jack
type AccessPort struct{}

// IsCarried tags items currently in someone's inventory
type IsCarried struct{}

// Planq tags the handheld computer
type Planq struct{}

// PlanqProcess is one running task on the PLANQ; Outcome fires when Timer completes
type PlanqProcess struct {
	Timer   Timer
	Outcome event.PlanqEvent
}

// DataSampleTimer triggers a monitor resample of Source every period
type DataSampleTimer struct {
	Timer  Timer
	Source string
}
