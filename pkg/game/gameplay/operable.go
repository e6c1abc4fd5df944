package gameplay

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

// inReach reports whether subject can touch object: carried, or on an adjacent tile
func inReach(g *state.Game, subject, object ecs.Entity) bool {
	if g.Store.IsHolding(subject, object) {
		return true
	}
	at := g.Store.Positions.Get(subject)
	there := g.Store.Positions.Get(object)
	return at != nil && there != nil && at.Adjacent(*there)
}

// reach checks inReach and tells the player when it fails
func reach(g *state.Game, subject, object ecs.Entity) bool {
	if inReach(g, subject, object) {
		return true
	}
	if g.Store.Players.Has(subject) {
		tell(g, "The %s is out of reach.", g.Store.Name(object))
	}
	return false
}

// Open opens a door or hatch, clearing the way and the view through it
func Open(g *state.Game, subject, object ecs.Entity) bool {
	isPlayer := g.Store.Players.Has(subject)
	name := g.Store.Name(object)
	openable := g.Store.Openables.Get(object)
	if openable == nil {
		if isPlayer {
			tell(g, "You can't open the %s.", name)
		}
		return false
	}
	if !reach(g, subject, object) {
		return false
	}
	switch {
	case openable.IsOpen:
		if isPlayer {
			tell(g, "The %s is already open.", name)
		}
		return false
	case openable.IsStuck:
		if isPlayer {
			tell(g, "The %s is stuck.", name)
		}
		return false
	}
	if lock := g.Store.Lockables.Get(object); lock != nil && lock.IsLocked {
		if isPlayer {
			tell(g, "The %s is locked.", name)
		}
		return false
	}

	openable.IsOpen = true
	if body := g.Store.Bodies.Get(object); body != nil {
		body.SetGlyph(openable.OpenGlyph)
	}
	if opaque := g.Store.Opaques.Get(object); opaque != nil {
		opaque.Opaque = false
	}
	g.Store.Obstructives.Remove(object)
	g.Store.InvalidateActions(object)
	markViewsDirty(g)
	if isPlayer {
		tell(g, "You open the %s.", name)
	}
	return true
}

// Close shuts a door or hatch, unless something is standing in it
func Close(g *state.Game, subject, object ecs.Entity) bool {
	isPlayer := g.Store.Players.Has(subject)
	name := g.Store.Name(object)
	openable := g.Store.Openables.Get(object)
	if openable == nil {
		if isPlayer {
			tell(g, "You can't close the %s.", name)
		}
		return false
	}
	if !reach(g, subject, object) {
		return false
	}
	if !openable.IsOpen {
		if isPlayer {
			tell(g, "The %s is already closed.", name)
		}
		return false
	}
	if at := g.Store.Positions.Get(object); at != nil {
		for _, e := range g.Model.ContentsAt(*at) {
			if e != object {
				if isPlayer {
					tell(g, "The %s is blocked by a %s.", name, g.Store.Name(e))
				}
				return false
			}
		}
	}

	openable.IsOpen = false
	if body := g.Store.Bodies.Get(object); body != nil {
		body.SetGlyph(openable.ClosedGlyph)
	}
	if opaque := g.Store.Opaques.Get(object); opaque != nil {
		opaque.Opaque = true
	}
	g.Store.Obstructives.Set(object, entity.Obstructive{})
	g.Store.InvalidateActions(object)
	markViewsDirty(g)
	if isPlayer {
		tell(g, "You close the %s.", name)
	}
	return true
}

// SetLocked locks or unlocks object with a key carried by subject. The lock
// belongs to the object, so it works from either side of a door.
func SetLocked(g *state.Game, subject, object ecs.Entity, locked bool) bool {
	isPlayer := g.Store.Players.Has(subject)
	name := g.Store.Name(object)
	lock := g.Store.Lockables.Get(object)
	if lock == nil {
		if isPlayer {
			tell(g, "The %s has no lock.", name)
		}
		return false
	}
	if !reach(g, subject, object) {
		return false
	}
	if lock.IsLocked == locked {
		if isPlayer {
			if locked {
				tell(g, "The %s is already locked.", name)
			} else {
				tell(g, "The %s is already unlocked.", name)
			}
		}
		return false
	}
	key, ok := g.Store.HeldKeyFor(subject, lock)
	if !ok {
		if isPlayer {
			tell(g, "You don't have the key for the %s.", name)
		}
		return false
	}
	if openable := g.Store.Openables.Get(object); locked && openable != nil && openable.IsOpen {
		if isPlayer {
			tell(g, "You need to close the %s first.", name)
		}
		return false
	}

	keyID := g.Store.Keys.Get(key).KeyID
	lock = g.Store.Lockables.Get(object)
	if locked {
		lock.Lock(keyID)
	} else {
		lock.Unlock(keyID)
	}
	if isPlayer {
		if locked {
			tell(g, "You lock the %s.", name)
		} else {
			tell(g, "You unlock the %s.", name)
		}
	}
	return true
}

// Use flips a device's power switch. Switching on needs charge unless the
// device never drains.
func Use(g *state.Game, subject, object ecs.Entity) bool {
	isPlayer := g.Store.Players.Has(subject)
	name := g.Store.Name(object)
	device := g.Store.Devices.Get(object)
	if device == nil {
		if isPlayer {
			tell(g, "You can't find a way to use the %s.", name)
		}
		return false
	}
	if !reach(g, subject, object) {
		return false
	}
	// the PLANQ reports its own power button
	quiet := g.Store.Planqs.Has(object)
	if device.PwSwitch {
		device.PwSwitch = false
		if isPlayer && !quiet {
			tell(g, "You switch off the %s.", name)
		}
		return true
	}
	if !device.CanPowerOn() {
		if isPlayer {
			tell(g, "The %s has no power.", name)
		}
		return false
	}
	device.PwSwitch = true
	if isPlayer && !quiet {
		tell(g, "You switch on the %s.", name)
	}
	return true
}

// markViewsDirty schedules every viewshed for recomputation
func markViewsDirty(g *state.Game) {
	for _, e := range entity.Collect[entity.Viewshed](g.Store, nil, nil) {
		g.Store.Viewsheds.Get(e).Dirty = true
	}
}
