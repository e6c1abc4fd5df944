package gameplay

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Examine posts the object's long description
func Examine(g *state.Game, subject, object ecs.Entity) bool {
	desc := g.Store.Descriptions.Get(object)
	if desc == nil {
		if g.Store.Players.Has(subject) {
			tell(g, "You can't make out anything about that.")
		}
		return false
	}
	if g.Store.Players.Has(subject) {
		if desc.Desc == "" {
			tell(g, "You see nothing special about the %s.", desc.Name)
		} else {
			g.Log.TellPlayer(desc.Desc)
		}
	}
	return true
}

// PickUp moves a portable object from the ground into subject's inventory
func PickUp(g *state.Game, subject, object ecs.Entity) bool {
	isPlayer := g.Store.Players.Has(subject)
	name := g.Store.Name(object)
	portable := g.Store.Portables.Get(object)
	switch {
	case portable == nil:
		if isPlayer {
			tell(g, "You can't pick up the %s.", name)
		}
		return false
	case portable.Carrier == subject:
		if isPlayer {
			tell(g, "You already have the %s.", name)
		}
		return false
	case !g.Store.Containers.Has(subject):
		if isPlayer {
			tell(g, "You have nowhere to put the %s.", name)
		}
		return false
	}
	from := g.Store.Positions.Get(object)
	at := g.Store.Positions.Get(subject)
	if from == nil || at == nil || !at.Adjacent(*from) {
		if isPlayer {
			tell(g, "The %s is out of reach.", name)
		}
		return false
	}

	g.Model.RemoveOccupant(object, *from)
	g.Store.Positions.Remove(object)
	g.Store.Portables.Get(object).Carrier = subject
	g.Store.IsCarrieds.Set(object, entity.IsCarried{})
	if isPlayer {
		tell(g, "Obtained a %s.", name)
	} else {
		tell(g, "The %s takes a %s.", g.Store.Name(subject), name)
	}
	return true
}

// Drop puts a carried object down where subject stands
func Drop(g *state.Game, subject, object ecs.Entity) bool {
	isPlayer := g.Store.Players.Has(subject)
	name := g.Store.Name(object)
	portable := g.Store.Portables.Get(object)
	if portable == nil || portable.Carrier != subject {
		if isPlayer {
			tell(g, "You aren't carrying the %s.", name)
		}
		return false
	}
	at := g.Store.Positions.Get(subject)
	if at == nil {
		return false
	}
	p := *at

	portable.Carrier = entity.Placeholder
	g.Store.IsCarrieds.Remove(object)
	g.Place(object, p)
	if isPlayer {
		tell(g, "Dropped a %s.", name)
	} else {
		tell(g, "The %s drops a %s.", g.Store.Name(subject), name)
	}
	return true
}

// Kill removes an entity from the game; the object is the victim when set,
// otherwise the subject is
func Kill(g *state.Game, ev event.GameEvent) bool {
	victim := ev.Object()
	if victim.IsZero() {
		victim = ev.Subject()
	}
	if !g.Store.Alive(victim) {
		return false
	}
	if g.Store.Players.Has(victim) {
		g.Mode = event.ModeBadEnd
		tell(g, "You have died.")
	}
	release(g, victim)
	g.Model.PurgeOccupant(victim)
	logger.For("items").WithField("entity", g.Store.Serial(victim)).Debug("despawned")
	g.Store.Despawn(victim)
	return true
}

// release hands on whatever victim carried: it falls where victim stood, or
// passes to whoever carried victim. When neither is left it goes with victim.
func release(g *state.Game, victim ecs.Entity) {
	items := g.Store.CarriedBy(victim)
	if len(items) == 0 {
		return
	}
	if at := g.Store.Positions.Get(victim); at != nil {
		p := *at
		for _, item := range items {
			g.Store.Portables.Get(item).Carrier = entity.Placeholder
			g.Store.IsCarrieds.Remove(item)
			g.Place(item, p)
		}
		return
	}
	if holder := g.Store.Portables.Get(victim); holder != nil && holder.Carrier != victim && g.Store.Alive(holder.Carrier) {
		for _, item := range items {
			g.Store.Portables.Get(item).Carrier = holder.Carrier
		}
		return
	}
	for _, item := range items {
		release(g, item)
		g.Store.Despawn(item)
	}
}
