package entity

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
	"github.com/zyedidia/generic/mapset"

	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
)

// capability maps a component to the action kinds its presence implies
type capability struct {
	has     func(s *Store, e ecs.Entity) bool
	actions []event.ActionKind
}

var capabilities = []capability{
	{func(s *Store, e ecs.Entity) bool { return s.Descriptions.Has(e) }, []event.ActionKind{event.Examine}},
	{func(s *Store, e ecs.Entity) bool { return s.Mobiles.Has(e) }, []event.ActionKind{event.MoveTo}},
	{func(s *Store, e ecs.Entity) bool { return s.Portables.Has(e) }, []event.ActionKind{event.MoveItem, event.DropItem}},
	{func(s *Store, e ecs.Entity) bool { return s.Openables.Has(e) }, []event.ActionKind{event.OpenItem, event.CloseItem}},
	{func(s *Store, e ecs.Entity) bool { return s.Lockables.Has(e) }, []event.ActionKind{event.LockItem, event.UnlockItem}},
	{func(s *Store, e ecs.Entity) bool { return s.Devices.Has(e) }, []event.ActionKind{event.UseItem}},
}

// DeriveActions returns the union of actions implied by e's components
func (s *Store) DeriveActions(e ecs.Entity) mapset.Set[event.ActionKind] {
	actions := mapset.New[event.ActionKind]()
	for _, c := range capabilities {
		if !c.has(s, e) {
			continue
		}
		for _, a := range c.actions {
			actions.Put(a)
		}
	}
	return actions
}

// RefreshActionSet recomputes e's ActionSet if it is flagged outdated
func (s *Store) RefreshActionSet(e ecs.Entity) bool {
	set := s.ActionSets.Get(e)
	if set == nil || !set.Outdated {
		return false
	}
	actions := s.DeriveActions(e)
	set = s.ActionSets.Get(e)
	set.Actions = actions
	set.Outdated = false
	return true
}

// InvalidateActions flags e's ActionSet for recomputation after a component change
func (s *Store) InvalidateActions(e ecs.Entity) {
	if set := s.ActionSets.Get(e); set != nil {
		set.Outdated = true
	}
}

// Supports answers "can e do kind", refreshing a stale ActionSet first.
// Entities without an ActionSet are answered from their components directly.
func (s *Store) Supports(e ecs.Entity, kind event.ActionKind) bool {
	if s.ActionSets.Has(e) {
		s.RefreshActionSet(e)
		return s.ActionSets.Get(e).Supports(kind)
	}
	return s.DeriveActions(e).Has(kind)
}

// Actions lists what e supports, in ActionKind order
func (s *Store) Actions(e ecs.Entity) []event.ActionKind {
	var set mapset.Set[event.ActionKind]
	if s.ActionSets.Has(e) {
		s.RefreshActionSet(e)
		set = s.ActionSets.Get(e).Actions
	} else {
		set = s.DeriveActions(e)
	}
	out := make([]event.ActionKind, 0, set.Size())
	set.Each(func(kind event.ActionKind) {
		out = append(out, kind)
	})
	slices.Sort(out)
	return out
}
