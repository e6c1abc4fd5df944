package entity

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// Ident is attached to every entity the store spawns. Serial is unique for the
// life of the store and survives save/load, unlike the ark entity ID.
type Ident struct {
	Serial uint64
}

// Component gives alive-checked access to one component type
type Component[T any] struct {
	world *ecs.World
	m     *ecs.Map[T]
}

func newComponent[T any](w *ecs.World) Component[T] {
	return Component[T]{world: w, m: ecs.NewMap[T](w)}
}

// Has reports whether e is alive and carries the component
func (c Component[T]) Has(e ecs.Entity) bool {
	return !e.IsZero() && c.world.Alive(e) && c.m.Has(e)
}

// Get returns a pointer into storage, or nil. The pointer is only valid until
// the next structural change to e.
func (c Component[T]) Get(e ecs.Entity) *T {
	if !c.Has(e) {
		return nil
	}
	return c.m.Get(e)
}

// Set attaches the component or overwrites the existing value
func (c Component[T]) Set(e ecs.Entity, v T) {
	if e.IsZero() || !c.world.Alive(e) {
		return
	}
	if c.m.Has(e) {
		*c.m.Get(e) = v
		return
	}
	c.m.Add(e, &v)
}

// Remove detaches the component, returning false if it was not attached
func (c Component[T]) Remove(e ecs.Entity) bool {
	if !c.Has(e) {
		return false
	}
	c.m.Remove(e)
	return true
}

// Store owns the ark world and one accessor per component type
type Store struct {
	World *ecs.World

	Idents       Component[Ident]
	Positions    Component[Position]
	Bodies       Component[Body]
	Descriptions Component[Description]
	Players      Component[Player]
	LMRs         Component[LMR]
	ActionSets   Component[ActionSet]
	Viewsheds    Component[Viewshed]
	Memories     Component[Memory]
	Portables    Component[Portable]
	Containers   Component[Container]
	Obstructives Component[Obstructive]
	Opaques      Component[Opaque]
	Openables    Component[Openable]
	Lockables    Component[Lockable]
	Keys         Component[Key]
	Devices      Component[Device]
	Mobiles      Component[Mobile]
	Networkables Component[Networkable]
	AccessPorts  Component[AccessPort]
	IsCarrieds   Component[IsCarried]
	Planqs       Component[Planq]
	Processes    Component[PlanqProcess]
	SampleTimers Component[DataSampleTimer]

	nextSerial uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	w := ecs.NewWorld(256)
	return &Store{
		World:        w,
		Idents:       newComponent[Ident](w),
		Positions:    newComponent[Position](w),
		Bodies:       newComponent[Body](w),
		Descriptions: newComponent[Description](w),
		Players:      newComponent[Player](w),
		LMRs:         newComponent[LMR](w),
		ActionSets:   newComponent[ActionSet](w),
		Viewsheds:    newComponent[Viewshed](w),
		Memories:     newComponent[Memory](w),
		Portables:    newComponent[Portable](w),
		Containers:   newComponent[Container](w),
		Obstructives: newComponent[Obstructive](w),
		Opaques:      newComponent[Opaque](w),
		Openables:    newComponent[Openable](w),
		Lockables:    newComponent[Lockable](w),
		Keys:         newComponent[Key](w),
		Devices:      newComponent[Device](w),
		Mobiles:      newComponent[Mobile](w),
		Networkables: newComponent[Networkable](w),
		AccessPorts:  newComponent[AccessPort](w),
		IsCarrieds:   newComponent[IsCarried](w),
		Planqs:       newComponent[Planq](w),
		Processes:    newComponent[PlanqProcess](w),
		SampleTimers: newComponent[DataSampleTimer](w),
		nextSerial:   1,
	}
}

// Spawn creates a new entity carrying only its Ident
func (s *Store) Spawn() ecs.Entity {
	return s.SpawnWithSerial(s.nextSerial)
}

// SpawnWithSerial creates an entity with a specific serial, used when restoring a snapshot
func (s *Store) SpawnWithSerial(serial uint64) ecs.Entity {
	e := s.Idents.m.NewEntity(&Ident{Serial: serial})
	if serial >= s.nextSerial {
		s.nextSerial = serial + 1
	}
	return e
}

// Alive reports whether e refers to a live entity
func (s *Store) Alive(e ecs.Entity) bool {
	return !e.IsZero() && s.World.Alive(e)
}

// Despawn removes e and all its components; returns false for dead or placeholder entities
func (s *Store) Despawn(e ecs.Entity) bool {
	if !s.Alive(e) {
		return false
	}
	s.World.RemoveEntity(e)
	return true
}

// Serial returns the persistent serial of e, or 0
func (s *Store) Serial(e ecs.Entity) uint64 {
	if id := s.Idents.Get(e); id != nil {
		return id.Serial
	}
	return 0
}

// All lists every live entity in serial order
func (s *Store) All() []ecs.Entity {
	return Collect[Ident](s, nil, nil)
}

// Collect lists the entities holding A plus every component in with and none in without
func Collect[A any](s *Store, with, without []ecs.Comp) []ecs.Entity {
	filter := ecs.NewFilter1[A](s.World)
	if len(with) > 0 {
		filter = filter.With(with...)
	}
	if len(without) > 0 {
		filter = filter.Without(without...)
	}
	var out []ecs.Entity
	query := filter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	sortBySerial(s, out)
	return out
}

func sortBySerial(s *Store, list []ecs.Entity) {
	// insertion sort: lists are short and usually already ordered
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && s.Serial(list[j-1]) > s.Serial(list[j]); j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}

// Player returns the player entity
func (s *Store) Player() (ecs.Entity, bool) {
	players := Collect[Player](s, nil, nil)
	if len(players) == 0 {
		return Placeholder, false
	}
	return players[0], true
}

// Planq returns the handheld entity
func (s *Store) Planq() (ecs.Entity, bool) {
	planqs := Collect[Planq](s, nil, nil)
	if len(planqs) == 0 {
		return Placeholder, false
	}
	return planqs[0], true
}

// Name returns the display name of e, or a generic noun
func (s *Store) Name(e ecs.Entity) string {
	if d := s.Descriptions.Get(e); d != nil && d.Name != "" {
		return d.Name
	}
	return "thing"
}

// FindByName returns the first entity with the given display name
func (s *Store) FindByName(name string) (ecs.Entity, bool) {
	for _, e := range Collect[Description](s, nil, nil) {
		if s.Descriptions.Get(e).Name == name {
			return e, true
		}
	}
	return Placeholder, false
}

// CarriedBy lists the items whose carrier is holder
func (s *Store) CarriedBy(holder ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range Collect[Portable](s, nil, nil) {
		if s.Portables.Get(e).Carrier == holder {
			out = append(out, e)
		}
	}
	return out
}

// IsHolding reports whether holder carries item
func (s *Store) IsHolding(holder, item ecs.Entity) bool {
	p := s.Portables.Get(item)
	return p != nil && !holder.IsZero() && p.Carrier == holder
}

// HeldKeyFor returns a key carried by holder that fits the lock, if any
func (s *Store) HeldKeyFor(holder ecs.Entity, lock *Lockable) (ecs.Entity, bool) {
	for _, item := range s.CarriedBy(holder) {
		if k := s.Keys.Get(item); k != nil && k.KeyID == lock.KeyID {
			return item, true
		}
	}
	return Placeholder, false
}

// Priority orders an entity on a tile's contents stack: actors over fixtures over loose items
func (s *Store) Priority(e ecs.Entity) int {
	switch {
	case s.Players.Has(e):
		return 30
	case s.Mobiles.Has(e):
		return 20
	case s.Obstructives.Has(e) || s.Openables.Has(e):
		return 10
	default:
		return 0
	}
}

// CellOf returns the glyph shown for e at p
func (s *Store) CellOf(e ecs.Entity, p Position) (world.ScreenCell, bool) {
	b := s.Bodies.Get(e)
	if b == nil {
		return world.ScreenCell{}, false
	}
	return b.CellAt(p)
}
