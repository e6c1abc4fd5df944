package world

import "github.com/mlange-42/ark/ecs"

// Model is the whole ship: the deck stack, its room layout and the portals between positions
type Model struct {
	Levels  []*Map     `json:"levels"`
	Layout  *ShipGraph `json:"layout"`
	Portals []Portal   `json:"portals"`
}

// NewModel creates an empty world model
func NewModel() *Model {
	return &Model{Layout: NewShipGraph()}
}

// AddLevel appends a deck and returns its z index
func (m *Model) AddLevel(level *Map) int {
	m.Levels = append(m.Levels, level)
	return len(m.Levels) - 1
}

// Level returns the deck at z, or nil
func (m *Model) Level(z int) *Map {
	if z < 0 || z >= len(m.Levels) {
		return nil
	}
	return m.Levels[z]
}

// InBounds reports whether p addresses a tile on an existing deck
func (m *Model) InBounds(p Position) bool {
	level := m.Level(p.Z)
	return level != nil && level.InBounds(p.X, p.Y)
}

// TileAt returns the tile at p, or nil
func (m *Model) TileAt(p Position) *Tile {
	level := m.Level(p.Z)
	if level == nil {
		return nil
	}
	return level.TileAt(p.X, p.Y)
}

// AddPortal registers a portal unless an equal one exists; returns false on duplicates
func (m *Model) AddPortal(left, right Position, bidir bool) bool {
	candidate := NewPortal(left, right, bidir)
	for _, p := range m.Portals {
		if p.Equal(candidate) {
			return false
		}
	}
	m.Portals = append(m.Portals, candidate)
	return true
}

// GetExit returns where a traveller entering at p comes out, or Invalid
func (m *Model) GetExit(p Position) Position {
	for _, portal := range m.Portals {
		if !portal.Has(p) {
			continue
		}
		if exit := portal.ExitFrom(p); exit != Invalid {
			return exit
		}
	}
	return Invalid
}

// AddOccupant puts e on the contents stack at p
func (m *Model) AddOccupant(priority int, e ecs.Entity, p Position) bool {
	tile := m.TileAt(p)
	if tile == nil {
		return false
	}
	tile.AddOccupant(priority, e)
	return true
}

// RemoveOccupant takes e off the contents stack at p
func (m *Model) RemoveOccupant(e ecs.Entity, p Position) bool {
	tile := m.TileAt(p)
	if tile == nil {
		return false
	}
	return tile.RemoveOccupant(e)
}

// MoveOccupant relocates e between two contents stacks, keeping its priority
func (m *Model) MoveOccupant(priority int, e ecs.Entity, from, to Position) {
	m.RemoveOccupant(e, from)
	m.AddOccupant(priority, e, to)
}

// ContentsAt lists the occupants at p from top to bottom
func (m *Model) ContentsAt(p Position) []ecs.Entity {
	tile := m.TileAt(p)
	if tile == nil {
		return nil
	}
	return tile.Entities()
}

// PurgeOccupant removes e from every contents stack in the model
func (m *Model) PurgeOccupant(e ecs.Entity) int {
	removed := 0
	for _, level := range m.Levels {
		for i := range level.Tiles {
			if level.Tiles[i].RemoveOccupant(e) {
				removed++
			}
		}
	}
	return removed
}

// ClearOccupants empties every contents stack, ahead of a rebuild from entity positions
func (m *Model) ClearOccupants() {
	for _, level := range m.Levels {
		for i := range level.Tiles {
			level.Tiles[i].Contents = nil
		}
	}
}

// RoomNameAt labels p using the ship layout
func (m *Model) RoomNameAt(p Position) string {
	if m.Layout == nil {
		return ""
	}
	return m.Layout.RoomNameAt(p)
}
