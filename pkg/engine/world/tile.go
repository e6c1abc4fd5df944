package world

import "github.com/mlange-42/ark/ecs"

// TileType is the terrain class of a tile
type TileType int

// Tile types
const (
	Vacuum TileType = iota
	Floor
	Wall
	Stairway
)

// String returns the lowercase name used in player messages
func (t TileType) String() string {
	switch t {
	case Vacuum:
		return "vacuum"
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Stairway:
		return "stairway"
	default:
		return "unknown"
	}
}

// DefaultCell returns the screen cell a freshly built tile of this type shows
func (t TileType) DefaultCell() ScreenCell {
	switch t {
	case Floor:
		return NewScreenCell(".", DarkGray)
	case Wall:
		return NewScreenCell("╳", Gray)
	case Stairway:
		return NewScreenCell("∑", Magenta)
	default:
		return NewScreenCell("★", DarkGray)
	}
}

// Occupant is one entry in a tile's contents stack
type Occupant struct {
	Priority int        `json:"priority"`
	Entity   ecs.Entity `json:"-"`
}

// Tile is one grid square of a deck
type Tile struct {
	Type     TileType   `json:"type"`
	Cell     ScreenCell `json:"cell"`
	Contents []Occupant `json:"-"`
}

// NewTile creates an empty tile of the given type
func NewTile(t TileType) Tile {
	return Tile{Type: t, Cell: t.DefaultCell()}
}

// AddOccupant pushes an entity onto the contents stack. Entries stay sorted by
// descending priority; a new entry goes above any existing entries of equal priority.
func (t *Tile) AddOccupant(priority int, e ecs.Entity) {
	index := 0
	for _, occ := range t.Contents {
		if occ.Priority > priority {
			index++
		}
	}
	t.Contents = append(t.Contents, Occupant{})
	copy(t.Contents[index+1:], t.Contents[index:])
	t.Contents[index] = Occupant{Priority: priority, Entity: e}
}

// RemoveOccupant removes the entity from the contents stack, returning false if absent
func (t *Tile) RemoveOccupant(e ecs.Entity) bool {
	for i, occ := range t.Contents {
		if occ.Entity == e {
			t.Contents = append(t.Contents[:i], t.Contents[i+1:]...)
			return true
		}
	}
	return false
}

// HasOccupant reports whether e is in the contents stack
func (t *Tile) HasOccupant(e ecs.Entity) bool {
	for _, occ := range t.Contents {
		if occ.Entity == e {
			return true
		}
	}
	return false
}

// VisibleEntity returns the entity on top of the stack
func (t *Tile) VisibleEntity() (ecs.Entity, bool) {
	if len(t.Contents) == 0 {
		return ecs.Entity{}, false
	}
	return t.Contents[0].Entity, true
}

// Entities lists the occupants from top to bottom
func (t *Tile) Entities() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(t.Contents))
	for _, occ := range t.Contents {
		out = append(out, occ.Entity)
	}
	return out
}
