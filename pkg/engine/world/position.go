package world

import "fmt"

// Position is a grid coordinate; Z indexes the deck in the level stack.
type Position struct {
	X, Y, Z int
}

// Invalid marks a position that is not anywhere in the world.
var Invalid = Position{X: -1, Y: -1, Z: -1}

// NewPosition creates a Position
func NewPosition(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

// IsValid returns false for the Invalid sentinel and for negative coordinates
func (p Position) IsValid() bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0
}

// Add offsets the position by the given deltas
func (p Position) Add(dx, dy, dz int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Step returns the position one unit away in direction d
func (p Position) Step(d Direction) Position {
	dx, dy, dz := d.Delta()
	return p.Add(dx, dy, dz)
}

// SameDeck reports whether both positions are on the same z-level
func (p Position) SameDeck(o Position) bool {
	return p.Z == o.Z
}

// Adjacent reports whether o is within one tile of p on the same deck (or is p)
func (p Position) Adjacent(o Position) bool {
	if p.Z != o.Z {
		return false
	}
	return abs(p.X-o.X) <= 1 && abs(p.Y-o.Y) <= 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// MarshalText encodes the position as "x,y,z" so it can key JSON objects
func (p Position) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)), nil
}

// UnmarshalText is the inverse of MarshalText
func (p *Position) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d,%d", &p.X, &p.Y, &p.Z)
	return err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
