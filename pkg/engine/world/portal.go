package world

// Portal links two positions, usually the two ends of a stairway
type Portal struct {
	Left  Position `json:"left"`
	Right Position `json:"right"`
	Bidir bool     `json:"bidir"`
}

// NewPortal creates a Portal
func NewPortal(left, right Position, bidir bool) Portal {
	return Portal{Left: left, Right: right, Bidir: bidir}
}

// ExitFrom returns the far end of the portal when entered at p. Entering at
// Right only works on a bidirectional portal; anything else yields Invalid.
func (p Portal) ExitFrom(entry Position) Position {
	if entry == p.Left {
		return p.Right
	}
	if entry == p.Right && p.Bidir {
		return p.Left
	}
	return Invalid
}

// Has reports whether pos is either end of the portal
func (p Portal) Has(pos Position) bool {
	return pos == p.Left || pos == p.Right
}

// Equal compares endpoints without regard to direction or bidir
func (p Portal) Equal(o Portal) bool {
	return (p.Left == o.Left && p.Right == o.Right) || (p.Left == o.Right && p.Right == o.Left)
}
