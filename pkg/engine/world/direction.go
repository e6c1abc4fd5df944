package world

// Direction is one of the eight compass directions plus Up and Down
type Direction int

// Direction constants
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Up
	Down
)

// PlanarDirections returns the eight directions that stay on the same deck
func PlanarDirections() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// AllDirections returns every direction an actor can move in, including Up and Down
func AllDirections() []Direction {
	return append(PlanarDirections(), Up, Down)
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case NorthEast:
		return "Northeast"
	case East:
		return "East"
	case SouthEast:
		return "Southeast"
	case South:
		return "South"
	case SouthWest:
		return "Southwest"
	case West:
		return "West"
	case NorthWest:
		return "Northwest"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Unknown"
	}
}

// Short returns the abbreviated name used in action labels, ie "N" or "UP"
func (d Direction) Short() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	default:
		return "?"
	}
}

// IsValid returns true if the direction is one of the ten defined directions
func (d Direction) IsValid() bool {
	return d >= North && d <= Down
}

// IsVertical returns true for Up and Down
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	}
	if !d.IsValid() {
		return d
	}
	return (d + 4) % 8
}

// Delta returns the x, y and z offsets for this direction
func (d Direction) Delta() (dx, dy, dz int) {
	switch d {
	case North:
		return 0, -1, 0
	case NorthEast:
		return 1, -1, 0
	case East:
		return 1, 0, 0
	case SouthEast:
		return 1, 1, 0
	case South:
		return 0, 1, 0
	case SouthWest:
		return -1, 1, 0
	case West:
		return -1, 0, 0
	case NorthWest:
		return -1, -1, 0
	case Up:
		return 0, 0, 1
	case Down:
		return 0, 0, -1
	default:
		return 0, 0, 0
	}
}
