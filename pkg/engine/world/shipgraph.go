package world

import (
	"math/rand"
	"sort"
)

// CellType classifies a cell of a room's logical layout
type CellType int

// Logical cell types
const (
	CellOpen    CellType = iota // free, may receive an occupant
	CellClosed                  // taken by furniture or fixtures
	CellBlocked                 // room wall
	CellMargin                  // must stay clear, ie door approaches
)

// NoDoor terminates a room's outgoing door list
const NoDoor = -1

// GraphRoom is a node of the ship layout
type GraphRoom struct {
	Name              string                `json:"name"`
	Interior          map[Position]CellType `json:"interior"`
	Center            Position              `json:"center"`
	UpperLeft         Position              `json:"upper_left"`
	LowerRight        Position              `json:"lower_right"`
	FirstOutgoingDoor int                   `json:"first_outgoing_door"`
}

// NewGraphRoom builds a room whose walls run along the rectangle from corner to
// corner+(width,height) and whose interior is everything inside them.
func NewGraphRoom(name string, corner Position, width, height int) GraphRoom {
	room := GraphRoom{
		Name:              name,
		Interior:          make(map[Position]CellType),
		Center:            Position{X: corner.X + width/2, Y: corner.Y + height/2, Z: corner.Z},
		UpperLeft:         corner,
		LowerRight:        Position{X: corner.X + width, Y: corner.Y + height, Z: corner.Z},
		FirstOutgoingDoor: NoDoor,
	}
	for x := room.UpperLeft.X; x <= room.LowerRight.X; x++ {
		room.Interior[Position{X: x, Y: room.UpperLeft.Y, Z: corner.Z}] = CellBlocked
		room.Interior[Position{X: x, Y: room.LowerRight.Y, Z: corner.Z}] = CellBlocked
	}
	for y := room.UpperLeft.Y; y <= room.LowerRight.Y; y++ {
		room.Interior[Position{X: room.UpperLeft.X, Y: y, Z: corner.Z}] = CellBlocked
		room.Interior[Position{X: room.LowerRight.X, Y: y, Z: corner.Z}] = CellBlocked
	}
	for y := room.UpperLeft.Y + 1; y < room.LowerRight.Y; y++ {
		for x := room.UpperLeft.X + 1; x < room.LowerRight.X; x++ {
			room.Interior[Position{X: x, Y: y, Z: corner.Z}] = CellOpen
		}
	}
	return room
}

// Contains reports whether p lies inside the room or on its walls
func (r *GraphRoom) Contains(p Position) bool {
	_, ok := r.Interior[p]
	return ok
}

// OpenCells lists the cells still free for spawning, in a stable order
func (r *GraphRoom) OpenCells() []Position {
	var open []Position
	for p, ct := range r.Interior {
		if ct == CellOpen {
			open = append(open, p)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].Y != open[j].Y {
			return open[i].Y < open[j].Y
		}
		return open[i].X < open[j].X
	})
	return open
}

// GraphDoor is an edge of the ship layout
type GraphDoor struct {
	From             Position `json:"from"`
	To               Position `json:"to"`
	Target           int      `json:"target"`
	NextOutgoingDoor int      `json:"next_outgoing_door"`
}

// ShipGraph is the coarse room-and-door layout of the ship. Each room heads a
// linked list of its outgoing doors through FirstOutgoingDoor/NextOutgoingDoor.
type ShipGraph struct {
	Rooms []GraphRoom `json:"rooms"`
	Doors []GraphDoor `json:"doors"`
}

// NewShipGraph creates an empty layout
func NewShipGraph() *ShipGraph {
	return &ShipGraph{}
}

// AddRoom appends a room and returns its index
func (g *ShipGraph) AddRoom(room GraphRoom) int {
	g.Rooms = append(g.Rooms, room)
	return len(g.Rooms) - 1
}

// Connect adds a door leading from one room to another
func (g *ShipGraph) Connect(from, to int) int {
	if from < 0 || from >= len(g.Rooms) || to < 0 || to >= len(g.Rooms) {
		return NoDoor
	}
	index := len(g.Doors)
	g.Doors = append(g.Doors, GraphDoor{
		From:             g.Rooms[from].Center,
		To:               g.Rooms[to].Center,
		Target:           to,
		NextOutgoingDoor: g.Rooms[from].FirstOutgoingDoor,
	})
	g.Rooms[from].FirstOutgoingDoor = index
	return index
}

// Successors returns the indices of the rooms reachable through room's doors,
// most recently connected first
func (g *ShipGraph) Successors(room int) []int {
	if room < 0 || room >= len(g.Rooms) {
		return nil
	}
	var out []int
	for door := g.Rooms[room].FirstOutgoingDoor; door != NoDoor; door = g.Doors[door].NextOutgoingDoor {
		out = append(out, g.Doors[door].Target)
	}
	return out
}

// Contains reports whether a room with this name exists
func (g *ShipGraph) Contains(name string) bool {
	return g.RoomIndex(name) >= 0
}

// RoomIndex finds a room by name, or -1
func (g *ShipGraph) RoomIndex(name string) int {
	for i := range g.Rooms {
		if g.Rooms[i].Name == name {
			return i
		}
	}
	return -1
}

// RoomNameAt returns the name of the first room containing p, or ""
func (g *ShipGraph) RoomNameAt(p Position) string {
	for i := range g.Rooms {
		if g.Rooms[i].Contains(p) {
			return g.Rooms[i].Name
		}
	}
	return ""
}

// RoomNames lists every room in insertion order
func (g *ShipGraph) RoomNames() []string {
	names := make([]string, 0, len(g.Rooms))
	for i := range g.Rooms {
		names = append(names, g.Rooms[i].Name)
	}
	return names
}

// AddDoorToMapAt marks a path of margin cells from a door at p to the centre
// of the room that holds it. Returns false if no room holds p.
func (g *ShipGraph) AddDoorToMapAt(p Position) bool {
	index := g.roomIndexAt(p)
	if index < 0 {
		return false
	}
	room := &g.Rooms[index]
	target := p
	if target.X != room.Center.X && target.Y != room.Center.Y {
		if target.X < room.Center.X {
			target.X--
		} else {
			target.X++
		}
	}
	for _, point := range Line(room.Center, target) {
		room.Interior[point] = CellMargin
	}
	return true
}

// AddStairsToMapAt marks p as taken and its open neighbours as margin
func (g *ShipGraph) AddStairsToMapAt(p Position) bool {
	index := g.roomIndexAt(p)
	if index < 0 {
		return false
	}
	room := &g.Rooms[index]
	room.Interior[p] = CellClosed
	for _, d := range []Direction{East, West, South, North} {
		n := p.Step(d)
		if ct, ok := room.Interior[n]; ok && ct == CellOpen {
			room.Interior[n] = CellMargin
		}
	}
	return true
}

// ClaimCell marks an open cell as taken; returns false if it was not open
func (g *ShipGraph) ClaimCell(room int, p Position) bool {
	if room < 0 || room >= len(g.Rooms) {
		return false
	}
	if ct, ok := g.Rooms[room].Interior[p]; !ok || ct != CellOpen {
		return false
	}
	g.Rooms[room].Interior[p] = CellClosed
	return true
}

// RandomOpenCell picks a free cell in the named room for spawning
func (g *ShipGraph) RandomOpenCell(name string, rng *rand.Rand) (Position, bool) {
	index := g.RoomIndex(name)
	if index < 0 {
		return Invalid, false
	}
	open := g.Rooms[index].OpenCells()
	if len(open) == 0 {
		return Invalid, false
	}
	return open[rng.Intn(len(open))], true
}

func (g *ShipGraph) roomIndexAt(p Position) int {
	for i := range g.Rooms {
		if g.Rooms[i].Contains(p) {
			return i
		}
	}
	return -1
}

// NewHallway builds an irregular room from a list of floor cells
func NewHallway(name string, cells []Position) GraphRoom {
	room := GraphRoom{
		Name:              name,
		Interior:          make(map[Position]CellType, len(cells)),
		UpperLeft:         Invalid,
		LowerRight:        Invalid,
		FirstOutgoingDoor: NoDoor,
	}
	if len(cells) == 0 {
		room.Center = Invalid
		return room
	}
	minX, minY, maxX, maxY := cells[0].X, cells[0].Y, cells[0].X, cells[0].Y
	for _, p := range cells {
		room.Interior[p] = CellOpen
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	z := cells[0].Z
	room.UpperLeft = Position{X: minX, Y: minY, Z: z}
	room.LowerRight = Position{X: maxX, Y: maxY, Z: z}
	room.Center = cells[len(cells)/2]
	return room
}
