package world

import "github.com/mlange-42/ark/ecs"

// Map is a single deck: a row-major tile array plus its derived index layers
type Map struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Tiles    []Tile `json:"tiles"`
	Revealed []bool `json:"revealed"`
	Visible  []bool `json:"-"`
	Blocked  []bool `json:"-"`
	Opaque   []bool `json:"-"`
}

// NewMap creates a deck of the given size filled with vacuum
func NewMap(width, height int) *Map {
	size := width * height
	m := &Map{
		Width:    width,
		Height:   height,
		Tiles:    make([]Tile, size),
		Revealed: make([]bool, size),
		Visible:  make([]bool, size),
		Blocked:  make([]bool, size),
		Opaque:   make([]bool, size),
	}
	for i := range m.Tiles {
		m.Tiles[i] = NewTile(Vacuum)
	}
	return m
}

// Index converts x, y into the row-major tile index
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// Coords is the inverse of Index
func (m *Map) Coords(index int) (x, y int) {
	return index % m.Width, index / m.Width
}

// InBounds checks if x, y lies on the deck
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// TileAt returns the tile at x, y, or nil if out of bounds
func (m *Map) TileAt(x, y int) *Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.Tiles[m.Index(x, y)]
}

// SetTile replaces the terrain at x, y, keeping any occupants
func (m *Map) SetTile(x, y int, t TileType) {
	tile := m.TileAt(x, y)
	if tile == nil {
		return
	}
	tile.Type = t
	tile.Cell = t.DefaultCell()
}

// UpdateTilemaps resets the blocked and opaque layers from terrain alone
func (m *Map) UpdateTilemaps() {
	m.ensureLayers()
	for i := range m.Tiles {
		wall := m.Tiles[i].Type == Wall
		m.Blocked[i] = wall
		m.Opaque[i] = wall
	}
}

// IsBlocked reports the derived movement-blocking flag; off-map counts as blocked
func (m *Map) IsBlocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Blocked[m.Index(x, y)]
}

// IsOpaque reports the derived sight-blocking flag; off-map counts as opaque
func (m *Map) IsOpaque(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Opaque[m.Index(x, y)]
}

// IsRevealed reports whether the player has ever seen x, y
func (m *Map) IsRevealed(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Revealed[m.Index(x, y)]
}

// GetVisibleEntityAt returns the top-most occupant at x, y
func (m *Map) GetVisibleEntityAt(x, y int) (ecs.Entity, bool) {
	tile := m.TileAt(x, y)
	if tile == nil {
		return ecs.Entity{}, false
	}
	return tile.VisibleEntity()
}

// IsOccupied reports whether any entity is on the tile at x, y
func (m *Map) IsOccupied(x, y int) bool {
	tile := m.TileAt(x, y)
	return tile != nil && len(tile.Contents) > 0
}

// ClearVisible resets the per-tick visible layer
func (m *Map) ClearVisible() {
	m.ensureLayers()
	for i := range m.Visible {
		m.Visible[i] = false
	}
}

// ForEachTile calls fn for every tile on the deck
func (m *Map) ForEachTile(fn func(x, y int, tile *Tile)) {
	for i := range m.Tiles {
		x, y := m.Coords(i)
		fn(x, y, &m.Tiles[i])
	}
}

// ensureLayers rebuilds the derived layers after the map was decoded from a snapshot
func (m *Map) ensureLayers() {
	size := m.Width * m.Height
	if len(m.Revealed) != size {
		m.Revealed = make([]bool, size)
	}
	if len(m.Visible) != size {
		m.Visible = make([]bool, size)
	}
	if len(m.Blocked) != size {
		m.Blocked = make([]bool, size)
	}
	if len(m.Opaque) != size {
		m.Opaque = make([]bool, size)
	}
}
