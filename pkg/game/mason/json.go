package mason

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Bundle is the JSON-serializable definition of a ship layout.
type Bundle struct {
	Maps    []DeckDef   `json:"map_list"`
	Rooms   []RoomDef   `json:"room_list"`
	Ladders []LadderDef `json:"ladder_list"`
	Locks   []LockDef   `json:"lock_list"`
}

// DeckDef is one deck's raw tilemap
type DeckDef struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Tilemap []string `json:"tilemap"`
}

// RoomDef defines a named room and what it connects to
type RoomDef struct {
	Name     string          `json:"name"`
	Exits    []string        `json:"exits"`
	Corner   [3]int          `json:"corner"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Contents []ContentsEntry `json:"contents"`
}

// ContentsEntry is an [item_name, quantity] pair
type ContentsEntry struct {
	Item string
	Qty  int
}

// UnmarshalJSON reads the two-element array form
func (c *ContentsEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("contents entry needs [name, qty], got %d values", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Item); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Qty)
}

// MarshalJSON writes the two-element array form
func (c ContentsEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Item, c.Qty})
}

// LadderDef joins two points with a stairway portal
type LadderDef struct {
	Name   string  `json:"name"`
	Points [][]int `json:"points"`
	TwoWay *bool   `json:"twoway"`
}

// LockDef locks the door standing at At with key KeyID
type LockDef struct {
	At    [3]int `json:"at"`
	KeyID int    `json:"key_id"`
}

// LoadJSON parses a bundle and builds its blueprint
func LoadJSON(r io.Reader) (*Blueprint, error) {
	var bundle Bundle
	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, oops.In("mason").Wrapf(err, "parse ship layout")
	}
	return bundle.Build()
}

// Build turns the bundle into a world model, door spots and item requests
func (b *Bundle) Build() (*Blueprint, error) {
	bp := &Blueprint{Model: world.NewModel()}
	hallways := make([][]world.Position, len(b.Maps))

	// 1: decks
	for z, deck := range b.Maps {
		if len(deck.Tilemap) != deck.Height {
			return nil, oops.In("mason").With("deck", z).
				Wrapf(ErrBadTilemap, "%d rows for height %d", len(deck.Tilemap), deck.Height)
		}
		level := world.NewMap(deck.Width, deck.Height)
		for y, row := range deck.Tilemap {
			chars := []rune(row)
			if len(chars) != deck.Width {
				return nil, oops.In("mason").With("deck", z).With("row", y).
					Wrapf(ErrBadTilemap, "row of %d for width %d", len(chars), deck.Width)
			}
			for x, ch := range chars {
				p := world.NewPosition(x, y, z)
				switch ch {
				case '#':
					level.SetTile(x, y, world.Wall)
				case '.':
					level.SetTile(x, y, world.Floor)
				case ',':
					level.SetTile(x, y, world.Floor)
					hallways[z] = append(hallways[z], p)
				case '=':
					level.SetTile(x, y, world.Floor)
					bp.Doors = append(bp.Doors, p)
				default:
					level.SetTile(x, y, world.Vacuum)
				}
			}
		}
		level.UpdateTilemaps()
		bp.Model.AddLevel(level)
	}

	// 2: rooms and the exits between them
	layout := bp.Model.Layout
	addRoom := func(def RoomDef) int {
		if i := layout.RoomIndex(def.Name); i >= 0 {
			return i
		}
		corner := world.NewPosition(def.Corner[0], def.Corner[1], def.Corner[2])
		return layout.AddRoom(world.NewGraphRoom(def.Name, corner, def.Width, def.Height))
	}
	for _, def := range b.Rooms {
		from := addRoom(def)
		for _, exit := range def.Exits {
			to := layout.RoomIndex(exit)
			switch {
			case to >= 0:
			case strings.Contains(exit, "hallway"):
				z := def.Corner[2]
				var cells []world.Position
				if z >= 0 && z < len(hallways) {
					cells = hallways[z]
				}
				to = layout.AddRoom(world.NewHallway(exit, cells))
			default:
				if target, ok := b.room(exit); ok {
					to = addRoom(target)
				}
			}
			if to < 0 {
				logger.For("mason").WithField("room", def.Name).Warnf("exit to unknown room %q", exit)
				continue
			}
			layout.Connect(from, to)
		}
		for _, c := range def.Contents {
			for i := 0; i < c.Qty; i++ {
				bp.Contents = append(bp.Contents, ItemRequest{Room: def.Name, Item: c.Item})
			}
		}
	}

	// 2.5: doors keep a clear path into their rooms
	for _, p := range bp.Doors {
		layout.AddDoorToMapAt(p)
	}

	// 3: ladders become stairway tiles joined by a portal
	for _, ladder := range b.Ladders {
		if len(ladder.Points) != 2 || len(ladder.Points[0]) != 3 || len(ladder.Points[1]) != 3 {
			return nil, oops.In("mason").With("ladder", ladder.Name).Wrap(ErrBadLadder)
		}
		left := world.NewPosition(ladder.Points[0][0], ladder.Points[0][1], ladder.Points[0][2])
		right := world.NewPosition(ladder.Points[1][0], ladder.Points[1][1], ladder.Points[1][2])
		if !bp.Model.InBounds(left) || !bp.Model.InBounds(right) {
			return nil, oops.In("mason").With("ladder", ladder.Name).Wrapf(ErrBadLadder, "endpoint off the map")
		}
		for _, p := range []world.Position{left, right} {
			bp.Model.Level(p.Z).SetTile(p.X, p.Y, world.Stairway)
			layout.AddStairsToMapAt(p)
		}
		twoWay := ladder.TwoWay == nil || *ladder.TwoWay
		bp.Model.AddPortal(left, right, twoWay)
	}
	for _, level := range bp.Model.Levels {
		level.UpdateTilemaps()
	}

	// 4: locks go on the doors already listed
	for _, lock := range b.Locks {
		p := world.NewPosition(lock.At[0], lock.At[1], lock.At[2])
		if !slices.Contains(bp.Doors, p) {
			logger.For("mason").WithField("at", p.String()).Warn("lock without a door")
			continue
		}
		if bp.Locks == nil {
			bp.Locks = make(map[world.Position]int)
		}
		bp.Locks[p] = lock.KeyID
	}
	return bp, nil
}

func (b *Bundle) room(name string) (RoomDef, bool) {
	for _, def := range b.Rooms {
		if def.Name == name {
			return def, true
		}
	}
	return RoomDef{}, false
}
