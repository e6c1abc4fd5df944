// Package mason loads ship layouts: the JSON map bundle with its decks, rooms
// and ladders, and single-deck REXPaint .xp images.
package mason

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// Loader errors
var (
	ErrBadTilemap = errors.New("tilemap does not match its declared size")
	ErrBadLadder  = errors.New("ladder needs two points of three coordinates")
	ErrMultiLayer = errors.New("REXPaint map has more than one layer")
)

// ItemRequest asks for one named item to be spawned somewhere in a room
type ItemRequest struct {
	Room string
	Item string
}

// Blueprint is a loaded layout: the world model plus the entities it asks for
type Blueprint struct {
	Model *world.Model
	// Doors lists the '=' tiles, each of which gets a door entity
	Doors []world.Position
	// Contents lists the room contents, one request per item
	Contents []ItemRequest
	// Locks maps door positions to the key that locks them
	Locks map[world.Position]int
}

// LoadFile reads a layout, choosing the format by file extension
func LoadFile(path string) (*Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.In("mason").With("path", path).Wrapf(err, "open map")
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xp") {
		bp, err := LoadXP(f)
		return bp, oops.In("mason").With("path", path).Wrap(err)
	}
	bp, err := LoadJSON(f)
	return bp, oops.In("mason").With("path", path).Wrap(err)
}
