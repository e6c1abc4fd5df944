package mason

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

const twoDecks = `{
  "map_list": [
    {"width": 8, "height": 5, "tilemap": [
      "########",
      "#......#",
      "#..=,,,#",
      "#......#",
      "########"]},
    {"width": 8, "height": 5, "tilemap": [
      "########",
      "#......#",
      "#......#",
      "#......#",
      "########"]}
  ],
  "room_list": [
    {"name": "Bridge", "exits": ["main hallway", "Galley"], "corner": [0, 0, 0], "width": 3, "height": 4,
     "contents": [["snack", 2], ["key", 1]]},
    {"name": "Galley", "exits": [], "corner": [0, 0, 1], "width": 7, "height": 4, "contents": []}
  ],
  "ladder_list": [
    {"name": "aft ladder", "points": [[6, 1, 0], [6, 1, 1]], "twoway": true}
  ],
  "lock_list": [
    {"at": [3, 2, 0], "key_id": 4},
    {"at": [1, 1, 0], "key_id": 5}
  ]
}`

func TestLoadJSON(t *testing.T) {
	bp, err := LoadJSON(strings.NewReader(twoDecks))
	require.NoError(t, err)

	m := bp.Model
	require.Len(t, m.Levels, 2)
	assert.Equal(t, world.Wall, m.TileAt(world.NewPosition(0, 0, 0)).Type)
	assert.Equal(t, world.Floor, m.TileAt(world.NewPosition(3, 2, 0)).Type)
	assert.Equal(t, []world.Position{world.NewPosition(3, 2, 0)}, bp.Doors)

	// ladders overwrite their endpoints and add a portal
	up := world.NewPosition(6, 1, 0)
	down := world.NewPosition(6, 1, 1)
	assert.Equal(t, world.Stairway, m.TileAt(up).Type)
	assert.Equal(t, world.Stairway, m.TileAt(down).Type)
	assert.Equal(t, down, m.GetExit(up))
	assert.Equal(t, up, m.GetExit(down))

	// walls are derived into the blocked and opaque layers
	assert.True(t, m.Level(0).IsBlocked(0, 0))
	assert.False(t, m.Level(0).IsBlocked(1, 1))

	assert.True(t, m.Layout.Contains("Bridge"))
	assert.True(t, m.Layout.Contains("Galley"))
	assert.True(t, m.Layout.Contains("main hallway"))
	bridge := m.Layout.RoomIndex("Bridge")
	assert.Len(t, m.Layout.Successors(bridge), 2)
	assert.Equal(t, "main hallway", m.Layout.RoomNameAt(world.NewPosition(5, 2, 0)))

	assert.Equal(t, []ItemRequest{
		{Room: "Bridge", Item: "snack"},
		{Room: "Bridge", Item: "snack"},
		{Room: "Bridge", Item: "key"},
	}, bp.Contents)

	// the second lock has no door under it
	assert.Equal(t, map[world.Position]int{world.NewPosition(3, 2, 0): 4}, bp.Locks)
}

func TestLoadJSONRejectsRaggedTilemap(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"map_list":[{"width":3,"height":2,"tilemap":["###","##"]}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadTilemap)

	_, err = LoadJSON(strings.NewReader(`{"map_list":[{"width":3,"height":2,"tilemap":["###"]}]}`))
	assert.ErrorIs(t, err, ErrBadTilemap)
}

func TestLoadJSONRejectsBadLadder(t *testing.T) {
	doc := `{"map_list":[{"width":2,"height":1,"tilemap":[".."]}],
	  "ladder_list":[{"name":"x","points":[[0,0,0]]}]}`
	_, err := LoadJSON(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrBadLadder)
}

func TestUnknownCharactersAreVacuum(t *testing.T) {
	bp, err := LoadJSON(strings.NewReader(`{"map_list":[{"width":3,"height":1,"tilemap":["#?."]}]}`))
	require.NoError(t, err)
	assert.Equal(t, world.Vacuum, bp.Model.TileAt(world.NewPosition(1, 0, 0)).Type)
}

// encodeXP builds a gzipped .xp image from rows of characters, one layer per entry
func encodeXP(t *testing.T, layers ...[]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	write := func(v any) { require.NoError(t, binary.Write(zw, binary.LittleEndian, v)) }
	write(int32(-1))
	write(int32(len(layers)))
	for _, rows := range layers {
		w, h := len(rows[0]), len(rows)
		write(int32(w))
		write(int32(h))
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				write(XPCell{Ch: uint32(rows[y][x]), Fg: [3]uint8{255, 255, 255}})
			}
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLoadXP(t *testing.T) {
	data := encodeXP(t, []string{
		"#####",
		"#.=<#",
		"#####",
	})
	bp, err := LoadXP(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, bp.Model.Levels, 1)
	level := bp.Model.Level(0)
	assert.Equal(t, 5, level.Width)
	assert.Equal(t, 3, level.Height)
	assert.Equal(t, world.Floor, level.TileAt(1, 1).Type)
	assert.Equal(t, world.Stairway, level.TileAt(3, 1).Type)
	assert.Equal(t, []world.Position{world.NewPosition(2, 1, 0)}, bp.Doors)
}

func TestLoadXPRejectsLayers(t *testing.T) {
	data := encodeXP(t, []string{"#"}, []string{"."})
	_, err := LoadXP(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrMultiLayer)

	_, err = LoadXP(bytes.NewReader([]byte("not gzip")))
	assert.Error(t, err)
}
