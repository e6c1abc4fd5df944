package devtools

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/mason"
	"github.com/zgrow/spacegame-sub000/pkg/game/setup"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

func init() {
	logger.Silence()
}

const closet = `{
  "map_list": [
    {"width": 5, "height": 4, "tilemap": [
      "#####",
      "#...#",
      "#...#",
      "#####"]}
  ],
  "room_list": [
    {"name": "Closet", "exits": [], "corner": [0, 0, 0], "width": 4, "height": 3, "contents": []}
  ],
  "ladder_list": [],
  "lock_list": []
}`

func newGame(t *testing.T) *state.Game {
	t.Helper()
	bp, err := mason.LoadJSON(strings.NewReader(closet))
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Start = world.NewPosition(1, 1, 0)
	cfg.Goal = world.Invalid
	g, err := setup.Build(cfg, bp)
	require.NoError(t, err)
	return g
}

func TestWriteMapDump(t *testing.T) {
	g := newGame(t)
	level := g.Model.Level(0)
	level.Revealed[level.Index(1, 1)] = true

	var buf bytes.Buffer
	WriteMapDump(&buf, g, false)
	out := buf.String()

	assert.Contains(t, out, "--- Deck 0 (5x4, revealed) ---\n░░░░░\n░@░░░\n")
	assert.Contains(t, out, "--- Deck 0 (5x4, full) ---\n╳╳╳╳╳\n╳@")
	assert.Contains(t, out, `"Closet" from (0, 0, 0)`)
	assert.Contains(t, out, `"Pleyeur" at (1, 1, 0)`)
	assert.Contains(t, out, `"PLANQ" at (1, 1, 0)`)
	assert.NotContains(t, out, "\x1b[", "no escape codes unless colored")
}

func TestDumpMapToFile(t *testing.T) {
	g := newGame(t)
	t.Chdir(t.TempDir())

	path, err := DumpMapToFile(g)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "=== MAP DUMP ==="))
}
