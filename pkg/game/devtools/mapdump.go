// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// cellFor returns what a deck position shows: its top entity, else the terrain.
// With revealedOnly set, positions the player never saw show the background.
func cellFor(g *state.Game, level *world.Map, p world.Position, revealedOnly bool) world.ScreenCell {
	if revealedOnly && !level.IsRevealed(p.X, p.Y) {
		return world.Background
	}
	if e, ok := level.GetVisibleEntityAt(p.X, p.Y); ok {
		if c, ok := g.Store.CellOf(e, p); ok {
			return c
		}
	}
	return level.TileAt(p.X, p.Y).Cell
}

// writeDeck writes one deck as rows of glyphs, colored with ANSI codes when asked
func writeDeck(w io.Writer, g *state.Game, z int, revealedOnly, colored bool) {
	level := g.Model.Level(z)
	for y := 0; y < level.Height; y++ {
		var b strings.Builder
		for x := 0; x < level.Width; x++ {
			cell := cellFor(g, level, world.NewPosition(x, y, z), revealedOnly)
			if colored {
				b.WriteString(msglog.CellStyle(cell).Sprint(cell.Glyph))
			} else {
				b.WriteString(cell.Glyph)
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// WriteMapDump writes every deck of g followed by its entities and portals.
// The layout is stable so dumps from two runs can be diffed.
func WriteMapDump(w io.Writer, g *state.Game, colored bool) {
	fmt.Fprintln(w, "=== MAP DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "session: %s\n", g.Session)
	fmt.Fprintf(w, "seed: %d\n", g.Config.Seed)
	fmt.Fprintf(w, "tick: %d\n", g.Tick)
	fmt.Fprintf(w, "decks: %d\n", len(g.Model.Levels))
	fmt.Fprintf(w, "player: %s\n", g.PlayerPosition())
	fmt.Fprintf(w, "goal: %s\n", g.Config.Goal)
	fmt.Fprintln(w, "")

	for z, level := range g.Model.Levels {
		fmt.Fprintf(w, "--- Deck %d (%dx%d, revealed) ---\n", z, level.Width, level.Height)
		writeDeck(w, g, z, true, colored)
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "--- Deck %d (%dx%d, full) ---\n", z, level.Width, level.Height)
		writeDeck(w, g, z, false, colored)
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "--- Rooms ---")
	for _, room := range g.Model.Layout.Rooms {
		fmt.Fprintf(w, "  %q from %s to %s\n", room.Name, room.UpperLeft, room.LowerRight)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Portals ---")
	for _, p := range g.Model.Portals {
		arrow := "->"
		if p.Bidir {
			arrow = "<->"
		}
		fmt.Fprintf(w, "  %s %s %s\n", p.Left, arrow, p.Right)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Entities ---")
	for _, e := range g.Store.All() {
		fmt.Fprintf(w, "  %s\n", describe(g.Store, e))
	}
}

// describe is a one-line summary of an entity's location and state
func describe(s *entity.Store, e ecs.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %q", s.Serial(e), s.Name(e))
	switch {
	case s.Positions.Has(e):
		fmt.Fprintf(&b, " at %s", *s.Positions.Get(e))
	case s.Portables.Has(e):
		fmt.Fprintf(&b, " carried by #%d", s.Serial(s.Portables.Get(e).Carrier))
	}
	if o := s.Openables.Get(e); o != nil {
		fmt.Fprintf(&b, " open: %v", o.IsOpen)
	}
	if l := s.Lockables.Get(e); l != nil {
		fmt.Fprintf(&b, " locked: %v key: %d", l.IsLocked, l.KeyID)
	}
	if k := s.Keys.Get(e); k != nil {
		fmt.Fprintf(&b, " key_id: %d", k.KeyID)
	}
	if d := s.Devices.Get(e); d != nil {
		fmt.Fprintf(&b, " power: %v battery: %d", d.PwSwitch, d.BattVoltage)
	}
	return b.String()
}

// DumpMapToFile writes an uncolored dump to map.txt in the working directory
// and returns its absolute path
func DumpMapToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	WriteMapDump(f, g, false)
	return absPath, nil
}
