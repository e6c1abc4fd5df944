// Package tui is the terminal renderer: a tcell screen split into the map, the
// PLANQ sidebar and the message log, with menus drawn over the map.
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"
	"github.com/mattn/go-runewidth"

	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/input"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/game/menu"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/game/renderer"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Screen layout
const (
	SidebarWidth = 32
	LogRows      = 7
	MinCols      = 20
	MinRows      = 5
)

var (
	styleText    = tcell.StyleDefault
	styleSubtle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	stylePaused  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelect  = tcell.StyleDefault.Reverse(true)
	styleDenied  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSuccess = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	screen tcell.Screen
	events chan input.RawInput
	done   sync.WaitGroup
	fini   sync.Once
}

var _ renderer.Renderer = (*TUIRenderer)(nil)

// New creates a renderer for the controlling terminal
func New() (*TUIRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a renderer on an existing screen, such as a simulation screen
func NewWithScreen(screen tcell.Screen) *TUIRenderer {
	return &TUIRenderer{screen: screen, events: make(chan input.RawInput, 64)}
}

// Init acquires the screen and starts forwarding its events
func (t *TUIRenderer) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(styleText)
	t.screen.HideCursor()
	t.screen.Clear()

	t.done.Add(1)
	go t.poll()
	return nil
}

// poll runs on its own goroutine until the screen is finalized
func (t *TUIRenderer) poll() {
	defer t.done.Done()
	defer close(t.events)
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if code, ok := KeyCode(ev); ok {
				t.events <- input.NewKey(code)
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			t.screen.Sync()
			logger.For("renderer").WithField("width", w).WithField("height", h).Debug("screen resized")
			t.events <- input.NewResize(w, h)
		}
	}
}

// Fini restores the terminal; it is safe to call more than once
func (t *TUIRenderer) Fini() {
	t.fini.Do(func() {
		t.screen.Fini()
		// unblock a poller stuck on a full channel
		go func() {
			for range t.events {
			}
		}()
		t.done.Wait()
	})
}

// Input delivers translated key presses and resizes
func (t *TUIRenderer) Input() <-chan input.RawInput {
	return t.events
}

// Size is the current screen size
func (t *TUIRenderer) Size() (width, height int) {
	return t.screen.Size()
}

// MapSize leaves room for the status bar, the sidebar and the log
func (t *TUIRenderer) MapSize(width, height int) (cols, rows int) {
	cols = max(MinCols, width-SidebarWidth-1)
	rows = max(MinRows, height-LogRows-2)
	return cols, rows
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(f renderer.Frame) {
	g := f.Game
	if g == nil {
		return
	}
	t.screen.Clear()
	width, height := t.screen.Size()
	cols, rows := t.MapSize(width, height)

	t.drawStatus(g, width)
	t.drawMap(g, cols, rows)
	t.drawSidebar(g, f.Cli, cols+1, rows)
	t.drawLog(g, rows+2, width, height-rows-2)

	switch {
	case g.IsOver():
		t.drawEnding(g, cols, rows)
	case f.Menu != nil:
		t.drawMenu(f.Menu, cols, rows)
	}
	t.screen.Show()
}

// drawText writes text from x, y and returns the column after it. Text past
// limit cells is cut off.
func (t *TUIRenderer) drawText(x, y, limit int, text string, style tcell.Style) int {
	end := x + limit
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// drawSpans writes a marked-up line
func (t *TUIRenderer) drawSpans(x, y, limit int, text string, base tcell.Style) {
	end := x + limit
	for _, span := range msglog.Parse(text) {
		x = t.drawText(x, y, end-x, span.Text, SpanStyle(base, span.Style))
		if x >= end {
			return
		}
	}
}

func (t *TUIRenderer) fill(x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		t.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func (t *TUIRenderer) drawStatus(g *state.Game, width int) {
	t.fill(0, 0, width, styleStatus)
	at := g.PlayerPosition()
	room := g.Model.RoomNameAt(at)
	if room == "" {
		room = gotext.Get("Corridor")
	}
	status := fmt.Sprintf(" %s %d │ %s │ %s", gotext.Get("Deck"), at.Z+1, room,
		g.Elapsed.Truncate(time.Second))
	if ev, ok := g.LastAction(); ok {
		status += " │ " + ev.Action.String()
	}
	x := t.drawText(0, 0, width, status, styleStatus)
	if g.Mode == event.ModePaused {
		t.drawText(x+2, 0, width-x-2, gotext.Get("[PAUSED]"), stylePaused)
	}
}

func (t *TUIRenderer) drawMap(g *state.Game, cols, rows int) {
	view := g.Camera
	for y := 0; y < rows && y < view.Height; y++ {
		for x := 0; x < cols && x < view.Width; x++ {
			cell := view.At(x, y)
			r := ' '
			for _, c := range cell.Glyph {
				r = c
				break
			}
			t.screen.SetContent(x, y+1, r, nil, CellStyle(cell))
		}
	}
}

func (t *TUIRenderer) drawSidebar(g *state.Game, cli string, left, rows int) {
	for y := 1; y <= rows; y++ {
		t.screen.SetContent(left-1, y, '│', nil, styleSubtle)
	}
	width := SidebarWidth
	d := g.Planq
	y := 1
	title := "PLANQ " + d.ModeLabel()
	if d.CPUMode == planq.Idle {
		title += " " + planq.IdleIndicator(g.Tick)
	}
	t.drawText(left, y, width, title, styleTitle)
	y++
	if !d.IsCarried {
		t.drawText(left, y, width, gotext.Get("(not carried)"), styleSubtle)
		return
	}
	if d.CPUMode == planq.Offline {
		t.drawText(left, y, width, gotext.Get("(powered off)"), styleSubtle)
		return
	}
	if d.CPUMode == planq.Error {
		t.drawText(left, y, width, gotext.Get("!! SYSTEM FAULT !!"), styleDenied)
		y++
	}

	for _, line := range g.Monitor.Strip(width) {
		if y > rows {
			return
		}
		t.drawText(left, y, width, line, styleText)
		y++
	}
	if !d.ShowTerminal {
		return
	}

	y++
	last := rows
	if d.ShowCliInput {
		last--
	}
	lines := last - y + 1
	if lines > 0 {
		for _, msg := range g.Log.Messages(msglog.ChannelPlanq, lines) {
			t.drawSpans(left, y, width, msg.Text, styleText)
			y++
		}
	}
	if d.ShowCliInput {
		t.drawText(left, rows, width, "> "+cli+"_", styleText)
	}
}

func (t *TUIRenderer) drawLog(g *state.Game, top, width, rows int) {
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, top-1, '─', nil, styleSubtle)
	}
	if rows <= 0 {
		return
	}
	msgs := g.Log.Messages(msglog.ChannelWorld, rows)
	for i, msg := range msgs {
		t.drawSpans(1, top+i, width-2, msg.Text, styleText)
	}
}

// box draws a bordered rectangle centered over the map and returns its inner origin
func (t *TUIRenderer) box(w, h, cols, rows int) (int, int) {
	w = min(w, cols)
	h = min(h, rows)
	x0 := max(0, (cols-w)/2)
	y0 := 1 + max(0, (rows-h)/2)
	x1, y1 := x0+w-1, y0+h-1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := ' '
			switch {
			case x == x0 && y == y0:
				r = '┌'
			case x == x1 && y == y0:
				r = '┐'
			case x == x0 && y == y1:
				r = '└'
			case x == x1 && y == y1:
				r = '┘'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			}
			t.screen.SetContent(x, y, r, nil, styleText)
		}
	}
	return x0 + 2, y0 + 1
}

func (t *TUIRenderer) drawMenu(m *menu.Menu, cols, rows int) {
	lines := []string{m.Title()}
	for _, item := range m.Items {
		lines = append(lines, item.GetLabel())
	}
	instructions := m.Instructions()
	lines = append(lines, instructions, m.HelpText)
	inner := 0
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l)+2)
	}

	h := len(m.Items) + 4
	if m.HelpText != "" {
		h++
	}
	x, y := t.box(inner+4, h+2, cols, rows)
	t.drawText(x, y, inner, m.Title(), styleTitle)
	y += 2
	for i, item := range m.Items {
		style := styleText
		switch {
		case i == m.Selected:
			style = styleSelect
		case !item.IsSelectable():
			style = styleSubtle
		}
		t.drawText(x, y, inner, item.GetLabel(), style)
		y++
	}
	y++
	t.drawText(x, y, inner, instructions, styleSubtle)
	if m.HelpText != "" {
		t.drawText(x, y+1, inner, m.HelpText, styleText)
	}
}

func (t *TUIRenderer) drawEnding(g *state.Game, cols, rows int) {
	headline, style := gotext.Get("YOU ESCAPED"), styleSuccess
	if g.Mode == event.ModeBadEnd {
		headline, style = gotext.Get("GAME OVER"), styleDenied
	}
	last := g.Log.Last(msglog.ChannelWorld)
	prompt := gotext.Get("Press any key to exit.")
	inner := max(runewidth.StringWidth(msglog.PlainText(last)), runewidth.StringWidth(prompt), len(headline)) + 2
	x, y := t.box(inner+4, 7, cols, rows)
	t.drawText(x, y, inner, headline, style)
	t.drawSpans(x, y+2, inner, last, styleText)
	t.drawText(x, y+4, inner, prompt, styleSubtle)
}
