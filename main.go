package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/oklog/ulid/v2"

	"github.com/zgrow/spacegame-sub000/pkg/config"
	"github.com/zgrow/spacegame-sub000/pkg/engine/terminal"
	"github.com/zgrow/spacegame-sub000/pkg/game/devtools"
	"github.com/zgrow/spacegame-sub000/pkg/game/gameplay"
	"github.com/zgrow/spacegame-sub000/pkg/game/renderer"
	"github.com/zgrow/spacegame-sub000/pkg/game/renderer/tui"
	"github.com/zgrow/spacegame-sub000/pkg/game/savestate"
	"github.com/zgrow/spacegame-sub000/pkg/game/setup"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// smallest terminal the layout fits in
const (
	minWidth  = tui.MinCols + tui.SidebarWidth + 1
	minHeight = tui.MinRows + tui.LogRows + 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	logger.Init(logFile, cfg.LogLevel, cfg.LogFormat)
	session := ulid.Make().String()
	logger.SetSession(session)
	log := logger.For("main")

	if cfg.LocaleDir != "" {
		gotext.Configure(cfg.LocaleDir, cfg.Language, "default")
	}

	g, err := setup.NewGame(cfg)
	if err != nil {
		log.WithError(err).Error("could not build the game")
		fmt.Fprintf(os.Stderr, "could not build the game: %v\n", err)
		return 1
	}
	g.Session = session
	log.WithField("map", cfg.MapPath).WithField("seed", cfg.Seed).Info("game started")

	if cfg.DumpMap {
		devtools.WriteMapDump(os.Stdout, g, color.SupportColor())
		return 0
	}

	if err := terminal.Probe(minWidth, minHeight); err != nil {
		log.WithError(err).Error("unusable terminal")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	screen, err := tui.New()
	if err != nil {
		log.WithError(err).Error("could not open the screen")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return play(ctx, g, screen)
}

// play owns the screen from Init to Fini. The terminal is restored before a
// panic is reported so the message stays readable.
func play(ctx context.Context, g *state.Game, screen *tui.TUIRenderer) (code int) {
	log := logger.For("main")
	if err := screen.Init(); err != nil {
		log.WithError(err).Error("could not initialize the screen")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		screen.Fini()
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("update loop crashed")
			fmt.Fprintf(os.Stderr, "spacegame crashed: %v\n", p)
			code = 2
		}
	}()
	renderer.SetRenderer(screen)

	pipeline := gameplay.NewPipeline(g)
	pipeline.Persist = savestate.Handler(g.Config.SavePath)
	controller := gameplay.NewController()
	g.Camera.Resize(screen.MapSize(screen.Size()))

	frame := func() renderer.Frame {
		return renderer.Frame{Game: g, Menu: controller.Menus.Top(), Cli: controller.Cli.String()}
	}
	ticker := time.NewTicker(g.Config.TickInterval)
	defer ticker.Stop()

	renderer.RenderFrame(frame())
	for !controller.Quit {
		select {
		case <-ctx.Done():
			log.Info("interrupted")
			return 0
		case raw, ok := <-screen.Input():
			if !ok {
				return 0
			}
			if raw.Resize {
				g.Camera.Resize(screen.MapSize(raw.Width, raw.Height))
			} else {
				controller.Handle(g, raw)
			}
		case <-ticker.C:
			pipeline.Tick(g, g.Config.TickInterval)
		}
		renderer.RenderFrame(frame())
	}

	log.WithField("mode", g.Mode.String()).WithField("tick", g.Tick).Info("game over")
	return 0
}
