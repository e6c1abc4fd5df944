// Package config holds the run configuration assembled from flags and environment.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// Config is everything the entry point and the simulation need to start a game
type Config struct {
	MapPath   string
	SavePath  string
	LogPath   string
	LogLevel  string
	LogFormat string

	LocaleDir string
	Language  string

	TickInterval time.Duration
	Seed         int64

	ViewRange    int
	CameraWidth  int
	CameraHeight int
	LogCapacity  int

	BootInterval      time.Duration
	MonitorIntervals  map[string]time.Duration
	PauseFreezesPlanq bool

	Start world.Position
	Goal  world.Position

	DumpMap bool
}

// Default returns a config with every field populated
func Default() Config {
	return Config{
		MapPath:      "resources/map.json",
		SavePath:     "savegame.json",
		LogPath:      "spacegame.log",
		LogLevel:     "info",
		LogFormat:    "text",
		Language:     "en",
		TickInterval: 100 * time.Millisecond,
		Seed:         0,
		ViewRange:    world.DefaultViewRange,
		CameraWidth:  60,
		CameraHeight: 30,
		LogCapacity:  500,
		BootInterval: 3 * time.Second,
		MonitorIntervals: map[string]time.Duration{
			"planq_mode":      time.Second,
			"player_location": time.Second,
			"current_time":    time.Second,
			"planq_battery":   5 * time.Second,
		},
		PauseFreezesPlanq: true,
		Start:             world.NewPosition(4, 2, 0),
		Goal:              world.NewPosition(28, 1, 1),
	}
}

// Parse fills a config from command-line arguments, then applies environment overrides
func Parse(args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("spacegame", flag.ContinueOnError)
	fs.StringVar(&cfg.MapPath, "map", cfg.MapPath, "Path to the ship map (.json or .xp)")
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "Path used for save and load requests")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Log file path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")
	fs.StringVar(&cfg.LocaleDir, "locales", cfg.LocaleDir, "Directory of gettext translations")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "Language for translated text")
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Simulation tick interval")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one from the clock)")
	fs.BoolVar(&cfg.PauseFreezesPlanq, "pause-freezes-planq", cfg.PauseFreezesPlanq, "Stop PLANQ timers while paused")
	fs.BoolVar(&cfg.DumpMap, "dump-map", cfg.DumpMap, "Print the loaded decks as text and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, oops.In("config").Wrapf(err, "parse flags")
	}

	if v, ok := os.LookupEnv("SPACEGAME_MAP"); ok && v != "" {
		cfg.MapPath = v
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return oops.In("config").Errorf("tick interval must be positive, got %s", c.TickInterval)
	case c.ViewRange < 0:
		return oops.In("config").Errorf("view range must not be negative, got %d", c.ViewRange)
	case c.CameraWidth <= 0 || c.CameraHeight <= 0:
		return oops.In("config").Errorf("camera size must be positive, got %dx%d", c.CameraWidth, c.CameraHeight)
	case !c.Start.IsValid():
		return oops.In("config").Errorf("start position %s is off the map", c.Start)
	case c.BootInterval <= 0:
		return oops.In("config").Errorf("boot interval must be positive, got %s", c.BootInterval)
	}
	return nil
}
