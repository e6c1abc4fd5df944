package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.PauseFreezesPlanq)
	assert.Len(t, cfg.MonitorIntervals, 4)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{"-map", "ship.xp", "-tick", "50ms", "-seed", "9", "-pause-freezes-planq=false", "-dump-map"})
	require.NoError(t, err)
	assert.Equal(t, "ship.xp", cfg.MapPath)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.EqualValues(t, 9, cfg.Seed)
	assert.False(t, cfg.PauseFreezesPlanq)
	assert.True(t, cfg.DumpMap)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("SPACEGAME_MAP", "from-env.json")
	cfg, err := Parse([]string{"-map", "from-flag.json"})
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.MapPath)
	assert.NotZero(t, cfg.Seed, "a zero seed is replaced")
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]string{"-tick", "0s"})
	assert.Error(t, err)
	_, err = Parse([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"view range":    func(c *Config) { c.ViewRange = -1 },
		"camera":        func(c *Config) { c.CameraWidth = 0 },
		"start":         func(c *Config) { c.Start = world.Invalid },
		"boot interval": func(c *Config) { c.BootInterval = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
