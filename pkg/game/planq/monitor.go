package planq

import (
	"fmt"
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Data sources the monitor knows how to sample
const (
	SourceMode      = "planq_mode"
	SourceLocation  = "player_location"
	SourceTime      = "current_time"
	SourceBattery   = "planq_battery"
	SourceLine      = "test_line"
	SourceSparkline = "test_sparkline"
	SourceGauge     = "test_gauge"
)

// SeriesCap is the most samples a Series keeps
const SeriesCap = 30

// DefaultSources are sampled by a new game, in strip order
var DefaultSources = []string{SourceMode, SourceLocation, SourceTime, SourceBattery}

// DataKind tags the variant held by a DataValue
type DataKind int

// Data kinds
const (
	DataNull DataKind = iota
	DataText
	DataInteger
	DataPercent
	DataDecimal
	DataSeries
)

// DataValue is one sampled reading
type DataValue struct {
	Kind   DataKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Int    int64    `json:"int,omitempty"`
	Num    int64    `json:"num,omitempty"`
	Den    int64    `json:"den,omitempty"`
	Series []uint64 `json:"series,omitempty"`
}

// TextValue wraps a string reading
func TextValue(s string) DataValue { return DataValue{Kind: DataText, Text: s} }

// IntegerValue wraps an integer reading
func IntegerValue(n int64) DataValue { return DataValue{Kind: DataInteger, Int: n} }

// PercentValue wraps a percentage, clamped to 0..100
func PercentValue(p int64) DataValue {
	p = max(0, min(100, p))
	return DataValue{Kind: DataPercent, Int: p}
}

// DecimalValue wraps the fraction n/d
func DecimalValue(n, d int64) DataValue { return DataValue{Kind: DataDecimal, Num: n, Den: d} }

// Ratio returns a Decimal as a float, 0 for a zero denominator
func (v DataValue) Ratio() float64 {
	if v.Den == 0 {
		return 0
	}
	return float64(v.Num) / float64(v.Den)
}

// String renders the reading as plain text
func (v DataValue) String() string {
	switch v.Kind {
	case DataText:
		return v.Text
	case DataInteger:
		return fmt.Sprintf("%d", v.Int)
	case DataPercent:
		return fmt.Sprintf("%d%%", v.Int)
	case DataDecimal:
		return fmt.Sprintf("%.2f", v.Ratio())
	case DataSeries:
		if len(v.Series) == 0 {
			return ""
		}
		return fmt.Sprintf("%d", v.Series[len(v.Series)-1])
	default:
		return ""
	}
}

// Monitor holds the latest reading of every sampled source
type Monitor struct {
	Sources []string             `json:"sources"`
	RawData map[string]DataValue `json:"raw_data"`
}

// NewMonitor creates a monitor showing the given sources, all "Initializing..."
func NewMonitor(sources []string) *Monitor {
	m := &Monitor{RawData: make(map[string]DataValue)}
	for _, src := range sources {
		m.Sources = append(m.Sources, src)
		m.RawData[src] = TextValue("Initializing...")
	}
	return m
}

// SpawnSampleTimers creates one repeating sample timer per source. Sources
// without an interval are sampled every tick.
func SpawnSampleTimers(store *entity.Store, sources []string, intervals map[string]time.Duration) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(sources))
	for _, src := range sources {
		e := store.Spawn()
		store.SampleTimers.Set(e, entity.DataSampleTimer{
			Timer:  entity.NewTimer(intervals[src], entity.TimerRepeating),
			Source: src,
		})
		out = append(out, e)
	}
	return out
}

// Update advances the sample timers and resamples every source whose timer fired
func (m *Monitor) Update(f Frame, d *Data) {
	d.PlayerLoc = playerPosition(f.Store)
	if f.Frozen {
		return
	}
	var due []string
	for _, e := range entity.Collect[entity.DataSampleTimer](f.Store, nil, nil) {
		st := f.Store.SampleTimers.Get(e)
		st.Timer.Tick(f.Delta)
		if st.Timer.JustFinished() {
			due = append(due, st.Source)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return m.order(due[i]) < m.order(due[j]) })
	for _, src := range due {
		m.Sample(f, d, src)
	}
}

// Sample reads one named source into RawData
func (m *Monitor) Sample(f Frame, d *Data, source string) {
	switch source {
	case SourceMode:
		m.RawData[source] = TextValue(d.ModeLabel())
	case SourceLocation:
		if player, ok := f.Store.Player(); ok {
			if desc := f.Store.Descriptions.Get(player); desc != nil {
				m.RawData[source] = TextValue(desc.Locn)
			}
		}
	case SourceTime:
		m.RawData[source] = TextValue(FormatClock(f.Elapsed))
	case SourceBattery:
		if handheld, ok := f.Store.Planq(); ok {
			if dev := f.Store.Devices.Get(handheld); dev != nil {
				m.RawData[source] = PercentValue(int64(dev.BattVoltage))
			}
		}
	case SourceLine:
		m.RawData[source] = DecimalValue(int64(f.Rng.Intn(100)), 100)
	case SourceSparkline:
		series := m.RawData[source].Series
		series = append(append([]uint64{}, series...), uint64(f.Rng.Intn(10)))
		for len(series) > SeriesCap {
			series = series[1:]
		}
		m.RawData[source] = DataValue{Kind: DataSeries, Series: series}
	case SourceGauge:
		m.RawData[source] = PercentValue(int64(f.Rng.Intn(101)))
	default:
		logger.For("planq").WithField("source", source).Warn("unknown monitor data source")
	}
}

func (m *Monitor) order(source string) int {
	for i, s := range m.Sources {
		if s == source {
			return i
		}
	}
	return len(m.Sources)
}

// FormatClock renders elapsed game time as HH:MM:SS.sss
func FormatClock(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func playerPosition(store *entity.Store) world.Position {
	if player, ok := store.Player(); ok {
		if p := store.Positions.Get(player); p != nil {
			return *p
		}
	}
	return world.Invalid
}
