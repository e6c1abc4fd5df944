package planq

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

var stripPrefixes = map[string]string{
	SourceMode:     "MODE: ",
	SourceLocation: "LOCN: ",
	SourceTime:     "TIME: ",
	SourceBattery:  "BATT: ",
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Strip renders one line per monitored source, each exactly width cells wide
func (m *Monitor) Strip(width int) []string {
	lines := make([]string, 0, len(m.Sources))
	for _, src := range m.Sources {
		prefix, ok := stripPrefixes[src]
		if !ok {
			prefix = strings.ToUpper(strings.TrimPrefix(src, "test_")) + ": "
		}
		room := width - runewidth.StringWidth(prefix)
		if room <= 0 {
			lines = append(lines, runewidth.Truncate(prefix, width, ""))
			continue
		}
		lines = append(lines, prefix+stripValue(m.RawData[src], room))
	}
	return lines
}

func stripValue(v DataValue, width int) string {
	switch v.Kind {
	case DataPercent:
		return percentBar(v.Int, width)
	case DataSeries:
		return sparkline(v.Series, width)
	case DataDecimal:
		return lineGauge(v.Ratio(), width)
	default:
		return alignRight(v.String(), width)
	}
}

func alignRight(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return strings.Repeat(" ", width-runewidth.StringWidth(s)) + s
}

// percentBar is a filled bar followed by the numeric value
func percentBar(p int64, width int) string {
	label := alignRight(DataValue{Kind: DataPercent, Int: p}.String(), 5)
	bar := width - 5
	if bar <= 0 {
		return alignRight(label, width)
	}
	filled := int(p) * bar / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", bar-filled) + label
}

// sparkline draws the newest samples that fit, scaled against the largest
func sparkline(series []uint64, width int) string {
	if len(series) > width {
		series = series[len(series)-width:]
	}
	var peak uint64
	for _, s := range series {
		peak = max(peak, s)
	}
	var b strings.Builder
	for _, s := range series {
		idx := 0
		if peak > 0 {
			idx = int(s * uint64(len(sparkGlyphs)-1) / peak)
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return alignRight(b.String(), width)
}

func lineGauge(ratio float64, width int) string {
	ratio = max(0, min(1, ratio))
	filled := int(ratio * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

var idleFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// IdleIndicator is the spinner frame drawn while the CPU idles, advancing once per tick
func IdleIndicator(tick uint64) string {
	return idleFrames[tick%uint64(len(idleFrames))]
}
