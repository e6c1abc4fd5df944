package msglog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

var red = Style{Fg: world.Red, HasFg: true}

func TestParseInlineStyle(t *testing.T) {
	assert.Equal(t, []Span{
		{Text: "Hello "},
		{Text: "world", Style: red},
		{Text: "!"},
	}, Parse("Hello [[fg:red]]world[[end]]!"))

	assert.Equal(t, []Span{{Text: "world", Style: red}}, Parse("[[fg:red]]world"),
		"an unclosed style runs to the end of the text")
}

func TestParseTolerance(t *testing.T) {
	t.Run("no markup", func(t *testing.T) {
		for _, text := range []string{"", "plain text", "brackets [ ] [x]"} {
			assert.Equal(t, []Span{{Text: text}}, Parse(text))
		}
	})
	t.Run("unknown tokens", func(t *testing.T) {
		assert.Equal(t, []Span{{Text: "just text"}}, Parse("[[sparkle:on]]just [[fg:chartreuse]]text"))
		assert.Equal(t, []Span{{Text: "a", Style: red}, {Text: "b"}}, Parse("[[fg:red,glow]]a[[end]]b"))
	})
	t.Run("missing delimiter", func(t *testing.T) {
		assert.Equal(t, []Span{{Text: "Hello [[fg:red world"}}, Parse("Hello [[fg:red world"))
	})
}

func TestParseModifiers(t *testing.T) {
	spans := Parse("[[fg:light_blue,bg:grey,mod:+bold/underlined]]x[[mod:-bold]]y")
	require.Len(t, spans, 2)
	assert.Equal(t, Style{Fg: world.LightBlue, Bg: world.Gray, HasFg: true, HasBg: true,
		Add: world.ModBold | world.ModUnderlined}, spans[0].Style)
	assert.Equal(t, world.ModUnderlined, spans[1].Style.Add)
	assert.Equal(t, world.ModBold, spans[1].Style.Sub)
	assert.Equal(t, "xy", PlainText("[[fg:light_blue,bg:grey,mod:+bold/underlined]]x[[mod:-bold]]y"))
}

func TestRenderPlainText(t *testing.T) {
	assert.Equal(t, "nothing to color", Render("nothing to color"))
	assert.Contains(t, Render("[[fg:red]]alert[[end]]"), "alert")
}

func TestLogChannels(t *testing.T) {
	l := New(3)
	assert.Equal(t, []string{ChannelWorld, ChannelPlanq}, l.ChannelNames())

	l.Clock = 7
	for _, text := range []string{"one", "two", "three", "four"} {
		l.TellPlayer(text)
	}
	assert.Equal(t, []string{"two", "three", "four"}, l.Texts(ChannelWorld, 0), "oldest evicted past capacity")
	assert.Equal(t, []string{"three", "four"}, l.Texts(ChannelWorld, 2))
	assert.Equal(t, 7, l.Messages(ChannelWorld, 1)[0].Timestamp)

	l.Replace("FOUR", ChannelWorld, 0, 8)
	assert.Equal(t, "FOUR", l.Last(ChannelWorld))
	assert.Equal(t, 3, l.ChannelLen(ChannelWorld))
	assert.True(t, l.Contains(ChannelWorld, "two"))

	l.Debug("trace")
	assert.Equal(t, 1, l.ChannelLen(ChannelDebug))
	assert.Equal(t, "", l.Last("nowhere"))
	assert.Nil(t, l.Messages("nowhere", 0))

	snap := l.Snapshot()
	l.Clear(ChannelWorld)
	assert.Zero(t, l.ChannelLen(ChannelWorld))
	assert.Equal(t, 3, snap.ChannelLen(ChannelWorld), "snapshots are detached")
}

func TestBootMessages(t *testing.T) {
	l := New(0)
	l.BootMessage(1)
	assert.Equal(t, "¶│Hardware Status ....... [OK]", l.Last(ChannelPlanq))

	l.BootMessage(4)
	assert.Equal(t, "¶│Ready for input!", l.Last(ChannelPlanq))
	assert.Equal(t, 1+len(planqLogo)+2, l.ChannelLen(ChannelPlanq))
	assert.Empty(t, BootLines(5))
}
