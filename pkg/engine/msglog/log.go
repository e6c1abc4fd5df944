// Package msglog is the multi-channel message log. Channels are append-only
// lists of messages whose text may carry inline style markup (see Parse).
package msglog

// Well-known channel names
const (
	ChannelWorld = "world"
	ChannelPlanq = "planq"
	ChannelDebug = "debug"
)

// Message is a single log entry
type Message struct {
	Timestamp int    `json:"timestamp"`
	Priority  int    `json:"priority"`
	Channel   string `json:"channel"`
	Text      string `json:"text"`
}

// Spans parses the message's markup
func (m Message) Spans() []Span {
	return Parse(m.Text)
}

// Channel is one named message stream
type Channel struct {
	Name     string    `json:"name"`
	Contents []Message `json:"contents"`
}

// Log holds every channel. Capacity caps each channel's length; 0 means unbounded.
type Log struct {
	Channels []*Channel `json:"channels"`
	Capacity int        `json:"capacity"`
	// Clock stamps messages added through TellPlayer / TellPlanq
	Clock int `json:"clock"`
}

// New creates a log with the world and planq channels already open
func New(capacity int) *Log {
	l := &Log{Capacity: capacity}
	l.channel(ChannelWorld)
	l.channel(ChannelPlanq)
	return l
}

// channel finds or creates the named channel
func (l *Log) channel(name string) *Channel {
	for _, ch := range l.Channels {
		if ch.Name == name {
			return ch
		}
	}
	ch := &Channel{Name: name}
	l.Channels = append(l.Channels, ch)
	return ch
}

func (l *Log) find(name string) *Channel {
	for _, ch := range l.Channels {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

// Add appends a message, creating the channel if needed
func (l *Log) Add(text, channel string, priority, timestamp int) {
	ch := l.channel(channel)
	ch.Contents = append(ch.Contents, Message{
		Timestamp: timestamp,
		Priority:  priority,
		Channel:   channel,
		Text:      text,
	})
	if l.Capacity > 0 && len(ch.Contents) > l.Capacity {
		ch.Contents = ch.Contents[len(ch.Contents)-l.Capacity:]
	}
}

// Replace overwrites the newest message of a channel
func (l *Log) Replace(text, channel string, priority, timestamp int) {
	if ch := l.find(channel); ch != nil && len(ch.Contents) > 0 {
		ch.Contents = ch.Contents[:len(ch.Contents)-1]
	}
	l.Add(text, channel, priority, timestamp)
}

// TellPlayer posts player feedback to the world channel
func (l *Log) TellPlayer(text string) {
	l.Add(text, ChannelWorld, 0, l.Clock)
}

// TellPlanq posts a line of PLANQ output
func (l *Log) TellPlanq(text string) {
	l.Add(text, ChannelPlanq, 0, l.Clock)
}

// Debug posts to the debug channel
func (l *Log) Debug(text string) {
	l.Add(text, ChannelDebug, 1, l.Clock)
}

// ChannelLen is the number of messages in a channel
func (l *Log) ChannelLen(channel string) int {
	if ch := l.find(channel); ch != nil {
		return len(ch.Contents)
	}
	return 0
}

// Clear empties a channel but keeps it open
func (l *Log) Clear(channel string) {
	if ch := l.find(channel); ch != nil {
		ch.Contents = nil
	}
}

// Messages returns the newest count messages of a channel, oldest first; 0 returns all
func (l *Log) Messages(channel string, count int) []Message {
	ch := l.find(channel)
	if ch == nil {
		return nil
	}
	start := 0
	if count > 0 && count < len(ch.Contents) {
		start = len(ch.Contents) - count
	}
	out := make([]Message, len(ch.Contents)-start)
	copy(out, ch.Contents[start:])
	return out
}

// Texts is Messages reduced to the raw text
func (l *Log) Texts(channel string, count int) []string {
	msgs := l.Messages(channel, count)
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

// Contains reports whether any message in the channel has exactly this text
func (l *Log) Contains(channel, text string) bool {
	if ch := l.find(channel); ch != nil {
		for _, m := range ch.Contents {
			if m.Text == text {
				return true
			}
		}
	}
	return false
}

// Last returns the newest message text of a channel, or ""
func (l *Log) Last(channel string) string {
	if ch := l.find(channel); ch != nil && len(ch.Contents) > 0 {
		return ch.Contents[len(ch.Contents)-1].Text
	}
	return ""
}

// Snapshot returns a deep copy for readers outside the update loop
func (l *Log) Snapshot() *Log {
	out := &Log{Capacity: l.Capacity, Clock: l.Clock}
	for _, ch := range l.Channels {
		contents := make([]Message, len(ch.Contents))
		copy(contents, ch.Contents)
		out.Channels = append(out.Channels, &Channel{Name: ch.Name, Contents: contents})
	}
	return out
}

// ChannelNames lists the channels in creation order
func (l *Log) ChannelNames() []string {
	names := make([]string, 0, len(l.Channels))
	for _, ch := range l.Channels {
		names = append(names, ch.Name)
	}
	return names
}
