package input

// LineBuffer holds the line being typed into the PLANQ shell. It is owned by
// the input goroutine and never shared with the update loop.
type LineBuffer struct {
	runes []rune
	limit int
}

// NewLineBuffer creates a buffer that accepts up to limit characters; 0 is unlimited
func NewLineBuffer(limit int) *LineBuffer {
	return &LineBuffer{limit: limit}
}

// Insert appends typed text, dropping anything past the limit
func (b *LineBuffer) Insert(text string) {
	for _, r := range text {
		if b.limit > 0 && len(b.runes) >= b.limit {
			return
		}
		b.runes = append(b.runes, r)
	}
}

// Backspace deletes the last character
func (b *LineBuffer) Backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Submit returns the line and empties the buffer
func (b *LineBuffer) Submit() string {
	line := string(b.runes)
	b.runes = b.runes[:0]
	return line
}

// Clear discards the line
func (b *LineBuffer) Clear() {
	b.runes = b.runes[:0]
}

func (b *LineBuffer) String() string {
	return string(b.runes)
}
