// Package terminal checks the controlling terminal before the screen is acquired.
package terminal

import (
	"errors"
	"os"

	"github.com/samber/oops"
	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ErrNotTerminal is returned when stdin or stdout is redirected
var ErrNotTerminal = errors.New("not a terminal")

// Probe verifies that both stdin and stdout are attached to a terminal that
// is at least minWidth x minHeight cells
func Probe(minWidth, minHeight int) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return oops.In("terminal").Wrapf(ErrNotTerminal, "stdin and stdout must both be a terminal")
	}
	w, h := GetSize()
	if w < minWidth || h < minHeight {
		return oops.In("terminal").
			With("width", w).With("height", h).
			Errorf("terminal is %dx%d, need at least %dx%d", w, h, minWidth, minHeight)
	}
	return nil
}

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}
