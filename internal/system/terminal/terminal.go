// Released under an MIT license. See LICENSE.

// Package terminal provides information about the controlling terminal.
package terminal

import (
	"github.com/mattn/go-runewidth"
)

// DefaultWidth is used when the width of the terminal cannot be found.
const DefaultWidth = 80

// Fit truncates s, if necessary, so that it fits in width columns.
func Fit(s string, width int) string {
	if width <= 0 {
		return s
	}

	return runewidth.Truncate(s, width, "...")
}

// Width returns the width, in columns, of the terminal open on fd.
func Width(fd uintptr) int {
	if w, ok := width(fd); ok && w > 0 {
		return w
	}

	return DefaultWidth
}
