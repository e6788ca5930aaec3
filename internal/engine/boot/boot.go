// Released under an MIT license. See LICENSE.

// Package boot provides the standard rules that modal starts with.
package boot

import (
	_ "embed" // Blank import required by embed.
	"strings"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/loader"
)

// Name labels the standard rules in error messages.
const Name = "standard.modal"

//go:embed standard.modal
var source string //nolint:gochecknoglobals

// Source returns the text of the standard rules.
func Source() string {
	return source
}

// Rules returns the standard rules.
func Rules() ([]*rule.T, error) {
	return loader.Load(Name, strings.NewReader(source))
}
