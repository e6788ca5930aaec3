// Released under an MIT license. See LICENSE.

// Package debug provides the sinks that observe an evaluation.
package debug

import (
	"fmt"
	"strings"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/term"
)

// Mode selects how much of an evaluation is shown.
type Mode int

// Debug modes.
const (
	QuietMode Mode = iota
	DebugMode
	TraceMode
	StepMode
)

// Sink receives notifications as an evaluation proceeds.
//
// StepStart and StepEnd bracket the evaluation of each compound term.
// RuleApplied is called for every rewrite. Returning false abandons the
// rewrite and the term is kept as it was. Evaluation is called when a
// built-in form changes a term.
type Sink interface {
	StepStart(t term.T)
	StepEnd(t term.T)
	RuleApplied(r *rule.T, before, after term.T) bool
	Evaluation(before, after term.T)
}

// Resetter is implemented by sinks that keep state between notifications.
// Reset is called at the start of every top-level evaluation.
type Resetter interface {
	Reset()
}

type quiet struct{}

// Quiet is a sink that ignores everything.
//
//nolint:gochecknoglobals
var Quiet Sink = quiet{}

func (quiet) StepStart(term.T) {}
func (quiet) StepEnd(term.T) {}
func (quiet) RuleApplied(*rule.T, term.T, term.T) bool { return true }
func (quiet) Evaluation(term.T, term.T) {}

//nolint:gochecknoglobals
var modes = []string{"quiet", "debug", "trace", "step-by-step"}

// Modes returns the names of every mode.
func Modes() []string {
	return append([]string(nil), modes...)
}

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "step", "step_by_step":
		s = "step-by-step"
	}

	for i, name := range modes {
		if s == name {
			return Mode(i), nil
		}
	}

	return QuietMode, fmt.Errorf("unknown mode %q (expected one of %s)", s, strings.Join(modes, ", "))
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modes) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modes[m]
}
