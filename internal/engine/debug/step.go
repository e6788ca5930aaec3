// Released under an MIT license. See LICENSE.

package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/term"
)

// Step is an interactive sink that asks before every rewrite.
//
// Answering "n" abandons the rewrite. Answering "r" stops asking until
// the next evaluation. Anything else continues.
type Step struct {
	out    io.Writer
	prompt func(string) (string, error)
	run    bool
}

// NewStep creates a step sink that writes to out and reads answers by
// calling prompt.
func NewStep(prompt func(string) (string, error), out io.Writer) *Step {
	return &Step{out: out, prompt: prompt}
}

// Reset starts asking again.
func (s *Step) Reset() {
	s.run = false
}

// StepStart does nothing.
func (s *Step) StepStart(term.T) {}

// StepEnd does nothing.
func (s *Step) StepEnd(term.T) {}

// RuleApplied shows the rewrite and asks whether to continue.
func (s *Step) RuleApplied(r *rule.T, before, after term.T) bool {
	if s.run {
		return true
	}

	fmt.Fprintf(s.out, "Rule %s: %s -> %s\n", r.FullName(), before, after)

	answer, err := s.prompt("Continue? (y/n/r): ")
	if err != nil {
		// Nobody is left to answer.
		s.run = true

		return true
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return false
	case "r", "run":
		s.run = true

		fmt.Fprintln(s.out, "Running to end...")
	}

	return true
}

// Evaluation does nothing.
func (s *Step) Evaluation(term.T, term.T) {}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	var l Log

	var s Step

	// The sinks.
	_ = Sink(quiet{})
	_ = Sink(&l)
	_ = Sink(&s)

	// Step keeps state between notifications.
	_ = Resetter(&s)
}
