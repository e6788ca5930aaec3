// Released under an MIT license. See LICENSE.

package engine

import (
	"github.com/michaelmacinnis/modal/internal/engine/failure"
	"github.com/michaelmacinnis/modal/internal/engine/match"
	"github.com/michaelmacinnis/modal/internal/engine/primitive"
	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/term"
)

// A fault carries an evaluation failure up to Evaluate.
type fault struct {
	err error
}

func raise(err error) {
	panic(&fault{err: err})
}

type guard struct {
	index int
	what  string
}

// Arguments that must not be negative, checked before any rule is tried.
//
//nolint:gochecknoglobals
var guards = map[string]guard{
	"drop": {1, "count"},
	"fact": {1, "argument"},
	"fib":  {1, "argument"},
	"pow":  {2, "exponent"},
	"take": {1, "count"},
}

// The state of a single top-level evaluation.
type state struct {
	*T

	active map[string]struct{} // Terms being evaluated.
	memo   map[string]term.T   // Results so far.
	steps  int
}

func fresh(e *T) *state {
	return &state{
		T:      e,
		active: map[string]struct{}{},
		memo:   map[string]term.T{},
	}
}

func (s *state) eval(t term.T) term.T {
	l, ok := t.(*term.List)
	if !ok || l.Empty() {
		return t
	}

	k := term.Key(l)

	if r, ok := s.memo[k]; ok {
		s.metrics.MemoHit()

		return r
	}

	if _, ok := s.active[k]; ok {
		s.metrics.CycleDetected()

		return t
	}

	s.steps++
	if s.steps > s.maxSteps {
		raise(failure.StepLimit(s.maxSteps))
	}

	s.active[k] = struct{}{}

	s.sink.StepStart(l)
	r := s.reduce(l)
	s.sink.StepEnd(r)

	delete(s.active, k)

	s.memo[k] = r

	// A result is its own result.
	if rk := term.Key(r); rk != k {
		if _, ok := s.memo[rk]; !ok {
			s.memo[rk] = r
		}
	}

	return r
}

func (s *state) reduce(l *term.List) term.T {
	f := l.Symbol()

	if primitive.IsSpecial(f) {
		r, err := primitive.Evaluate(l, s.eval)
		if err != nil {
			raise(err)
		}

		if !r.Equal(l) {
			s.sink.Evaluation(l, r)
		}

		return r
	}

	if n := s.arguments(l); n != l {
		return s.eval(n)
	}

	s.guard(l)

	for _, r := range s.candidates(f) {
		b, ok := match.Match(r.Pattern(), l)
		if !ok {
			continue
		}

		after := match.Substitute(r.Replacement(), b)

		s.metrics.Rewrote(r.FullName())

		if !s.sink.RuleApplied(r, l, after) {
			return l
		}

		return s.eval(after)
	}

	return l
}

// Arguments evaluates every element of l. If nothing changes l is returned.
func (s *state) arguments(l *term.List) *term.List {
	var elements []term.T

	for i := 0; i < l.Len(); i++ {
		e := l.At(i)
		r := s.eval(e)

		if elements == nil && r != e && !r.Equal(e) {
			elements = l.Elements()[:i]
		}

		if elements != nil {
			elements = append(elements, r)
		}
	}

	if elements == nil {
		return l
	}

	return term.NewList(elements...)
}

// Candidates returns the rules for f with base cases first.
func (s *state) candidates(f string) []*rule.T {
	rules := s.rules.For(f)

	ordered := make([]*rule.T, 0, len(rules))

	for _, r := range rules {
		if r.Base() {
			ordered = append(ordered, r)
		}
	}

	for _, r := range rules {
		if !r.Base() {
			ordered = append(ordered, r)
		}
	}

	return ordered
}

func (s *state) guard(l *term.List) {
	f := l.Symbol()

	g, ok := guards[f]
	if !ok || l.Len() <= g.index {
		return
	}

	a, ok := l.At(g.index).(*term.Atom)
	if !ok {
		return
	}

	if n, ok := a.Float(); ok && n < 0 {
		raise(failure.InvalidArgument("%s: negative %s: %s", f, g.what, a))
	}
}
