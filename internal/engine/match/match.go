// Released under an MIT license. See LICENSE.

// Package match provides modal's pattern matcher.
//
// Matching is structural and deterministic. A variable is bound the first
// time it is seen and every later occurrence must match an equal term.
// There is no backtracking.
//
// A subject that is itself a cons cell is taken apart as one. A proper
// cons chain matches a list pattern of the same elements.
package match

import (
	"github.com/michaelmacinnis/modal/internal/term"
)

// Bindings maps variable names, including the leading '?', to terms.
type Bindings map[string]term.T

// Match matches pattern against t.
// On success it returns the variable bindings and true.
func Match(pattern, t term.T) (Bindings, bool) {
	b := Bindings{}
	if !b.match(pattern, t) {
		return nil, false
	}

	return b, true
}

// Substitute replaces every variable in template that has a binding in b.
// Variables without a binding are left in place.
func Substitute(template term.T, b Bindings) term.T {
	if len(b) == 0 {
		return template
	}

	return b.substitute(template)
}

func (b Bindings) match(pattern, t term.T) bool {
	switch p := pattern.(type) {
	case *term.Atom:
		if !p.IsVariable() {
			return p.Equal(t)
		}

		if bound, ok := b[p.Text()]; ok {
			return bound.Equal(t)
		}

		b[p.Text()] = t

		return true

	case *term.List:
		l, ok := t.(*term.List)
		if !ok {
			return false
		}

		if head, tail, ok := term.Cons(p); ok {
			if l.Empty() {
				return false
			}

			if h, t, ok := term.Cons(l); ok {
				return b.match(head, h) && b.match(tail, t)
			}

			return b.match(head, l.At(0)) && b.match(tail, l.Rest(1))
		}

		if n, ok := term.Normalize(l).(*term.List); ok {
			l = n
		}

		if p.Len() != l.Len() {
			return false
		}

		for i := 0; i < p.Len(); i++ {
			if !b.match(p.At(i), l.At(i)) {
				return false
			}
		}

		return true
	}

	return false
}

func (b Bindings) substitute(template term.T) term.T {
	switch v := template.(type) {
	case *term.Atom:
		if !v.IsVariable() {
			return v
		}

		if bound, ok := b[v.Text()]; ok {
			return bound
		}

		return v

	case *term.List:
		var elements []term.T

		for i := 0; i < v.Len(); i++ {
			e := v.At(i)
			s := b.substitute(e)

			if elements == nil && s != e {
				elements = make([]term.T, i, v.Len())
				for j := 0; j < i; j++ {
					elements[j] = v.At(j)
				}
			}

			if elements != nil {
				elements = append(elements, s)
			}
		}

		if elements == nil {
			return v
		}

		return term.NewList(elements...)
	}

	return template
}
