// Released under an MIT license. See LICENSE.

// Package rule provides modal's rewrite rule type.
package rule

import (
	"strings"

	"github.com/michaelmacinnis/modal/internal/term"
)

// T (rule) is a pattern and its replacement with a namespace-qualified name.
type T struct {
	namespace   string
	name        string
	pattern     term.T
	replacement term.T

	base bool
	key  string
}

type rule = T

// New creates a new rule. Derived attributes are computed once, here.
func New(namespace, name string, pattern, replacement term.T) *rule {
	r := &rule{
		namespace:   namespace,
		name:        name,
		pattern:     pattern,
		replacement: replacement,
	}

	if a, ok := head(pattern); ok && !a.IsVariable() {
		r.key = a.Text()
	}

	r.base = classify(r)

	return r
}

// Base returns true if r is a base case. Base cases are tried before
// recursive rules with the same key.
func (r *rule) Base() bool {
	return r.base
}

// FullName returns the namespace-qualified name of r.
func (r *rule) FullName() string {
	return r.namespace + "." + r.name
}

// Key returns the function symbol that r's pattern is indexed by.
// It is empty if the pattern is not a list headed by a plain atom.
func (r *rule) Key() string {
	return r.key
}

// Name returns the unqualified name of r.
func (r *rule) Name() string {
	return r.name
}

// Namespace returns the namespace of r.
func (r *rule) Namespace() string {
	return r.namespace
}

// Pattern returns r's pattern.
func (r *rule) Pattern() term.T {
	return r.pattern
}

// Replacement returns r's replacement.
func (r *rule) Replacement() term.T {
	return r.replacement
}

// String returns r in rule file syntax.
func (r *rule) String() string {
	return "<" + r.FullName() + "> " + r.pattern.String() + " " + r.replacement.String()
}

//nolint:gochecknoglobals
var hints = []string{"base", "empty", "zero"}

// A rule is a base case if its name contains one of the hints, if its
// pattern contains a numeric literal or an empty list, or if its
// replacement does not mention its own function symbol.
func classify(r *rule) bool {
	for _, h := range hints {
		if strings.Contains(r.FullName(), h) {
			return true
		}
	}

	if literal(r.pattern) {
		return true
	}

	if r.key == "" {
		return false
	}

	recursive := !term.Walk(r.replacement, func(a *term.Atom) bool {
		return a.Text() != r.key
	})

	return !recursive
}

func head(t term.T) (*term.Atom, bool) {
	l, ok := t.(*term.List)
	if !ok || l.Empty() {
		return nil, false
	}

	a, ok := l.At(0).(*term.Atom)

	return a, ok
}

func literal(t term.T) bool {
	switch v := t.(type) {
	case *term.Atom:
		return v.IsNumber()
	case *term.List:
		if v.Empty() {
			return true
		}

		for i := 0; i < v.Len(); i++ {
			if literal(v.At(i)) {
				return true
			}
		}
	}

	return false
}
