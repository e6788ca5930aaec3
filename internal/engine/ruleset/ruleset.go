// Released under an MIT license. See LICENSE.

// Package ruleset provides the store that holds modal's rewrite rules.
//
// Rules are kept in insertion order and indexed by the function symbol of
// their pattern. A ruleset is not safe for concurrent use. Callers must not
// change it while an evaluation that reads from it is in progress.
package ruleset

import (
	"sort"

	"github.com/michaelmacinnis/adapted"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
)

// T (ruleset) is an ordered, indexed collection of rules.
type T struct {
	all   []*rule.T
	index map[string][]*rule.T
}

type ruleset = T

// New creates an empty ruleset.
func New() *ruleset {
	return &ruleset{index: map[string][]*rule.T{}}
}

// Add appends r. Rules with an empty key are stored but never indexed.
func (s *ruleset) Add(rules ...*rule.T) {
	for _, r := range rules {
		s.all = append(s.all, r)

		if k := r.Key(); k != "" {
			s.index[k] = append(s.index[k], r)
		}
	}
}

// All returns every rule in insertion order.
func (s *ruleset) All() []*rule.T {
	return append([]*rule.T(nil), s.all...)
}

// For returns the rules indexed by symbol, in insertion order.
func (s *ruleset) For(symbol string) []*rule.T {
	return append([]*rule.T(nil), s.index[symbol]...)
}

// Keys returns the indexed function symbols in sorted order.
func (s *ruleset) Keys() []string {
	keys := make([]string, 0, len(s.index))
	for k := range s.index {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Match returns the rules with a full name that matches the shell
// pattern glob, e.g. "math.*".
func (s *ruleset) Match(glob string) ([]*rule.T, error) {
	var matched []*rule.T

	for _, r := range s.all {
		ok, err := adapted.Match(glob, r.FullName())
		if err != nil {
			return nil, err
		}

		if ok {
			matched = append(matched, r)
		}
	}

	return matched, nil
}

// Namespace returns the rules in namespace ns, in insertion order.
func (s *ruleset) Namespace(ns string) []*rule.T {
	var rules []*rule.T

	for _, r := range s.all {
		if r.Namespace() == ns {
			rules = append(rules, r)
		}
	}

	return rules
}

// Namespaces returns the distinct namespaces in sorted order.
func (s *ruleset) Namespaces() []string {
	seen := map[string]bool{}
	namespaces := []string{}

	for _, r := range s.all {
		if ns := r.Namespace(); !seen[ns] {
			seen[ns] = true
			namespaces = append(namespaces, ns)
		}
	}

	sort.Strings(namespaces)

	return namespaces
}

// Remove deletes every rule named fullName and returns how many were
// removed. Removing a rule that does not exist is not an error.
func (s *ruleset) Remove(fullName string) int {
	return s.remove(func(r *rule.T) bool {
		return r.FullName() == fullName
	})
}

// Replace removes every rule in namespace ns and then adds rules.
func (s *ruleset) Replace(ns string, rules []*rule.T) {
	s.remove(func(r *rule.T) bool {
		return r.Namespace() == ns
	})

	s.Add(rules...)
}

// Size returns the number of rules.
func (s *ruleset) Size() int {
	return len(s.all)
}

func (s *ruleset) remove(doomed func(*rule.T) bool) int {
	kept := s.all[:0]

	n := 0

	for _, r := range s.all {
		if doomed(r) {
			n++

			continue
		}

		kept = append(kept, r)
	}

	for i := len(kept); i < len(s.all); i++ {
		s.all[i] = nil
	}

	s.all = kept

	if n == 0 {
		return 0
	}

	for k, bucket := range s.index {
		remaining := make([]*rule.T, 0, len(bucket))

		for _, r := range bucket {
			if !doomed(r) {
				remaining = append(remaining, r)
			}
		}

		if len(remaining) == 0 {
			delete(s.index, k)
		} else {
			s.index[k] = remaining
		}
	}

	return n
}
