package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/reader"
)

func mk(t *testing.T, fullName, pattern, replacement string) *rule.T {
	t.Helper()

	p, err := reader.Parse("pattern", pattern)
	require.NoError(t, err)

	r, err := reader.Parse("replacement", replacement)
	require.NoError(t, err)

	ns, name := fullName, ""
	for i := range fullName {
		if fullName[i] == '.' {
			ns, name = fullName[:i], fullName[i+1:]

			break
		}
	}

	return rule.New(ns, name, p, r)
}

func names(rules []*rule.T) []string {
	s := make([]string, len(rules))
	for i, r := range rules {
		s[i] = r.FullName()
	}

	return s
}

func fixture(t *testing.T) *T {
	s := New()

	s.Add(
		mk(t, "math.fact", "(fact ?n)", "(* ?n (fact (- ?n 1)))"),
		mk(t, "math.fact0", "(fact 0)", "1"),
		mk(t, "list.car", "(car (?h . ?t))", "?h"),
		mk(t, "list.cdr", "(cdr (?h . ?t))", "?t"),
		mk(t, "misc.any", "?x", "?x"),
	)

	return s
}

func TestAdd(t *testing.T) {
	s := fixture(t)

	assert.Equal(t, 5, s.Size())
	assert.Equal(t, []string{"math.fact", "math.fact0"}, names(s.For("fact")))
	assert.Equal(t, []string{"list.car"}, names(s.For("car")))
	assert.Empty(t, s.For("fib"))
	assert.Empty(t, s.For(""))
	assert.Equal(t, []string{"car", "cdr", "fact"}, s.Keys())
}

func TestNamespaces(t *testing.T) {
	s := fixture(t)

	assert.Equal(t, []string{"list", "math", "misc"}, s.Namespaces())
	assert.Equal(t, []string{"list.car", "list.cdr"}, names(s.Namespace("list")))
	assert.Empty(t, s.Namespace("nope"))
}

func TestMatch(t *testing.T) {
	s := fixture(t)

	m, err := s.Match("math.*")
	require.NoError(t, err)
	assert.Equal(t, []string{"math.fact", "math.fact0"}, names(m))

	m, err = s.Match("*.c?r")
	require.NoError(t, err)
	assert.Equal(t, []string{"list.car", "list.cdr"}, names(m))

	_, err = s.Match("[")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	s := fixture(t)
	s.Add(mk(t, "math.fact0", "(fact 0)", "one"))

	before := s.Size()

	n := s.Remove("math.fact0")
	assert.Equal(t, 2, n)
	assert.Equal(t, before-n, s.Size())
	assert.Equal(t, []string{"math.fact"}, names(s.For("fact")))

	assert.Equal(t, 0, s.Remove("math.fact0"))
	assert.Equal(t, before-n, s.Size())

	assert.Equal(t, 1, s.Remove("math.fact"))
	assert.Empty(t, s.For("fact"))
	assert.NotContains(t, s.Keys(), "fact")

	// Every indexed rule is still in the global list.
	all := map[*rule.T]bool{}
	for _, r := range s.All() {
		all[r] = true
	}

	for _, k := range s.Keys() {
		for _, r := range s.For(k) {
			assert.True(t, all[r], r.FullName())
		}
	}
}

func TestReplace(t *testing.T) {
	s := fixture(t)

	s.Replace("list", []*rule.T{mk(t, "list.first", "(first (?h . ?t))", "?h")})

	assert.Equal(t, []string{"list.first"}, names(s.Namespace("list")))
	assert.Empty(t, s.For("car"))
	assert.Equal(t, []string{"list.first"}, names(s.For("first")))
	assert.Equal(t, 4, s.Size())
}
