package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/modal/internal/reader"
)

func parse(t *testing.T, namespace, name, pattern, replacement string) *T {
	t.Helper()

	p, err := reader.Parse("pattern", pattern)
	require.NoError(t, err)

	r, err := reader.Parse("replacement", replacement)
	require.NoError(t, err)

	return New(namespace, name, p, r)
}

func TestAttributes(t *testing.T) {
	r := parse(t, "math", "fact", "(fact ?n)", "(* ?n (fact (- ?n 1)))")

	assert.Equal(t, "math.fact", r.FullName())
	assert.Equal(t, "fact", r.Key())
	assert.Equal(t, "<math.fact> (fact ?n) (* ?n (fact (- ?n 1)))", r.String())
	assert.False(t, r.Base())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "", parse(t, "a", "b", "?x", "?x").Key())
	assert.Equal(t, "", parse(t, "a", "b", "()", "x").Key())
	assert.Equal(t, "", parse(t, "a", "b", "((f) ?x)", "x").Key())
	assert.Equal(t, "", parse(t, "a", "b", "(?f ?x)", "x").Key())
	assert.Equal(t, "car", parse(t, "list", "car", "(car (?h . ?t))", "?h").Key())
}

func TestBase(t *testing.T) {
	for _, c := range []struct {
		name, pattern, replacement string
		base                       bool
	}{
		// Numeric literal in the pattern.
		{"fact0", "(fact 0)", "1", true},
		{"fib1", "(fib 1)", "(fib 0)", true},
		// Empty list in the pattern.
		{"len", "(length ())", "0", true},
		{"rev", "(reverse () ?acc)", "(reverse ?acc ())", true},
		// Named as a base case.
		{"base", "(f ?x)", "(f ?x)", true},
		{"empty-case", "(g ?x)", "(g ?x)", true},
		{"f-zero", "(f ?x)", "(f (- ?x 1))", true},
		{"step", "(f ?x)", "(f (- ?x 1))", false},
		// Non-recursive replacement.
		{"square", "(square ?x)", "(* ?x ?x)", true},
		// Recursive.
		{"fact", "(fact ?n)", "(* ?n (fact (- ?n 1)))", false},
		{"length", "(length (?h . ?t))", "(+ 1 (length ?t))", false},
		// Mentioning a longer symbol is not recursion.
		{"facts", "(fact ?n)", "(factorial ?n)", true},
	} {
		r := parse(t, "test", c.name, c.pattern, c.replacement)
		assert.Equal(t, c.base, r.Base(), r.String())
	}
}

func TestBaseNamespace(t *testing.T) {
	assert.True(t, parse(t, "zero", "f", "(f ?x)", "(f ?x)").Base())
	assert.False(t, parse(t, "math", "f", "(f ?x)", "(f ?x)").Base())
}
