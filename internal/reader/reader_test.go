package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/modal/internal/reader/parser"
)

func TestParse(t *testing.T) {
	for input, expected := range map[string]string{
		"a":                       "a",
		"  ?x  ":                  "?x",
		"()":                      "()",
		"( a b (c ?x) )":          "(a b (c ?x))",
		"(fact (- ?n 1))":         "(fact (- ?n 1))",
		"(?h . ?t)":               "(?h . ?t)",
		"(a\n  b) # trailing":     "(a b)",
		"# comment\n(+ 1 2)":      "(+ 1 2)",
		"(f a#b)":                 "(f a#b)",
		"(((deep)))":              "(((deep)))",
		"(-5 3.25 1e3 <= != ==)": "(-5 3.25 1e3 <= != ==)",
	} {
		c, err := Parse("test", input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, c.String(), input)
	}
}

func TestParseErrors(t *testing.T) {
	for input, msg := range map[string]string{
		"(a b":      "test:1:4: unexpected end of input, expected ')'",
		")":         "test:1:1: unexpected ')'",
		"(a))":      "test:1:4: unexpected ')'",
		"":          "test:1:1: empty input",
		"   # only": "test:1:1: empty input",
		"a b":       "test:1:1: expected a single term",
		"(a\n(b c)": "test:2:5: unexpected end of input, expected ')'",
	} {
		_, err := Parse("test", input)
		require.Error(t, err, input)
		assert.True(t, parser.IsSyntax(err), input)
		assert.Equal(t, msg, err.Error(), input)
	}
}

func TestParseAll(t *testing.T) {
	terms, err := ParseAll("test", "(fact 0) 1\n(fact ?n) (* ?n (fact (- ?n 1)))")
	require.NoError(t, err)
	require.Len(t, terms, 4)
	assert.Equal(t, "(* ?n (fact (- ?n 1)))", terms[3].String())

	_, err = ParseAll("test", "(a) (b")
	assert.Error(t, err)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth("(a (b c))"))
	assert.Equal(t, 2, Depth("(a (b"))
	assert.Equal(t, -1, Depth("a)"))
	assert.Equal(t, 0, Depth("# (((\na"))
}
