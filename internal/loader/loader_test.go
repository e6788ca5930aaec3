package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/modal/internal/reader/parser"
)

const source = `# Factorial.
<math.fact> (fact ?n) (* ?n (fact (- ?n 1)))

   <math.fact0> (fact 0) 1
	# Indented comment.
<list.car>(car (?h . ?t)) ?h
<misc.id.v2> ?x ?x
`

func TestLoad(t *testing.T) {
	rules, err := Load("test.modal", strings.NewReader(source))
	require.NoError(t, err)
	require.Len(t, rules, 4)

	for i, expected := range []string{
		"<math.fact> (fact ?n) (* ?n (fact (- ?n 1)))",
		"<math.fact0> (fact 0) 1",
		"<list.car> (car (?h . ?t)) ?h",
		"<misc.id.v2> ?x ?x",
	} {
		assert.Equal(t, expected, rules[i].String())
	}

	assert.Equal(t, "misc", rules[3].Namespace())
	assert.Equal(t, "id.v2", rules[3].Name())
}

func TestLoadErrors(t *testing.T) {
	for text, expected := range map[string]string{
		"<a.b> (f ?x)\n":         "test.modal:1: invalid rule syntax: expected a pattern and a replacement, got 1 terms",
		"\n<a.b> (f ?x) ?x ?y\n": "test.modal:2: invalid rule syntax: expected a pattern and a replacement, got 3 terms",
		"# ok\n\nfact 1\n":       "test.modal:3: invalid rule syntax: expected <namespace.name> pattern replacement or >namespace.name<",
		"<ab> x y\n":             "test.modal:1: invalid rule syntax: expected <namespace.name> pattern replacement or >namespace.name<",
		"\n\n<a.b> (f ?x ?x\n":   "test.modal:3:13: unexpected end of input, expected ')'",
		"<a.b> (f ?x)) ?x\n":     "test.modal:1:13: unexpected ')'",
	} {
		_, err := Load("test.modal", strings.NewReader(text))
		require.Error(t, err, text)
		assert.True(t, strings.HasPrefix(err.Error(), expected), "%q: %v", text, err)
	}

	_, err := Load("test.modal", strings.NewReader("<a.b> (f ?x)) ?x\n"))
	assert.True(t, parser.IsSyntax(err))

	_, err = Load("test.modal", strings.NewReader("<a.b> x\n"))
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()

	write := func(name, text string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o600))
	}

	write("a.modal", "<a.one> (one) 1\n")
	write("b.modal", "<b.two> (two) 2\n<b.three> (three) 3\n")

	rules, err := Files(filepath.Join(dir, "*.modal"))
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "a.one", rules[0].FullName())
	assert.Equal(t, "b.three", rules[2].FullName())

	_, err = Files(filepath.Join(dir, "missing.modal"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	paths, err := Paths(filepath.Join(dir, "*.modal"), "missing.modal")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.modal"),
		filepath.Join(dir, "b.modal"),
		"missing.modal",
	}, paths)

	_, err = Paths("[")
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	assert.True(t, IsCommand("  <a.b> x y"))
	assert.True(t, IsCommand(">a.b<"))
	assert.False(t, IsCommand("(fact 5)"))
	assert.False(t, IsCommand(":help"))

	c, err := Parse("  <math.square> (square ?x) (* ?x ?x)  ")
	require.NoError(t, err)
	require.NotNil(t, c.Rule)
	assert.Equal(t, "math.square", c.Rule.FullName())
	assert.Equal(t, "square", c.Rule.Key())
	assert.Empty(t, c.Remove)

	c, err = Parse(">math.fact0<")
	require.NoError(t, err)
	assert.Nil(t, c.Rule)
	assert.Equal(t, "math.fact0", c.Remove)

	for _, s := range []string{">math<", "<math.x>", ">math.fact0< extra", "<.x> a b"} {
		_, err = Parse(s)
		assert.Error(t, err, s)
	}
}
