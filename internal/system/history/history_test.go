package history

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	err := Save(path, func(w io.Writer) (int, error) {
		return io.WriteString(w, "(fact 5)\n:rules math.*\n")
	})
	require.NoError(t, err)

	var b bytes.Buffer

	err = Load(path, func(r io.Reader) (int, error) {
		n, err := b.ReadFrom(r)

		return int(n), err
	})
	require.NoError(t, err)
	assert.Equal(t, "(fact 5)\n:rules math.*\n", b.String())
}

func TestLiner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	s := liner.NewLiner()
	defer s.Close()

	s.AppendHistory("(fib 10)")
	s.AppendHistory("(fact 5)")

	require.NoError(t, Save(path, s.WriteHistory))

	var lines []string

	require.NoError(t, Load(path, func(r io.Reader) (int, error) {
		b, err := io.ReadAll(r)
		lines = strings.Split(strings.TrimSpace(string(b)), "\n")

		return len(lines), err
	}))

	assert.Equal(t, []string{"(fib 10)", "(fact 5)"}, lines)
}

func TestMissing(t *testing.T) {
	called := false
	read := func(io.Reader) (int, error) {
		called = true

		return 0, nil
	}

	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing"), read))
	assert.NoError(t, Load("", read))
	assert.False(t, called)

	assert.NoError(t, Save("", func(io.Writer) (int, error) { return 0, errors.New("unused") }))
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, Save(filepath.Join(dir, "no", "such", "dir"), func(io.Writer) (int, error) { return 0, nil }))

	path := filepath.Join(dir, "history")
	failed := errors.New("failed")

	assert.ErrorIs(t, Save(path, func(io.Writer) (int, error) { return 0, failed }), failed)
	assert.ErrorIs(t, Load(path, func(io.Reader) (int, error) { return 0, failed }), failed)
}
