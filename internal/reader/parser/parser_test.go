package parser

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/modal/internal/reader/lexer"
)

func TestSequence(t *testing.T) {
	p := New(lexer.New("test", "a (b c)\n(d (e) ())").Token)

	var got []string

	for p.More() {
		c, err := p.Parse()
		require.NoError(t, err)

		got = append(got, c.String())
	}

	assert.Equal(t, []string{"a", "(b c)", "(d (e) ())"}, got)

	_, err := p.Parse()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestErrors(t *testing.T) {
	p := New(lexer.New("test", "(a\n  b c").Token)

	_, err := p.Parse()
	require.Error(t, err)
	assert.True(t, IsSyntax(err))
	assert.Equal(t, "test:2:5: unexpected end of input, expected ')'", err.Error())

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 2, e.Source.Line)

	assert.False(t, IsSyntax(io.EOF))
	assert.False(t, IsSyntax(fmt.Errorf("wrapped: %w", io.EOF)))
	assert.True(t, IsSyntax(fmt.Errorf("wrapped: %w", err)))
}
