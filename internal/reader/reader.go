// Released under an MIT license. See LICENSE.

// Package reader turns modal source text into terms.
package reader

import (
	"errors"
	"io"

	"github.com/michaelmacinnis/modal/internal/reader/lexer"
	"github.com/michaelmacinnis/modal/internal/reader/loc"
	"github.com/michaelmacinnis/modal/internal/reader/parser"
	"github.com/michaelmacinnis/modal/internal/term"
)

// Depth returns the number of unclosed parentheses in text.
// A negative depth means text has more closing than opening parentheses.
func Depth(text string) int {
	l := lexer.New("", text)
	for l.Token() != nil {
	}

	return l.Depth()
}

// Parse parses text, which must contain exactly one term.
// The name labels error locations.
func Parse(name, text string) (term.T, error) {
	p := parser.New(lexer.New(name, text).Token)

	c, err := p.Parse()
	if errors.Is(err, io.EOF) {
		return nil, &parser.Error{
			Source: loc.T{Char: 1, Line: 1, Name: name},
			Msg:    "empty input",
		}
	} else if err != nil {
		return nil, err
	}

	if p.More() {
		_, err = p.Parse()
		if err != nil {
			return nil, err
		}

		return nil, &parser.Error{
			Source: loc.T{Char: 1, Line: 1, Name: name},
			Msg:    "expected a single term",
		}
	}

	return c, nil
}

// ParseAll parses every term in text.
func ParseAll(name, text string) ([]term.T, error) {
	p := parser.New(lexer.New(name, text).Token)

	var terms []term.T

	for {
		c, err := p.Parse()
		if errors.Is(err, io.EOF) {
			return terms, nil
		} else if err != nil {
			return nil, err
		}

		terms = append(terms, c)
	}
}
