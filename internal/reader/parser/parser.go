// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for modal terms.
package parser

import (
	"errors"
	"io"

	"github.com/michaelmacinnis/modal/internal/reader/loc"
	"github.com/michaelmacinnis/modal/internal/reader/token"
	"github.com/michaelmacinnis/modal/internal/term"
)

// Error is a syntax error and the location where it was detected.
type Error struct {
	Source loc.T
	Msg    string
}

func (e *Error) Error() string {
	return e.Source.String() + ": " + e.Msg
}

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	item  func() *token.T // Function to call to get another token.
	last  loc.T           // Location of the last token consumed.
	token *token.T        // Token lookahead.
}

// New creates a new parser that reads tokens by calling item.
func New(item func() *token.T) *T {
	return &T{item: item}
}

// Parse returns the next complete term.
// When there are no more tokens, it returns io.EOF.
func (p *T) Parse() (c term.T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}

		c, err = nil, e
	}()

	if p.peek() == nil {
		return nil, io.EOF
	}

	return p.term(), nil
}

// More returns true if there are tokens left to parse.
func (p *T) More() bool {
	return p.peek() != nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		panic("nothing to consume")
	}

	t := p.token

	p.ahead = 0
	p.token = nil
	p.last = *t.Source()

	return t
}

func (p *T) fail(source loc.T, msg string) {
	panic(&Error{Source: source, Msg: msg})
}

func (p *T) list() term.T {
	p.consume()

	var elements []term.T

	for {
		t := p.peek()

		switch {
		case t == nil:
			p.fail(p.last, "unexpected end of input, expected ')'")
		case t.Is(')'):
			p.consume()

			return term.NewList(elements...)
		default:
			elements = append(elements, p.term())
		}
	}
}

func (p *T) peek() *token.T {
	if p.ahead == 0 {
		p.token = p.item()
		p.ahead = 1
	}

	return p.token
}

func (p *T) term() term.T {
	t := p.peek()

	switch {
	case t.Is('('):
		return p.list()
	case t.Is(token.Symbol):
		p.consume()

		return term.NewAtom(t.Value())
	}

	p.fail(*t.Source(), "unexpected '"+t.Value()+"'")

	return nil
}

// IsSyntax returns true if err is a syntax error.
func IsSyntax(err error) bool {
	var e *Error

	return errors.As(err, &e)
}
