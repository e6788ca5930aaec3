// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for modal terms.
//
// The lexer adapts the state function approach used by Go's text/template
// lexer and described in detail in Rob Pike's talk "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
package lexer

import (
	"unicode/utf8"

	"github.com/michaelmacinnis/modal/internal/reader/loc"
	"github.com/michaelmacinnis/modal/internal/reader/token"
)

// T holds the state of the scanner.
type T struct {
	bytes string // Buffer being scanned.
	depth int    // Open parentheses.
	first int    // Index of the current token's first byte.
	index int    // Index of the current byte.
	runes int    // Runes scanned on the current line.
	state action // Current action.

	source loc.T

	tokens chan *token.T
}

// New creates a new T for text. Label can be a file name or other identifier.
func New(label, text string) *T {
	return &T{
		bytes: text,
		runes: 1,
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
		state:  skipWhitespace,
		tokens: make(chan *token.T, 2),
	}
}

// Depth returns the number of parentheses opened, but not yet closed,
// by the tokens scanned so far.
func (l *T) Depth() int {
	return l.depth
}

// Text is used to return the text corresponding to the current token.
func (l *T) Text() string {
	return l.bytes[l.first:l.index]
}

// Token returns the next scanned token, or nil if no tokens remain.
func (l *T) Token() *token.T {
	for {
		select {
		case t := <-l.tokens:
			return t
		default:
			if l.state == nil {
				return nil
			}

			l.state = l.state(l)
		}
	}
}

type action func(*T) action

const eof = -1

func (l *T) accept(r token.Class, w int) {
	if r == '\n' {
		l.source.Line++
		l.runes = 1
	} else {
		l.runes++
	}

	l.index += w
}

func (l *T) emit(c token.Class, v string) {
	switch c {
	case '(':
		l.depth++
	case ')':
		l.depth--
	}

	l.tokens <- token.New(c, v, l.source)
	l.skip()
}

func (l *T) peek() (token.Class, int) {
	r, w := rune(eof), 0
	if l.index < len(l.bytes) {
		r, w = utf8.DecodeRuneInString(l.bytes[l.index:])
	}

	return token.Class(r), w
}

func (l *T) skip() {
	l.source.Char = l.runes
	l.first = l.index
}

func delimiter(r token.Class) bool {
	switch r {
	case eof, '\t', '\n', '\r', ' ', '(', ')':
		return true
	}

	return false
}

// T states.

func scanSymbol(l *T) action {
	for {
		r, w := l.peek()
		if delimiter(r) {
			l.emit(token.Symbol, l.Text())

			return skipWhitespace
		}

		l.accept(r, w)
	}
}

func skipComment(l *T) action {
	for {
		r, w := l.peek()

		switch r {
		case eof:
			l.skip()

			return nil
		case '\n':
			l.accept(r, w)
			l.skip()

			return skipWhitespace
		}

		l.accept(r, w)
	}
}

func skipWhitespace(l *T) action {
	for {
		r, w := l.peek()

		switch r {
		case eof:
			return nil
		case '\t', '\n', '\r', ' ':
			l.accept(r, w)
			l.skip()
		case '#':
			l.accept(r, w)

			return skipComment
		case '(', ')':
			l.accept(r, w)
			l.emit(r, l.Text())

			return skipWhitespace
		default:
			return scanSymbol
		}
	}
}
