// Released under an MIT license. See LICENSE.

// Package term provides modal's term type.
//
// A term is either an atom or a list. Numbers, booleans, variables and
// symbols are all atoms, distinguished only by their text. A cons cell is a
// three element list with the atom "." in the middle. It is a convention
// layered on top of lists and not a separate type.
package term

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
)

// Dot is the text of the atom that marks a cons cell.
const Dot = "."

// T (term) is the interface satisfied by atoms and lists.
type T interface {
	Equal(c T) bool
	Name() string
	String() string

	term()
}

// Atom is an indivisible term.
type Atom struct {
	text string
}

// List is an ordered, possibly empty, sequence of terms.
type List struct {
	elements []T
}

//nolint:gochecknoglobals
var (
	decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

	False = NewAtom("false")
	Nil   = NewList()
	True  = NewAtom("true")
)

// NewAtom creates an atom with the text s.
func NewAtom(s string) *Atom {
	return &Atom{text: s}
}

// NewList creates a list of elements. The slice is copied.
func NewList(elements ...T) *List {
	if len(elements) == 0 {
		return &List{}
	}

	return &List{elements: append([]T(nil), elements...)}
}

// Bool returns the boolean atom for b.
func Bool(b bool) *Atom {
	if b {
		return True
	}

	return False
}

// Number returns the numeric atom for f.
// Whole numbers are rendered without a decimal point. Everything
// else is rendered with six significant digits.
func Number(f float64) *Atom {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return NewAtom(strconv.FormatInt(int64(f), 10))
	}

	return NewAtom(fmt.Sprintf("%#.6g", f))
}

// Atom methods.

// Equal returns true if c is an atom with the same text as a.
func (a *Atom) Equal(c T) bool {
	b, ok := c.(*Atom)

	return ok && a.text == b.text
}

// Name returns the type name for atoms.
func (a *Atom) Name() string {
	return "atom"
}

// String returns the text of the atom a.
func (a *Atom) String() string {
	return a.text
}

// Text returns the text of the atom a.
func (a *Atom) Text() string {
	return a.text
}

// IsBoolean returns true if a is true or false.
func (a *Atom) IsBoolean() bool {
	return a.text == "true" || a.text == "false"
}

// IsNumber returns true if a is a decimal number. Hexadecimal floats,
// infinities and NaN are symbols.
func (a *Atom) IsNumber() bool {
	_, ok := a.Float()

	return ok
}

// IsVariable returns true if a is a pattern variable.
func (a *Atom) IsVariable() bool {
	return strings.HasPrefix(a.text, "?")
}

// Float returns the numeric value of a and whether a is a number.
func (a *Atom) Float() (float64, bool) {
	if !decimal.MatchString(a.text) {
		return 0, false
	}

	f, err := strconv.ParseFloat(a.text, 64)

	return f, err == nil
}

func (a *Atom) term() {}

// List methods.

// Equal returns true if c is a list with elements equal to l's.
func (l *List) Equal(c T) bool {
	m, ok := c.(*List)
	if !ok || len(l.elements) != len(m.elements) {
		return false
	}

	if l == m {
		return true
	}

	for i, e := range l.elements {
		if !e.Equal(m.elements[i]) {
			return false
		}
	}

	return true
}

// Name returns the type name for lists.
func (l *List) Name() string {
	return "list"
}

// String returns the text representation of the list l.
func (l *List) String() string {
	var b strings.Builder

	write(&b, l, func(a *Atom) string { return a.text })

	return b.String()
}

// At returns the element at index i.
func (l *List) At(i int) T {
	return l.elements[i]
}

// Elements returns a copy of the elements of l.
func (l *List) Elements() []T {
	return append([]T(nil), l.elements...)
}

// Empty returns true if l has no elements.
func (l *List) Empty() bool {
	return len(l.elements) == 0
}

// Len returns the number of elements in l.
func (l *List) Len() int {
	return len(l.elements)
}

// Rest returns a new list of the elements of l after the first n.
func (l *List) Rest(n int) *List {
	if n >= len(l.elements) {
		return Nil
	}

	return &List{elements: l.elements[n:]}
}

// Symbol returns the function symbol of l. This is the text of the
// first element, if it is an atom, or the empty string otherwise.
func (l *List) Symbol() string {
	if len(l.elements) == 0 {
		return ""
	}

	if a, ok := l.elements[0].(*Atom); ok {
		return a.text
	}

	return ""
}

func (l *List) term() {}

// Functions that work on any term.

// Cons returns the head and tail of t, if t is a cons cell.
func Cons(t T) (head, tail T, ok bool) {
	l, ok := t.(*List)
	if !ok || len(l.elements) != 3 {
		return nil, nil, false
	}

	if dot, isAtom := l.elements[1].(*Atom); !isAtom || dot.text != Dot {
		return nil, nil, false
	}

	return l.elements[0], l.elements[2], true
}

// Key returns an unambiguous identity for t. Two terms have the same key
// if and only if they are equal.
func Key(t T) string {
	var b strings.Builder

	write(&b, t, func(a *Atom) string { return adapted.CanonicalString(a.text) })

	return b.String()
}

// Normalize converts a cons chain that denotes a proper list into a list.
// Any other term is returned unchanged.
func Normalize(t T) T {
	var elements []T

	current := t
	for {
		head, tail, ok := Cons(current)
		if !ok {
			break
		}

		elements = append(elements, head)
		current = tail
	}

	if elements == nil {
		return t
	}

	rest, ok := current.(*List)
	if !ok {
		return t
	}

	return NewList(append(elements, rest.elements...)...)
}

// Symbol returns the function symbol of t or the empty string if t is
// not a list.
func Symbol(t T) string {
	if l, ok := t.(*List); ok {
		return l.Symbol()
	}

	return ""
}

// Walk calls f for every atom in t, depth first, until f returns false.
func Walk(t T, f func(a *Atom) bool) bool {
	switch v := t.(type) {
	case *Atom:
		return f(v)
	case *List:
		for _, e := range v.elements {
			if !Walk(e, f) {
				return false
			}
		}
	}

	return true
}

func write(b *strings.Builder, t T, atom func(*Atom) string) {
	switch v := t.(type) {
	case *Atom:
		b.WriteString(atom(v))
	case *List:
		b.WriteByte('(')

		for i, e := range v.elements {
			if i > 0 {
				b.WriteByte(' ')
			}

			write(b, e, atom)
		}

		b.WriteByte(')')
	}
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	var a Atom

	var l List

	// Atoms and lists are terms.
	_ = T(&a)
	_ = T(&l)
}
