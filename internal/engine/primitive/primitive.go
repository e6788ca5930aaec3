// Released under an MIT license. See LICENSE.

// Package primitive provides the built-in arithmetic, comparison and
// conditional forms. These never consult the rule set.
package primitive

import (
	"math"

	"github.com/michaelmacinnis/modal/internal/engine/failure"
	"github.com/michaelmacinnis/modal/internal/term"
)

type binary func(a, b float64) term.T

//nolint:gochecknoglobals
var (
	arithmetic = map[string]binary{
		"+": func(a, b float64) term.T { return term.Number(a + b) },
		"-": func(a, b float64) term.T { return term.Number(a - b) },
		"*": func(a, b float64) term.T { return term.Number(a * b) },
		"/": func(a, b float64) term.T { return term.Number(a / b) },
		"%": func(a, b float64) term.T { return term.Number(math.Mod(a, b)) },

		">":  func(a, b float64) term.T { return term.Bool(a > b) },
		"<":  func(a, b float64) term.T { return term.Bool(a < b) },
		">=": func(a, b float64) term.T { return term.Bool(a >= b) },
		"<=": func(a, b float64) term.T { return term.Bool(a <= b) },
	}

	equality = map[string]bool{
		"=":  true,
		"==": true,
		"!=": false,
	}
)

// Operators returns the symbols that Evaluate handles, in no particular order.
func Operators() []string {
	ops := []string{":", "if"}

	for op := range arithmetic {
		ops = append(ops, op)
	}

	for op := range equality {
		ops = append(ops, op)
	}

	return ops
}

// IsSpecial returns true if symbol names a built-in form.
func IsSpecial(symbol string) bool {
	return symbol == ":" || symbol == "if" || binop(symbol)
}

// Apply applies the binary operator op to the atoms a and b.
func Apply(op string, a, b term.T) (term.T, error) {
	x, ok := a.(*term.Atom)
	if !ok {
		return nil, failure.InvalidArgument("%s: operand is not an atom: %s", op, a)
	}

	y, ok := b.(*term.Atom)
	if !ok {
		return nil, failure.InvalidArgument("%s: operand is not an atom: %s", op, b)
	}

	if same, ok := equality[op]; ok {
		return term.Bool(x.Equal(y) == same), nil
	}

	f, ok := arithmetic[op]
	if !ok {
		return nil, failure.InvalidArgument("unknown operator: %s", op)
	}

	m, ok := x.Float()
	if !ok {
		return nil, failure.InvalidArgument("%s: not a number: %s", op, x)
	}

	n, ok := y.Float()
	if !ok {
		return nil, failure.InvalidArgument("%s: not a number: %s", op, y)
	}

	if n == 0 && (op == "/" || op == "%") {
		return nil, failure.DivisionByZero(op)
	}

	return f(m, n), nil
}

// Evaluate evaluates the special form l. Operands and branches are
// evaluated by calling eval.
func Evaluate(l *term.List, eval func(term.T) term.T) (term.T, error) {
	op := l.Symbol()

	switch op {
	case ":":
		if l.Len() != 4 {
			return nil, failure.InvalidArgument("expected (: op a b), got %s", l)
		}

		a, ok := l.At(1).(*term.Atom)
		if !ok {
			return nil, failure.InvalidArgument("operator is not an atom: %s", l.At(1))
		}

		return Apply(a.Text(), eval(l.At(2)), eval(l.At(3)))

	case "if":
		if l.Len() != 4 {
			return nil, failure.InvalidArgument("expected (if condition then else), got %s", l)
		}

		c := eval(l.At(1))

		switch {
		case c.Equal(term.True):
			return eval(l.At(2)), nil
		case c.Equal(term.False):
			return eval(l.At(3)), nil
		}

		return nil, failure.InvalidArgument("condition is not a boolean: %s", c)
	}

	if !binop(op) {
		return nil, failure.InvalidArgument("not a special form: %s", l)
	}

	if l.Len() != 3 {
		return nil, failure.InvalidArgument("expected (%s a b), got %s", op, l)
	}

	return Apply(op, eval(l.At(1)), eval(l.At(2)))
}

func binop(op string) bool {
	if _, ok := arithmetic[op]; ok {
		return true
	}

	_, ok := equality[op]

	return ok
}
