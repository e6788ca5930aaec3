// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for modal terms.
package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/michaelmacinnis/modal/internal/engine/debug"
	"github.com/michaelmacinnis/modal/internal/engine/failure"
	"github.com/michaelmacinnis/modal/internal/engine/ruleset"
	"github.com/michaelmacinnis/modal/internal/metrics"
	"github.com/michaelmacinnis/modal/internal/term"
)

// DefaultMaxSteps is the number of steps allowed for one evaluation
// unless WithMaxSteps says otherwise.
const DefaultMaxSteps = 10000

// T (engine) evaluates terms against a rule set.
type T struct {
	logger   *zap.Logger
	maxSteps int
	metrics  *metrics.T
	rules    *ruleset.T
	sink     debug.Sink
}

// Option configures an engine.
type Option func(*T)

// New creates a new engine that rewrites terms using rules.
func New(rules *ruleset.T, options ...Option) *T {
	e := &T{
		logger:   zap.NewNop(),
		maxSteps: DefaultMaxSteps,
		rules:    rules,
		sink:     debug.Quiet,
	}

	for _, o := range options {
		o(e)
	}

	return e
}

// WithLogger logs a summary of every evaluation to l.
func WithLogger(l *zap.Logger) Option {
	return func(e *T) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxSteps sets the number of steps allowed for one evaluation.
// Values less than one are ignored.
func WithMaxSteps(n int) Option {
	return func(e *T) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithMetrics records engine metrics in m.
func WithMetrics(m *metrics.T) Option {
	return func(e *T) {
		e.metrics = m
	}
}

// WithSink sends debug notifications to s.
func WithSink(s debug.Sink) Option {
	return func(e *T) {
		e.SetSink(s)
	}
}

// MaxSteps returns the number of steps allowed for one evaluation.
func (e *T) MaxSteps() int {
	return e.maxSteps
}

// Metrics returns the engine's metrics, which may be nil.
func (e *T) Metrics() *metrics.T {
	return e.metrics
}

// Rules returns the rule set the engine rewrites with.
func (e *T) Rules() *ruleset.T {
	return e.rules
}

// SetSink replaces the debug sink. A nil sink is quiet.
// It must not be called during an evaluation.
func (e *T) SetSink(s debug.Sink) {
	if s == nil {
		s = debug.Quiet
	}

	e.sink = s
}

// Evaluate reduces t to its normal form.
//
// Any error returned wraps one of the failure package's sentinel errors.
func (e *T) Evaluate(t term.T) (result term.T, err error) {
	id := uuid.New()
	start := time.Now()

	if r, ok := e.sink.(debug.Resetter); ok {
		r.Reset()
	}

	s := fresh(e)

	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*fault)
			if !ok {
				panic(r)
			}

			result, err = nil, f.err
		}

		e.record(id, t, result, err, s.steps, time.Since(start))
	}()

	return term.Normalize(s.eval(t)), nil
}

func (e *T) record(id uuid.UUID, t, result term.T, err error, steps int, d time.Duration) {
	outcome := "ok"

	switch failure.Kind(err) {
	case failure.ErrInvalidArgument:
		outcome = "invalid_argument"
	case failure.ErrDivisionByZero:
		outcome = "division_by_zero"
	case failure.ErrStepLimit:
		outcome = "step_limit"
	}

	e.metrics.Evaluated(outcome, steps, d)

	if ce := e.logger.Check(zap.DebugLevel, "evaluated"); ce != nil {
		fields := []zap.Field{
			zap.Stringer("id", id),
			zap.Stringer("term", t),
			zap.Int("steps", steps),
			zap.Duration("duration", d),
			zap.String("outcome", outcome),
		}

		if err != nil {
			fields = append(fields, zap.Error(err))
		} else {
			fields = append(fields, zap.Stringer("result", result))
		}

		ce.Write(fields...)
	}
}
