// Released under an MIT license. See LICENSE.

package debug

import (
	"go.uber.org/zap"

	"github.com/michaelmacinnis/modal/internal/engine/rule"
	"github.com/michaelmacinnis/modal/internal/term"
)

// Log is a sink that writes rewrites and built-in evaluations to a logger.
// When tracing, the start and end of every step are written too.
type Log struct {
	logger *zap.Logger
	trace  bool
}

// NewLog creates a sink that logs to l. A nil l discards everything.
func NewLog(l *zap.Logger, trace bool) *Log {
	if l == nil {
		l = zap.NewNop()
	}

	return &Log{logger: l, trace: trace}
}

// StepStart logs t when tracing.
func (s *Log) StepStart(t term.T) {
	if s.trace {
		s.logger.Info("step", zap.Stringer("term", t))
	}
}

// StepEnd logs t when tracing.
func (s *Log) StepEnd(t term.T) {
	if s.trace {
		s.logger.Info("final", zap.Stringer("term", t))
	}
}

// RuleApplied logs the rewrite and always continues.
func (s *Log) RuleApplied(r *rule.T, before, after term.T) bool {
	msg := "applied"
	if s.trace {
		msg = "rule"
	}

	s.logger.Info(msg,
		zap.String("rule", r.FullName()),
		zap.Stringer("before", before),
		zap.Stringer("after", after))

	return true
}

// Evaluation logs the change made by a built-in form.
func (s *Log) Evaluation(before, after term.T) {
	s.logger.Info("evaluated",
		zap.Stringer("before", before),
		zap.Stringer("after", after))
}
