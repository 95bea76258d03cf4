// Package engine implements the league's scoring and scheduling calculations:
// handicap derivation from score history, net score and match-play point
// conversion, stroke-play ranking, and round-robin schedule generation.
//
// Every function is pure with respect to its return value and safe for
// concurrent use. Degenerate input (NaN, empty history, contradictory caps)
// never raises an error; it degrades to a documented fallback and reports the
// condition through the diagnostic logger.
package engine

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Engine evaluates scoring rules. The logger is a side channel for
// recoverable-condition warnings only; it never influences results.
type Engine struct {
	log logrus.FieldLogger
}

// New returns an Engine reporting diagnostics to log. A nil log discards them.
func New(log logrus.FieldLogger) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{log: log}
}
