// Package permute reorders independent statements of a method body.
//
// Every block is cut into fractions at calls, control transfers and other
// statements with effects the engine cannot see through. Inside a fraction a
// def-use graph over plain names decides which pairs of statements may trade
// places; the scheduler samples pairs at random and commits the legal ones.
package permute

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

type options struct {
	strict bool
	logger *slog.Logger
}

// Option configures SwapStatements.
type Option func(*options)

// WithStrict makes internal inconsistencies fail the call instead of only
// abandoning the affected fraction.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger used for skipped methods and abandoned fractions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type engine struct {
	density float64
	rng     *rand.Rand
	opts    options
}

// SwapStatements reorders statements of the method body in place and returns
// the number of committed swaps. density is the expected number of attempts
// per statement of a fraction.
func SwapStatements(method *ir.Method, density float64, rng *rand.Rand, opts ...Option) (int, error) {
	return swapAnalyzed(method, Analyze(method), density, rng, opts...)
}

func swapAnalyzed(method *ir.Method, analysis *Analysis, density float64, rng *rand.Rand, opts ...Option) (int, error) {
	cfg := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if analysis.Labeled {
		cfg.logger.Info("statement swap skipped: labeled statement", "method", methodName(method))
		return 0, nil
	}

	e := &engine{density: max(density, 0), rng: rng, opts: cfg}
	total := 0

	for _, block := range analysis.Blocks {
		for _, fraction := range block.Fractions {
			changes, err := e.shuffle(fraction)
			total += changes

			if err == nil {
				continue
			}

			if cfg.strict {
				return total, fmt.Errorf("swap statements in %s: %w", methodName(method), err)
			}

			cfg.logger.Error("statement swap abandoned fraction",
				"method", methodName(method),
				"fraction", fraction.ID,
				"error", err,
			)
		}
	}

	return total, nil
}

func methodName(method *ir.Method) string {
	if method.Name == nil {
		return "<anonymous>"
	}

	return method.Name.Name
}
