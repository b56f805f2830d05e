package mutagens

import (
	"log/slog"
	"math/rand/v2"

	"codeaug.dev/pkg/codeaug/internal/domain/permute"
	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// Operator applies one mutation type to a method in place and returns the
// number of changes it made.
type Operator func(method *ir.Method, effort m.Effort, rng *rand.Rand) (int, error)

// Registry returns the operator of every mutation type. reserved is handed to
// the rename operator; logger receives the statement engine diagnostics.
func Registry(reserved func(string) bool, logger *slog.Logger) map[m.MutationType]Operator {
	if logger == nil {
		logger = slog.Default()
	}

	return map[m.MutationType]Operator{
		m.MutationSwapOperands: func(method *ir.Method, effort m.Effort, rng *rand.Rand) (int, error) {
			return SwapOperands(method, effort.OperandProbability, rng), nil
		},
		m.MutationRenameVariables: func(method *ir.Method, effort m.Effort, rng *rand.Rand) (int, error) {
			return RenameVariables(method, effort.RenameProbability, rng, reserved), nil
		},
		m.MutationSwapStatements: func(method *ir.Method, effort m.Effort, rng *rand.Rand) (int, error) {
			return SwapStatements(method, effort.StatementDensity, rng, logger)
		},
	}
}

// SwapStatements reorders independent statements of the method. Inconsistent
// fractions are logged and skipped, never returned as errors.
func SwapStatements(method *ir.Method, density float64, rng *rand.Rand, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	return permute.SwapStatements(method, density, rng, permute.WithLogger(logger))
}
