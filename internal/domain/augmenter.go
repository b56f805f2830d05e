package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"codeaug.dev/pkg/codeaug/internal/adapter"
	"codeaug.dev/pkg/codeaug/internal/domain/mutagens"
	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// firstEffort is the strength of the first round. Its changes decide how
// many extra rounds follow.
var firstEffort = m.Effort{
	OperandProbability: 0.75,
	RenameProbability:  0.75,
	StatementDensity:   2,
}

// Augmenter produces variants of a single method.
type Augmenter interface {
	Augment(ctx context.Context, args AugmentArgs) (m.AugmentResult, error)
}

type augmenter struct {
	adapter.MethodParser
	operators map[m.MutationType]mutagens.Operator
}

// NewAugmenter creates an Augmenter for the language of parser.
func NewAugmenter(parser adapter.MethodParser) Augmenter {
	return &augmenter{
		MethodParser: parser,
		operators:    mutagens.Registry(parser.IsReserved, slog.Default()),
	}
}

// Augment runs a first round at fixed strength and keeps it when it made at
// least MinChanges changes. Every MinChanges changes beyond the first buy one
// extra round, up to MaxExtraRounds; extra rounds start again from the
// original method at a random strength and are always kept. A method that
// does not parse is reported through ParseFailed.
func (a *augmenter) Augment(ctx context.Context, args AugmentArgs) (m.AugmentResult, error) {
	var result m.AugmentResult

	if err := validateArgs(args); err != nil {
		return result, err
	}

	method, err := a.Parse(ctx, args.Code)
	if err != nil {
		if errors.Is(err, adapter.ErrParse) {
			slog.Debug("method did not parse", "language", a.Language(), "error", err)

			result.ParseFailed = true

			return result, nil
		}

		return result, err
	}

	changes, err := a.round(method, firstEffort, args)
	if err != nil {
		return result, err
	}

	result.FirstAttempt = changes
	if changes.Total() >= args.MinChanges {
		result.GeneratedMethods = append(result.GeneratedMethods, ir.Render(method))
	}

	extra := min(args.MaxExtraRounds, changes.Total()/args.MinChanges-1)

	for range extra {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		method, err := a.Parse(ctx, args.Code)
		if err != nil {
			return result, fmt.Errorf("parse for extra round: %w", err)
		}

		if _, err := a.round(method, randomEffort(args.Rand), args); err != nil {
			return result, err
		}

		result.GeneratedMethods = append(result.GeneratedMethods, ir.Render(method))
	}

	return result, nil
}

// round applies every enabled operator once, in registry order.
func (a *augmenter) round(method *ir.Method, effort m.Effort, args AugmentArgs) (m.Changes, error) {
	var changes m.Changes

	for _, typ := range args.Operators.Types() {
		n, err := a.operators[typ](method, effort, args.Rand)
		if err != nil {
			return changes, fmt.Errorf("%s: %w", typ, err)
		}

		changes.Add(typ, n)
	}

	return changes, nil
}

// randomEffort draws the strength of an extra round.
func randomEffort(rng *rand.Rand) m.Effort {
	return m.Effort{
		OperandProbability: 0.5 + rng.Float64()*0.5,
		RenameProbability:  0.5 + rng.Float64()*0.5,
		StatementDensity:   1 + rng.Float64()*9,
	}
}
