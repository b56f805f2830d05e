package domain

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"codeaug.dev/pkg/codeaug/internal/domain/permute"
	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// PreviewResult holds a method next to the variants generated from it.
type PreviewResult struct {
	Original string
	Result   m.AugmentResult
}

// Preview augments a single method. Unlike Run, a method that does not
// parse is an error.
func (w *workflow) Preview(ctx context.Context, args PreviewArgs) (PreviewResult, error) {
	result := PreviewResult{Original: args.Code}

	if err := validateArgs(args); err != nil {
		return result, err
	}

	if _, err := w.Parse(ctx, args.Code); err != nil {
		return result, err
	}

	augmented, err := w.Augment(ctx, AugmentArgs{
		Code:           args.Code,
		MinChanges:     args.MinChanges,
		MaxExtraRounds: args.MaxExtraRounds,
		Operators:      args.Operators,
		Rand:           rand.New(rand.NewPCG(args.Seed, 0)),
	})
	if err != nil {
		return result, err
	}

	result.Result = augmented

	return result, nil
}

// Explain reports how the statement swapper sees the method: the fraction
// of every statement and the names it reads and writes.
func (w *workflow) Explain(ctx context.Context, args ExplainArgs) (m.Explanation, error) {
	var explanation m.Explanation

	if err := validateArgs(args); err != nil {
		return explanation, err
	}

	method, err := w.Parse(ctx, args.Code)
	if err != nil {
		return explanation, err
	}

	if method.Name != nil {
		explanation.Method = method.Name.Name
	}

	analysis := permute.Analyze(method)
	if analysis.Labeled {
		explanation.Labeled = true
		return explanation, nil
	}

	for blockIndex, block := range analysis.Blocks {
		for _, fraction := range block.Fractions {
			for _, rec := range fraction.Records {
				explanation.Rows = append(explanation.Rows, explainRow(method, blockIndex, rec))
			}
		}

		for _, rec := range block.Pinned {
			explanation.Rows = append(explanation.Rows, explainRow(method, blockIndex, rec))
		}
	}

	sort.SliceStable(explanation.Rows, func(i, j int) bool {
		a, b := explanation.Rows[i], explanation.Rows[j]
		if a.Block != b.Block {
			return a.Block < b.Block
		}

		return a.Index < b.Index
	})

	return explanation, nil
}

func explainRow(method *ir.Method, block int, rec *permute.Record) m.ExplainRow {
	row := m.ExplainRow{
		Block:    block,
		Fraction: rec.Fraction,
		Index:    rec.Index,
		Pinned:   rec.Pinned,
		Kind:     strings.TrimPrefix(fmt.Sprintf("%T", rec.Stmt), "*ir."),
		Text:     firstLine(ir.Text(method, rec.Stmt)),
		Reads:    rec.Reads(),
		Writes:   rec.Writes(),
	}

	if rec.Pinned {
		row.Fraction = -1
	}

	return row
}

func firstLine(text string) string {
	line, _, cut := strings.Cut(strings.TrimSpace(text), "\n")
	if cut {
		return strings.TrimSpace(line) + " ..."
	}

	return line
}
