// Package domain contains the augmentation workflow and its statistics.
package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-playground/validator/v10"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

var (
	// ErrNoInputFiles is returned when the input directory holds no record file.
	ErrNoInputFiles = errors.New("no input files")
	// ErrInvalidArgs wraps every argument validation failure.
	ErrInvalidArgs = errors.New("invalid arguments")
)

var argsValidate = validator.New()

func validateArgs(args any) error {
	if err := argsValidate.Struct(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	return nil
}

// AugmentArgs contains the arguments for augmenting one method.
type AugmentArgs struct {
	Code string
	// MinChanges is the number of changes a round needs to be kept.
	MinChanges     int `validate:"gte=1"`
	MaxExtraRounds int `validate:"gte=0"`
	Operators      m.Operators
	Rand           *rand.Rand `validate:"required"`
}

// RunArgs contains the arguments of a batch run.
type RunArgs struct {
	Input  m.Path `validate:"required"`
	Output m.Path `validate:"required"`
	// Stats defaults to the stats directory inside Output.
	Stats     m.Path
	CodeKey   string `validate:"required"`
	TokensKey string
	// Parallel bounds the records augmented at once; 0 uses every CPU.
	Parallel       int `validate:"gte=0"`
	Seed           uint64
	MinChanges     int `validate:"gte=1"`
	MaxExtraRounds int `validate:"gte=0"`
	Operators      m.Operators
	// Quiet limits the UI to warnings and the final statistics.
	Quiet bool
}

// PreviewArgs contains the arguments for previewing the variants of one method.
type PreviewArgs struct {
	Code           string `validate:"required"`
	MinChanges     int    `validate:"gte=1"`
	MaxExtraRounds int    `validate:"gte=0"`
	Operators      m.Operators
	Seed           uint64
}

// ExplainArgs contains the arguments for explaining the statement analysis
// of one method.
type ExplainArgs struct {
	Code string `validate:"required"`
}
