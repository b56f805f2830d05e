package adapter

import (
	"context"
	"errors"
	"fmt"

	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// ErrParse reports source that is not a single well-formed method.
var ErrParse = errors.New("parse method")

// MethodParser lowers the source of one method into the language-neutral
// tree the mutation operators work on. Implementations hold no state between
// calls and are safe for concurrent use.
type MethodParser interface {
	// Language returns the language the parser accepts.
	Language() m.Language

	// Parse lowers the first method declared in src. Errors wrap ErrParse.
	Parse(ctx context.Context, src string) (*ir.Method, error)

	// Tokens returns the token texts of src in order, comments excluded.
	Tokens(ctx context.Context, src string) ([]string, error)

	// IsReserved reports whether name cannot be used as a variable name.
	IsReserved(name string) bool
}

// NewMethodParser returns the parser for lang.
func NewMethodParser(lang m.Language) (MethodParser, error) {
	switch lang {
	case m.LanguageGo:
		return NewGoMethodParser(), nil
	case m.LanguageJava:
		return NewJavaMethodParser(), nil
	}

	return nil, fmt.Errorf("no parser for language %q", lang)
}

func parseError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
