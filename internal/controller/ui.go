// Package controller provides the output adapters for augmentation runs.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeQuiet
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode shows progress while records are augmented.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithQuietMode only shows warnings and the final statistics.
func WithQuietMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeQuiet
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeRun}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI receives the progress of a run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish rendering
	DisplayRunInfo(ctx context.Context, info m.RunInfo)
	DisplayWarning(ctx context.Context, message string)
	DisplayFileStarted(ctx context.Context, file m.FileProgress)
	DisplayRecordCompleted(ctx context.Context, file m.FileProgress)
	DisplayFileCompleted(ctx context.Context, file m.FileProgress)
	DisplayStatistics(ctx context.Context, summary m.StatsSummary)
}

// NewUI returns the bubbletea UI when the command writes to a terminal and
// the plain text UI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
