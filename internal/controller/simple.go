package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunInfo prints the settings of the run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info m.RunInfo) {
	if ctx.Err() != nil || s.mode == ModeQuiet {
		return
	}

	s.printf("%s", renderRunInfo(info))
}

// DisplayWarning prints a warning, in every mode.
func (s *SimpleUI) DisplayWarning(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "warning: %s\n", message)
}

// DisplayFileStarted prints the file about to be augmented.
func (s *SimpleUI) DisplayFileStarted(ctx context.Context, file m.FileProgress) {
	if ctx.Err() != nil || s.mode == ModeQuiet {
		return
	}

	s.printf("[%d/%d] %s -> %s\n", file.Index+1, file.Total, file.Input, file.Output)
}

// DisplayRecordCompleted is a no-op: plain output only reports whole files.
func (s *SimpleUI) DisplayRecordCompleted(_ context.Context, _ m.FileProgress) {}

// DisplayFileCompleted prints the counters of a finished file.
func (s *SimpleUI) DisplayFileCompleted(ctx context.Context, file m.FileProgress) {
	if ctx.Err() != nil || s.mode == ModeQuiet {
		return
	}

	s.printf("%s\n", renderFileLine(file))
}

// DisplayStatistics prints the statistics table of the run.
func (s *SimpleUI) DisplayStatistics(ctx context.Context, summary m.StatsSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderStatisticsTable(summary))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
