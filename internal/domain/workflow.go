package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codeaug.dev/pkg/codeaug/internal/adapter"
	"codeaug.dev/pkg/codeaug/internal/controller"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

// Stats file names inside the stats directory.
const (
	StatsDirName     = "stats"
	StatsSummaryFile = "stats-summary.txt"
	StatsCSVFile     = "stats.csv"
	StatsYAMLFile    = "stats.yaml"
	MetricsFile      = "metrics.prom"
)

// partialSuffix marks an output file that is still being written.
const partialSuffix = ".partial"

// recordsPerWorker sizes a batch: records are read, augmented concurrently
// and written in input order one batch at a time.
const recordsPerWorker = 16

// Workflow drives augmentation over record files and single methods.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.StatsSummary, error)
	Preview(ctx context.Context, args PreviewArgs) (PreviewResult, error)
	Explain(ctx context.Context, args ExplainArgs) (m.Explanation, error)
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.RecordStore
	adapter.MethodParser
	controller.UI
	Augmenter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	recordStore adapter.RecordStore,
	parser adapter.MethodParser,
	ui controller.UI,
	augmenter Augmenter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		RecordStore:     recordStore,
		MethodParser:    parser,
		UI:              ui,
		Augmenter:       augmenter,
	}
}

// recordOutput is the augmentation of one input record.
type recordOutput struct {
	result m.AugmentResult
	rows   []map[string]any
}

// Run augments every record file of the input directory into the output
// directory and writes the statistics of the run.
func (w *workflow) Run(ctx context.Context, args RunArgs) (summary m.StatsSummary, err error) {
	if err := validateArgs(args); err != nil {
		return summary, err
	}

	if args.Stats == "" {
		args.Stats = w.JoinPath(string(args.Output), StatsDirName)
	}

	if args.Parallel == 0 {
		args.Parallel = runtime.NumCPU()
	}

	runID := uuid.NewString()

	ctx, span := startRunSpan(ctx, args, runID)
	defer func() { endSpan(span, err) }()

	files, err := w.ListRecordFiles(ctx, args.Input)
	if err != nil {
		return summary, fmt.Errorf("list input files: %w", err)
	}

	if len(files) == 0 {
		return summary, fmt.Errorf("%w: %s has no %s file", ErrNoInputFiles, args.Input, adapter.RecordFileExt)
	}

	for _, dir := range []m.Path{args.Output, args.Stats} {
		if err := w.MkdirAll(dir); err != nil {
			return summary, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	mode := controller.WithRunMode()
	if args.Quiet {
		mode = controller.WithQuietMode()
	}

	if err := w.Start(ctx, mode); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return summary, err
	}

	defer w.Close(ctx)

	w.DisplayRunInfo(ctx, m.RunInfo{
		RunID:          runID,
		Input:          args.Input,
		Output:         args.Output,
		Stats:          args.Stats,
		Files:          files,
		Parallel:       args.Parallel,
		Seed:           args.Seed,
		MinChanges:     args.MinChanges,
		MaxExtraRounds: args.MaxExtraRounds,
		Operators:      args.Operators,
	})

	if w.SamePath(args.Input, args.Output) {
		slog.Warn("input and output directories are the same", "path", args.Input)
		w.DisplayWarning(ctx, "The input and output directories are the same; input files will be replaced.")
	}

	slog.Info("augmentation run started", "run_id", runID, "files", len(files), "parallel", args.Parallel, "seed", args.Seed)

	stats, err := NewStatistics()
	if err != nil {
		return summary, err
	}

	defer func() {
		if err := stats.Close(); err != nil {
			slog.Error("failed to release statistics", "error", err)
		}
	}()

	metrics := newRunMetrics(runID)

	for i, file := range files {
		progress := m.FileProgress{
			Index:  i,
			Total:  len(files),
			Input:  file,
			Output: w.JoinPath(string(args.Output), filepath.Base(string(file))),
		}

		if err := w.runFile(ctx, args, progress, stats, metrics); err != nil {
			return summary, err
		}
	}

	summary = stats.Summary(runID, m.StatsConfig{
		MinChanges:     args.MinChanges,
		MaxExtraRounds: args.MaxExtraRounds,
		Operators:      args.Operators,
	})
	metrics.setRounds(summary.Histograms[0])

	if err := w.writeStats(args, stats, summary, metrics); err != nil {
		return summary, err
	}

	slog.Info("augmentation run finished",
		"run_id", runID,
		"records", summary.Records,
		"parse_failed", summary.ParseFailed,
		"generated", summary.GeneratedMethods,
	)

	w.DisplayStatistics(ctx, summary)
	w.Wait(ctx)

	return summary, nil
}

// runFile augments one record file. Output goes to a partial file that
// replaces the target once every record is written, so the input may be
// replaced in place.
func (w *workflow) runFile(ctx context.Context, args RunArgs, progress m.FileProgress, stats *Statistics, metrics *runMetrics) (err error) {
	ctx, span := startFileSpan(ctx, progress.Input)
	defer func() { endSpan(span, err) }()

	slog.Info("augmenting file", "input", progress.Input, "output", progress.Output)
	w.DisplayFileStarted(ctx, progress)

	partial := progress.Output + partialSuffix

	writer, err := w.CreateWriter(partial)
	if err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}

		_ = writer.Close()

		if rmErr := w.Remove(partial); rmErr != nil {
			slog.Error("failed to remove partial output", "path", partial, "error", rmErr)
		}
	}()

	batch := make([]m.Record, 0, args.Parallel*recordsPerWorker)
	fileIndex := uint64(progress.Index)

	flush := func() error {
		outputs, err := w.augmentBatch(ctx, args, fileIndex, batch, metrics)
		if err != nil {
			return err
		}

		for _, out := range outputs {
			for _, row := range out.rows {
				if err := writer.Write(row); err != nil {
					return err
				}
			}

			if err := stats.Record(out.result); err != nil {
				return err
			}

			progress.Records++
			progress.Generated += len(out.rows)

			if out.result.ParseFailed {
				progress.ParseFailed++
			}

			w.DisplayRecordCompleted(ctx, progress)
		}

		batch = batch[:0]

		return nil
	}

	err = w.ReadRecords(ctx, progress.Input, func(rec m.Record) error {
		batch = append(batch, rec)
		if len(batch) < cap(batch) {
			return nil
		}

		return flush()
	})
	if err != nil {
		return fmt.Errorf("augment %s: %w", progress.Input, err)
	}

	if err := flush(); err != nil {
		return fmt.Errorf("augment %s: %w", progress.Input, err)
	}

	if err := writer.Close(); err != nil {
		return err
	}

	if err := w.Rename(partial, progress.Output); err != nil {
		return fmt.Errorf("finish %s: %w", progress.Output, err)
	}

	slog.Info("file augmented", "input", progress.Input, "records", progress.Records,
		"generated", progress.Generated, "parse_failed", progress.ParseFailed)
	w.DisplayFileCompleted(ctx, progress)

	return nil
}

// augmentBatch augments the records concurrently and returns their outputs
// in input order.
func (w *workflow) augmentBatch(ctx context.Context, args RunArgs, fileIndex uint64, batch []m.Record, metrics *runMetrics) ([]recordOutput, error) {
	outputs := make([]recordOutput, len(batch))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(args.Parallel)

	for i, rec := range batch {
		group.Go(func() error {
			start := time.Now()

			out, err := w.augmentRecord(groupCtx, args, fileIndex, rec)
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.Line, err)
			}

			metrics.observe(out.result, time.Since(start))

			outputs[i] = out

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return outputs, nil
}

// recordRand derives the random source of a record from the run seed and
// the record position, so results do not depend on scheduling.
func recordRand(seed, fileIndex uint64, line int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, fileIndex<<32|uint64(line)))
}

func (w *workflow) augmentRecord(ctx context.Context, args RunArgs, fileIndex uint64, rec m.Record) (recordOutput, error) {
	var out recordOutput

	code, ok := rec.Fields[args.CodeKey].(string)
	if !ok {
		slog.Warn("record has no method code", "line", rec.Line, "key", args.CodeKey)

		out.result.ParseFailed = true

		return out, nil
	}

	result, err := w.Augment(ctx, AugmentArgs{
		Code:           code,
		MinChanges:     args.MinChanges,
		MaxExtraRounds: args.MaxExtraRounds,
		Operators:      args.Operators,
		Rand:           recordRand(args.Seed, fileIndex, rec.Line),
	})
	if err != nil {
		return out, err
	}

	out.result = result

	for _, generated := range result.GeneratedMethods {
		row := maps.Clone(rec.Fields)
		row[args.CodeKey] = generated

		if args.TokensKey != "" {
			tokens, err := w.Tokens(ctx, generated)
			if err != nil {
				if !errors.Is(err, adapter.ErrParse) {
					return out, err
				}

				slog.Error("generated method does not tokenize", "line", rec.Line, "error", err)
				delete(row, args.TokensKey)
			} else {
				row[args.TokensKey] = tokens
			}
		}

		out.rows = append(out.rows, row)
	}

	return out, nil
}
