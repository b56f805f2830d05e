package domain

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

var tracer = otel.Tracer("codeaug.domain")

// Record outcomes used as the "outcome" label.
const (
	outcomeAugmented   = "augmented"
	outcomeUnchanged   = "unchanged"
	outcomeParseFailed = "parse_failed"
)

// runMetrics holds the counters of one run in a private registry so runs do
// not share state. The registry is written out as a Prometheus textfile.
type runMetrics struct {
	registry *prometheus.Registry

	records   *prometheus.CounterVec
	generated prometheus.Counter
	changes   *prometheus.CounterVec
	duration  prometheus.Histogram
	rounds    *prometheus.GaugeVec
}

func newRunMetrics(runID string) *runMetrics {
	labels := prometheus.Labels{"run_id": runID}

	rm := &runMetrics{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "codeaug_records_total",
			Help:        "Input records by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "codeaug_generated_methods_total",
			Help:        "Augmented methods written",
			ConstLabels: labels,
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "codeaug_first_attempt_changes_total",
			Help:        "Changes made by the first round, by operator",
			ConstLabels: labels,
		}, []string{"operator"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "codeaug_augment_duration_seconds",
			Help:        "Time spent augmenting one record",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		rounds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "codeaug_generated_methods_per_record",
			Help:        "Records by number of generated methods",
			ConstLabels: labels,
		}, []string{"methods"}),
	}

	rm.registry.MustRegister(rm.records, rm.generated, rm.changes, rm.duration, rm.rounds)

	return rm
}

func (rm *runMetrics) observe(result m.AugmentResult, elapsed time.Duration) {
	rm.duration.Observe(elapsed.Seconds())

	switch {
	case result.ParseFailed:
		rm.records.WithLabelValues(outcomeParseFailed).Inc()
		return
	case len(result.GeneratedMethods) == 0:
		rm.records.WithLabelValues(outcomeUnchanged).Inc()
	default:
		rm.records.WithLabelValues(outcomeAugmented).Inc()
	}

	rm.generated.Add(float64(len(result.GeneratedMethods)))
	rm.changes.WithLabelValues(string(m.MutationSwapOperands)).Add(float64(result.FirstAttempt.SwapOperands))
	rm.changes.WithLabelValues(string(m.MutationRenameVariables)).Add(float64(result.FirstAttempt.RenameVariables))
	rm.changes.WithLabelValues(string(m.MutationSwapStatements)).Add(float64(result.FirstAttempt.SwapStatements))
}

// setRounds publishes the generated-methods histogram of the statistics.
func (rm *runMetrics) setRounds(summary m.HistogramSummary) {
	for _, k := range sortedKeys(summary.Counts) {
		rm.rounds.WithLabelValues(strconv.Itoa(k)).Set(float64(summary.Counts[k]))
	}
}

// writeTextfile writes the registry in the Prometheus text format.
func (rm *runMetrics) writeTextfile(path m.Path) error {
	return prometheus.WriteToTextfile(string(path), rm.registry)
}

func startRunSpan(ctx context.Context, args RunArgs, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Workflow.Run",
		trace.WithAttributes(
			attribute.String("codeaug.run_id", runID),
			attribute.String("codeaug.input", string(args.Input)),
			attribute.String("codeaug.output", string(args.Output)),
			attribute.Int("codeaug.parallel", args.Parallel),
		),
	)
}

func startFileSpan(ctx context.Context, path m.Path) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Workflow.File",
		trace.WithAttributes(attribute.String("codeaug.file", string(path))),
	)
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
