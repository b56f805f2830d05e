package domain

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	m "codeaug.dev/pkg/codeaug/internal/model"
	pkg "codeaug.dev/pkg/codeaug/pkg"
)

// maxBuckets bounds the buckets CountOfNumbers.String prints.
const maxBuckets = 50

// CountOfNumbers is a histogram over integers.
type CountOfNumbers struct {
	counts map[int]int
	min    int
	max    int
}

// Increment counts one occurrence of n.
func (c *CountOfNumbers) Increment(n int) {
	if len(c.counts) == 0 {
		c.counts = make(map[int]int)
		c.min, c.max = n, n
	}

	c.min = min(c.min, n)
	c.max = max(c.max, n)
	c.counts[n]++
}

// Count returns the occurrences of n.
func (c *CountOfNumbers) Count(n int) int {
	return c.counts[n]
}

// Total returns the number of increments.
func (c *CountOfNumbers) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}

	return total
}

// String prints "value: count" pairs from min to max. Wide ranges are folded
// into buckets of equal width so at most about fifty pairs print.
func (c *CountOfNumbers) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d: %d", c.min, c.counts[c.min])

	step := 1
	if c.max-c.min > maxBuckets {
		step = (c.max - c.min) / maxBuckets
	}

	for i := c.min + 1; i <= c.max; i += step {
		sum := 0
		for j := range step {
			sum += c.counts[i+j]
		}

		if step == 1 {
			fmt.Fprintf(&b, ", %d: %d", i, sum)
		} else {
			fmt.Fprintf(&b, ", %d-%d: %d", i, i+step-1, sum)
		}
	}

	return b.String()
}

// CSV prints two lines: every value from min to max, then their counts.
func (c *CountOfNumbers) CSV() string {
	values := make([]string, 0, c.max-c.min+1)
	counts := make([]string, 0, c.max-c.min+1)

	for i := c.min; i <= c.max; i++ {
		values = append(values, strconv.Itoa(i))
		counts = append(counts, strconv.Itoa(c.counts[i]))
	}

	return strings.Join(values, ",") + "\n" + strings.Join(counts, ",")
}

func (c *CountOfNumbers) summary(name, title string) m.HistogramSummary {
	counts := make(map[int]int, len(c.counts))
	for k, v := range c.counts {
		counts[k] = v
	}

	return m.HistogramSummary{
		Name:    name,
		Title:   title,
		Min:     c.min,
		Max:     c.max,
		Total:   c.Total(),
		Buckets: c.String(),
		Counts:  counts,
	}
}

// StatsCSVHeader is the header row of stats.csv.
var StatsCSVHeader = []string{
	"parse_failed",
	"generated_methods_count",
	"first_attempt_swap_operands_changes",
	"first_attempt_rename_variable_changes",
	"first_attempt_swap_statements_changes",
}

// Statistics aggregates the augmentation results of a run. Per-record rows
// are spilled to disk; the histograms cover the records that parsed.
type Statistics struct {
	mu sync.Mutex

	records     int
	parseFailed int
	generated   int

	rounds          CountOfNumbers
	swapOperands    CountOfNumbers
	renameVariables CountOfNumbers
	swapStatements  CountOfNumbers

	rows pkg.FileSpill[m.RecordStats]
}

// NewStatistics creates empty statistics. Close releases the row spill.
func NewStatistics() (*Statistics, error) {
	rows, err := pkg.NewFileSpill[m.RecordStats]()
	if err != nil {
		return nil, err
	}

	return &Statistics{rows: rows}, nil
}

// Record adds the result of one record.
func (s *Statistics) Record(result m.AugmentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records++

	if err := s.rows.Append(m.NewRecordStats(result)); err != nil {
		return fmt.Errorf("spill record stats: %w", err)
	}

	if result.ParseFailed {
		s.parseFailed++
		return nil
	}

	s.generated += len(result.GeneratedMethods)
	s.rounds.Increment(len(result.GeneratedMethods))
	s.swapOperands.Increment(result.FirstAttempt.SwapOperands)
	s.renameVariables.Increment(result.FirstAttempt.RenameVariables)
	s.swapStatements.Increment(result.FirstAttempt.SwapStatements)

	return nil
}

// String renders the human-readable statistics.
func (s *Statistics) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder

	fmt.Fprintf(&b, "parse failed: %d\n", s.parseFailed)
	fmt.Fprintf(&b, "code augmentation rounds (number of generated methods) (rounds: count):\n%s\n", &s.rounds)
	fmt.Fprintf(&b, "first attempt swap operands changes (changes: count):\n%s\n", &s.swapOperands)
	fmt.Fprintf(&b, "first attempt rename variable changes (changes: count):\n%s\n", &s.renameVariables)
	fmt.Fprintf(&b, "first attempt swap statements changes (changes: count):\n%s", &s.swapStatements)

	return b.String()
}

// WriteCSV writes one row per recorded result, in recording order.
func (s *Statistics) WriteCSV(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := csv.NewWriter(w)
	if err := out.Write(StatsCSVHeader); err != nil {
		return err
	}

	err := s.rows.Range(func(_ uint64, row m.RecordStats) error {
		failed := "0"
		if row.ParseFailed {
			failed = "1"
		}

		return out.Write([]string{
			failed,
			strconv.Itoa(row.GeneratedMethodsCount),
			strconv.Itoa(row.FirstAttempt.SwapOperands),
			strconv.Itoa(row.FirstAttempt.RenameVariables),
			strconv.Itoa(row.FirstAttempt.SwapStatements),
		})
	})
	if err != nil {
		return fmt.Errorf("write stats rows: %w", err)
	}

	out.Flush()

	return out.Error()
}

// Summary returns the machine-readable statistics.
func (s *Statistics) Summary(runID string, config m.StatsConfig) m.StatsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return m.StatsSummary{
		RunID:            runID,
		Config:           config,
		Records:          s.records,
		ParseFailed:      s.parseFailed,
		GeneratedMethods: s.generated,
		Histograms: []m.HistogramSummary{
			s.rounds.summary("generated_methods", "code augmentation rounds (number of generated methods)"),
			s.swapOperands.summary("first_attempt_swap_operands_changes", "first attempt swap operands changes"),
			s.renameVariables.summary("first_attempt_rename_variable_changes", "first attempt rename variable changes"),
			s.swapStatements.summary("first_attempt_swap_statements_changes", "first attempt swap statements changes"),
		},
	}
}

// Close releases the spilled rows.
func (s *Statistics) Close() error {
	return s.rows.Close()
}

// sortedKeys returns the keys of counts in increasing order.
func sortedKeys(counts map[int]int) []int {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Ints(keys)

	return keys
}
