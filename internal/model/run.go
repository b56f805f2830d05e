package model

// RunInfo describes a batch run before it starts.
type RunInfo struct {
	RunID          string
	Input          Path
	Output         Path
	Stats          Path
	Files          []Path
	Parallel       int
	Seed           uint64
	MinChanges     int
	MaxExtraRounds int
	Operators      Operators
}

// FileProgress reports the state of one record file of a run.
type FileProgress struct {
	// Index is the 0-based position of the file in the run.
	Index int
	// Total is the number of files of the run.
	Total  int
	Input  Path
	Output Path
	// Records counts the input records handled so far.
	Records int
	// Generated counts the output records written so far.
	Generated   int
	ParseFailed int
}

// StatsSummary is the machine-readable outcome of a run.
type StatsSummary struct {
	RunID            string             `yaml:"run_id"`
	Config           StatsConfig        `yaml:"config"`
	Records          int                `yaml:"records"`
	ParseFailed      int                `yaml:"parse_failed"`
	GeneratedMethods int                `yaml:"generated_methods"`
	Histograms       []HistogramSummary `yaml:"histograms"`
}

// StatsConfig is the augmentation configuration echoed in the statistics.
type StatsConfig struct {
	MinChanges     int       `yaml:"min_changes"`
	MaxExtraRounds int       `yaml:"max_extra_rounds"`
	Operators      Operators `yaml:"operators"`
}

// HistogramSummary is one histogram of the statistics.
type HistogramSummary struct {
	Name string `yaml:"name"`
	// Title is the human-readable heading of the histogram.
	Title string `yaml:"-"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Total int    `yaml:"total"`
	// Buckets is the compact "value: count" rendering.
	Buckets string      `yaml:"buckets"`
	Counts  map[int]int `yaml:"counts"`
}

// ExplainRow is one statement of a method as seen by the statement swapper.
type ExplainRow struct {
	Block    int
	Fraction int
	Index    int
	Pinned   bool
	Kind     string
	Text     string
	Reads    []string
	Writes   []string
}

// Explanation is the statement analysis of one method.
type Explanation struct {
	Method string
	// Labeled is set when a labeled statement keeps the whole method in place.
	Labeled bool
	Rows    []ExplainRow
}

// RecordFile is an input record file with the keys of its first record.
type RecordFile struct {
	Path Path
	Keys []string
	// Problem is set when the first record could not be read.
	Problem string
}
