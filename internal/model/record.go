package model

// AugmentResult is the outcome of augmenting one method.
type AugmentResult struct {
	// GeneratedMethods holds every variant kept by the rounds, first round first.
	GeneratedMethods []string
	// FirstAttempt counts the changes of the first round, kept or not.
	FirstAttempt Changes
	// ParseFailed is set when the method could not be parsed.
	ParseFailed bool
}

// RecordStats is the per-record row of the statistics CSV.
type RecordStats struct {
	ParseFailed           bool    `msgpack:"parse_failed"`
	GeneratedMethodsCount int     `msgpack:"generated_methods_count"`
	FirstAttempt          Changes `msgpack:"first_attempt"`
}

// NewRecordStats summarizes an augmentation result.
func NewRecordStats(result AugmentResult) RecordStats {
	return RecordStats{
		ParseFailed:           result.ParseFailed,
		GeneratedMethodsCount: len(result.GeneratedMethods),
		FirstAttempt:          result.FirstAttempt,
	}
}

// Record is one decoded line of a JSONL input file.
type Record struct {
	// Line is the 1-based line number in the input file.
	Line int
	// Fields keeps the decoded JSON object.
	Fields map[string]any
}
