package domain

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

func enabled(on bool) string {
	if on {
		return "Enabled"
	}

	return "Disabled"
}

// statsSummaryText renders stats-summary.txt: the configuration of the run
// followed by the histograms.
func statsSummaryText(config m.StatsConfig, stats *Statistics) string {
	var b bytes.Buffer

	b.WriteString("Config:\n")
	fmt.Fprintf(&b, "    Minimum changes for one augmentation round: %d\n", config.MinChanges)
	fmt.Fprintf(&b, "    Maximum extra augmentation rounds (other than first round): %d\n", config.MaxExtraRounds)
	fmt.Fprintf(&b, "    Swap operands: %s\n", enabled(config.Operators.SwapOperands))
	fmt.Fprintf(&b, "    Rename variables: %s\n", enabled(config.Operators.RenameVariables))
	fmt.Fprintf(&b, "    Swap statements: %s\n", enabled(config.Operators.SwapStatements))
	b.WriteString("\nStats:\n\n")
	b.WriteString(stats.String())
	b.WriteString("\n")

	return b.String()
}

// writeStats writes every statistics file of the run into the stats
// directory.
func (w *workflow) writeStats(args RunArgs, stats *Statistics, summary m.StatsSummary, metrics *runMetrics) error {
	summaryPath := w.JoinPath(string(args.Stats), StatsSummaryFile)
	if err := w.WriteFile(summaryPath, []byte(statsSummaryText(summary.Config, stats)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", summaryPath, err)
	}

	var csvBuf bytes.Buffer
	if err := stats.WriteCSV(&csvBuf); err != nil {
		return err
	}

	csvPath := w.JoinPath(string(args.Stats), StatsCSVFile)
	if err := w.WriteFile(csvPath, csvBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode stats yaml: %w", err)
	}

	yamlPath := w.JoinPath(string(args.Stats), StatsYAMLFile)
	if err := w.WriteFile(yamlPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", yamlPath, err)
	}

	metricsPath := w.JoinPath(string(args.Stats), MetricsFile)
	if err := metrics.writeTextfile(metricsPath); err != nil {
		return fmt.Errorf("write %s: %w", metricsPath, err)
	}

	return nil
}
