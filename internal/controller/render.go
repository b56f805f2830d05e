package controller

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}

	return "off"
}

func renderRunInfo(info m.RunInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Augmenting %d file(s) from %s into %s with %d worker(s)\n",
		len(info.Files), info.Input, info.Output, info.Parallel)
	fmt.Fprintf(&b, "Run %s, seed %d, min changes %d, max extra rounds %d\n",
		info.RunID, info.Seed, info.MinChanges, info.MaxExtraRounds)
	fmt.Fprintf(&b, "Operators: swap operands %s, rename variables %s, swap statements %s\n",
		onOff(info.Operators.SwapOperands),
		onOff(info.Operators.RenameVariables),
		onOff(info.Operators.SwapStatements),
	)

	return b.String()
}

func renderFileLine(file m.FileProgress) string {
	return fmt.Sprintf("[%d/%d] %s: %d record(s), %d generated, %d parse failed",
		file.Index+1, file.Total, filepath.Base(string(file.Input)),
		file.Records, file.Generated, file.ParseFailed)
}

// renderStatisticsTable renders the totals of a run followed by one row per
// histogram.
func renderStatisticsTable(summary m.StatsSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Statistic", "Min", "Max", "Counts"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	for _, h := range summary.Histograms {
		title := h.Title
		if title == "" {
			title = h.Name
		}

		table.Append([]string{title, strconv.Itoa(h.Min), strconv.Itoa(h.Max), h.Buckets})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Records %d", summary.Records),
		fmt.Sprintf("Failed %d", summary.ParseFailed),
		fmt.Sprintf("Generated %d", summary.GeneratedMethods),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// RenderPreview writes every generated variant of original as a unified diff.
func RenderPreview(w io.Writer, original string, result m.AugmentResult) error {
	first := result.FirstAttempt

	_, err := fmt.Fprintf(w, "First round: %d swap operands, %d rename variables, %d swap statements change(s)\n",
		first.SwapOperands, first.RenameVariables, first.SwapStatements)
	if err != nil {
		return err
	}

	if len(result.GeneratedMethods) == 0 {
		_, err := fmt.Fprintln(w, "No method generated.")
		return err
	}

	for i, generated := range result.GeneratedMethods {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(ensureNewline(original)),
			B:        difflib.SplitLines(ensureNewline(generated)),
			FromFile: "original",
			ToFile:   fmt.Sprintf("round %d", i+1),
			Context:  3,
		})
		if err != nil {
			return err
		}

		if diff == "" {
			diff = "(identical)\n"
		}

		if _, err := fmt.Fprintf(w, "\n%s", diff); err != nil {
			return err
		}
	}

	return nil
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}

// RenderExplanation writes the statement analysis of a method as a table.
func RenderExplanation(w io.Writer, explanation m.Explanation) error {
	name := explanation.Method
	if name == "" {
		name = "(anonymous)"
	}

	if explanation.Labeled {
		_, err := fmt.Fprintf(w, "%s: labeled statements found, statements are never swapped\n", name)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s: %d statement(s)\n", name, len(explanation.Rows)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Block", "Fraction", "Statement", "Kind", "Reads", "Writes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, row := range explanation.Rows {
		fraction := strconv.Itoa(row.Fraction)
		if row.Pinned {
			fraction = "pinned"
		}

		table.Append([]string{
			strconv.Itoa(row.Block),
			fraction,
			row.Text,
			row.Kind,
			strings.Join(row.Reads, " "),
			strings.Join(row.Writes, " "),
		})
	}

	table.Render()

	return nil
}

// RenderRecordFiles lists record files with the keys of their first record.
func RenderRecordFiles(w io.Writer, files []m.RecordFile) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Keys"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, file := range files {
		keys := strings.Join(file.Keys, ", ")
		if file.Problem != "" {
			keys = "(" + file.Problem + ")"
		}

		table.Append([]string{string(file.Path), keys})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(files)), ""})
	table.Render()

	return nil
}
