package controller

import (
	"bytes"
	"strings"
	"testing"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

func TestRenderPreview(t *testing.T) {
	original := "func f(a, b int) bool {\n\treturn a < b\n}"

	t.Run("diff per round", func(t *testing.T) {
		var buf bytes.Buffer

		err := RenderPreview(&buf, original, m.AugmentResult{
			GeneratedMethods: []string{
				"func f(a, b int) bool {\n\treturn b > a\n}",
				original,
			},
			FirstAttempt: m.Changes{SwapOperands: 1},
		})
		if err != nil {
			t.Fatalf("RenderPreview() error = %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"First round: 1 swap operands, 0 rename variables, 0 swap statements change(s)",
			"--- original",
			"+++ round 1",
			"-\treturn a < b",
			"+\treturn b > a",
			"(identical)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("nothing generated", func(t *testing.T) {
		var buf bytes.Buffer

		if err := RenderPreview(&buf, original, m.AugmentResult{}); err != nil {
			t.Fatalf("RenderPreview() error = %v", err)
		}

		if !strings.Contains(buf.String(), "No method generated.") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestRenderExplanation(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		var buf bytes.Buffer

		err := RenderExplanation(&buf, m.Explanation{
			Method: "f",
			Rows: []m.ExplainRow{
				{Block: 0, Fraction: 0, Kind: "ExprStmt", Text: "a := 1", Writes: []string{"a"}},
				{Block: 0, Fraction: -1, Pinned: true, Kind: "ExprStmt", Text: "g(a)", Reads: []string{"a", "g"}},
			},
		})
		if err != nil {
			t.Fatalf("RenderExplanation() error = %v", err)
		}

		output := buf.String()
		for _, want := range []string{"f: 2 statement(s)", "a := 1", "pinned", "g(a)", "a g"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("labeled", func(t *testing.T) {
		var buf bytes.Buffer

		if err := RenderExplanation(&buf, m.Explanation{Labeled: true}); err != nil {
			t.Fatalf("RenderExplanation() error = %v", err)
		}

		if !strings.Contains(buf.String(), "(anonymous): labeled statements found") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestRenderStatisticsTable(t *testing.T) {
	table := renderStatisticsTable(testSummary())

	for _, want := range []string{"RECORDS 5", "FAILED 1", "GENERATED 7", "2: 2"} {
		if !strings.Contains(strings.ToUpper(table), strings.ToUpper(want)) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}
