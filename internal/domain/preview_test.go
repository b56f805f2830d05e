package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeaug.dev/pkg/codeaug/internal/adapter"
	controllermocks "codeaug.dev/pkg/codeaug/internal/controller/mocks"
	"codeaug.dev/pkg/codeaug/internal/domain"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

func newPreviewWorkflow(t *testing.T) domain.Workflow {
	t.Helper()

	parser := adapter.NewGoMethodParser()

	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewJSONLRecordStore(),
		parser,
		controllermocks.NewMockUI(t),
		domain.NewAugmenter(parser),
	)
}

func TestWorkflow_Preview(t *testing.T) {
	workflow := newPreviewWorkflow(t)

	args := domain.PreviewArgs{
		Code:           busyMethod,
		MinChanges:     1,
		MaxExtraRounds: 3,
		Operators:      m.AllOperators(),
		Seed:           5,
	}

	first, err := workflow.Preview(context.Background(), args)
	require.NoError(t, err)

	assert.Equal(t, busyMethod, first.Original)
	assert.False(t, first.Result.ParseFailed)

	second, err := workflow.Preview(context.Background(), args)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	parser := adapter.NewGoMethodParser()
	for _, generated := range first.Result.GeneratedMethods {
		_, err := parser.Parse(context.Background(), generated)
		assert.NoError(t, err, generated)
	}
}

func TestWorkflow_PreviewErrors(t *testing.T) {
	workflow := newPreviewWorkflow(t)

	_, err := workflow.Preview(context.Background(), domain.PreviewArgs{Code: "func broken( {", MinChanges: 1})
	assert.ErrorIs(t, err, adapter.ErrParse)

	_, err = workflow.Preview(context.Background(), domain.PreviewArgs{Code: busyMethod})
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)

	_, err = workflow.Preview(context.Background(), domain.PreviewArgs{MinChanges: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)
}

func TestWorkflow_Explain(t *testing.T) {
	workflow := newPreviewWorkflow(t)

	t.Run("fractions and pinned statements", func(t *testing.T) {
		code := "func f() {\n\ta := 1\n\tb := 2\n\tg(a)\n\tc := b\n\t_ = c\n}"

		explanation, err := workflow.Explain(context.Background(), domain.ExplainArgs{Code: code})
		require.NoError(t, err)

		assert.Equal(t, "f", explanation.Method)
		assert.False(t, explanation.Labeled)
		require.Len(t, explanation.Rows, 5)

		texts := make([]string, 0, len(explanation.Rows))
		for _, row := range explanation.Rows {
			texts = append(texts, row.Text)
			assert.Equal(t, 0, row.Block)
		}

		assert.Equal(t, []string{"a := 1", "b := 2", "g(a)", "c := b", "_ = c"}, texts)

		assert.Equal(t, 0, explanation.Rows[0].Fraction)
		assert.Equal(t, 0, explanation.Rows[1].Fraction)
		assert.True(t, explanation.Rows[2].Pinned)
		assert.Equal(t, -1, explanation.Rows[2].Fraction)
		assert.Equal(t, 1, explanation.Rows[3].Fraction)

		assert.Contains(t, explanation.Rows[0].Writes, "a")
		assert.Contains(t, explanation.Rows[3].Reads, "b")
		assert.Contains(t, explanation.Rows[3].Writes, "c")
	})

	t.Run("labeled method", func(t *testing.T) {
		code := "func f() {\nloop:\n\tfor {\n\t\tbreak loop\n\t}\n}"

		explanation, err := workflow.Explain(context.Background(), domain.ExplainArgs{Code: code})
		require.NoError(t, err)

		assert.True(t, explanation.Labeled)
		assert.Empty(t, explanation.Rows)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := workflow.Explain(context.Background(), domain.ExplainArgs{Code: "nope"})
		assert.ErrorIs(t, err, adapter.ErrParse)
	})
}
