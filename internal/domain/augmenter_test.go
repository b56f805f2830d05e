package domain_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeaug.dev/pkg/codeaug/internal/adapter"
	"codeaug.dev/pkg/codeaug/internal/domain"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

const busyMethod = `func score(a, b int, name string) int {
	total := a + b
	limit := a * 2
	ok := a < b && b >= limit
	if ok == true {
		total = total * limit
	}
	count := total + limit
	step := count * 3
	return step + total
}`

func augmentArgs(code string, seed uint64) domain.AugmentArgs {
	return domain.AugmentArgs{
		Code:           code,
		MinChanges:     1,
		MaxExtraRounds: 5,
		Operators:      m.AllOperators(),
		Rand:           rand.New(rand.NewPCG(seed, 7)),
	}
}

func TestAugmenter_ParseFailure(t *testing.T) {
	augmenter := domain.NewAugmenter(adapter.NewGoMethodParser())

	result, err := augmenter.Augment(context.Background(), augmentArgs("func broken( {", 1))

	require.NoError(t, err)
	assert.True(t, result.ParseFailed)
	assert.Empty(t, result.GeneratedMethods)
	assert.Zero(t, result.FirstAttempt.Total())
}

func TestAugmenter_NoOperators(t *testing.T) {
	augmenter := domain.NewAugmenter(adapter.NewGoMethodParser())

	args := augmentArgs(busyMethod, 1)
	args.Operators = m.Operators{}

	result, err := augmenter.Augment(context.Background(), args)

	require.NoError(t, err)
	assert.False(t, result.ParseFailed)
	assert.Empty(t, result.GeneratedMethods)
	assert.Equal(t, m.Changes{}, result.FirstAttempt)
}

func TestAugmenter_Rounds(t *testing.T) {
	parser := adapter.NewGoMethodParser()
	augmenter := domain.NewAugmenter(parser)

	for seed := range uint64(20) {
		for _, minChanges := range []int{1, 2, 4, 100} {
			args := augmentArgs(busyMethod, seed)
			args.MinChanges = minChanges

			result, err := augmenter.Augment(context.Background(), args)
			require.NoError(t, err)

			total := result.FirstAttempt.Total()

			want := 0
			if total >= minChanges {
				want = 1
			}

			want += max(0, min(args.MaxExtraRounds, total/minChanges-1))
			assert.Len(t, result.GeneratedMethods, want, "seed %d min %d total %d", seed, minChanges, total)

			for _, generated := range result.GeneratedMethods {
				_, err := parser.Parse(context.Background(), generated)
				assert.NoError(t, err, generated)
			}
		}
	}
}

func TestAugmenter_FirstRoundChanges(t *testing.T) {
	augmenter := domain.NewAugmenter(adapter.NewGoMethodParser())

	changed := false

	for seed := range uint64(10) {
		result, err := augmenter.Augment(context.Background(), augmentArgs(busyMethod, seed))
		require.NoError(t, err)

		if result.FirstAttempt.Total() > 0 {
			changed = true

			require.NotEmpty(t, result.GeneratedMethods)
			assert.NotEqual(t, busyMethod, result.GeneratedMethods[0])
		}
	}

	assert.True(t, changed, "no seed changed the method")
}

func TestAugmenter_Deterministic(t *testing.T) {
	augmenter := domain.NewAugmenter(adapter.NewJavaMethodParser())

	code := "int f(int a, int b) {\n  int s = a + b;\n  int p = a * b;\n  boolean lt = a < b;\n  return s * p;\n}"

	first, err := augmenter.Augment(context.Background(), augmentArgs(code, 42))
	require.NoError(t, err)

	second, err := augmenter.Augment(context.Background(), augmentArgs(code, 42))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAugmenter_InvalidArgs(t *testing.T) {
	augmenter := domain.NewAugmenter(adapter.NewGoMethodParser())

	args := augmentArgs(busyMethod, 1)
	args.MinChanges = 0

	_, err := augmenter.Augment(context.Background(), args)
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)

	args = augmentArgs(busyMethod, 1)
	args.Rand = nil

	_, err = augmenter.Augment(context.Background(), args)
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)

	args = augmentArgs(busyMethod, 1)
	args.MaxExtraRounds = -1

	_, err = augmenter.Augment(context.Background(), args)
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)
}

func TestAugmenter_CanceledContext(t *testing.T) {
	augmenter := domain.NewAugmenter(adapter.NewGoMethodParser())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := augmenter.Augment(ctx, augmentArgs(busyMethod, 1))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.ParseFailed)
}
