package mutagens

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, 1)) }

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"beanCount", []string{"bean", "Count"}},
		{"someLongNAMEHere", []string{"some", "Long", "NAME", "Here"}},
		{"ant_value", []string{"ant", "value"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"DUNE", []string{"DUNE"}},
		{"x2y", []string{"x", "2y"}},
		{"__", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitWords(tt.name))
		})
	}
}

func TestJoinWords(t *testing.T) {
	words := []string{"bean", "count"}

	assert.Equal(t, "beanCount", joinCamel(words, true, false))
	assert.Equal(t, "BeanCount", joinCamel(words, true, true))
	assert.Equal(t, "bean_count", joinSnake(words, true, false))
	assert.Equal(t, "BEAN_COUNT", joinSnake(words, true, true))

	letters := []string{"a", "b", "count"}

	assert.Equal(t, "abCount", joinCamel(letters, true, false))
	assert.Equal(t, "aBCount", joinCamel(letters, false, false))
	assert.Equal(t, "ab_count", joinSnake(letters, true, false))
	assert.Equal(t, "a_b_count", joinSnake(letters, false, false))
}

func TestRecount(t *testing.T) {
	tests := []struct {
		words   []string
		subject string
	}{
		{[]string{"item", "count"}, "item"},
		{[]string{"item", "counter"}, "item"},
		{[]string{"num", "items"}, "items"},
		{[]string{"n", "items"}, "items"},
	}

	rng := newRand(5)

	for _, tt := range tests {
		for range 50 {
			got := recount(append([]string(nil), tt.words...), rng)

			assert.Contains(t, got, tt.subject)
			assert.NotEqual(t, tt.words, got)
		}
	}

	assert.Equal(t, []string{"plain", "name"}, recount([]string{"plain", "name"}, rng))
}

func TestRecountNumberOf(t *testing.T) {
	rng := newRand(8)

	for range 50 {
		got := recount([]string{"number", "of", "items"}, rng)
		assert.Contains(t, got, "items")
		assert.NotEqual(t, []string{"number", "of", "items"}, got)
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func TestAlternativeNameIsIdentifier(t *testing.T) {
	rng := newRand(11)
	names := []string{"beanCount", "someLongNAMEHere", "ant_value", "DUNE", "f", "numberOfItems", "item2Count", "i"}

	changed := 0

	for _, name := range names {
		for range 500 {
			alt := AlternativeName(name, rng)

			assert.Regexp(t, identifier, alt)

			if alt != name {
				changed++
			}
		}
	}

	assert.Greater(t, changed, len(names)*250)
}

func TestAlternativeNameKeepsUnsplittable(t *testing.T) {
	rng := newRand(2)

	for range 100 {
		alt := AlternativeName("__", rng)
		assert.True(t, alt == "__" || len(alt) == 1, alt)
	}
}
