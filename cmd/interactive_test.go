package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.jsonl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, validateDir(dir))
	assert.NoError(t, validateDir(" "+dir+" "))
	assert.EqualError(t, validateDir(file), "this is not a directory")
	assert.EqualError(t, validateDir(filepath.Join(dir, "missing")), "this directory doesn't exist")
}

func TestIntAtLeast(t *testing.T) {
	atLeastOne := intAtLeast(1)

	assert.NoError(t, atLeastOne("1"))
	assert.NoError(t, atLeastOne(" 12 "))
	assert.EqualError(t, atLeastOne("0"), "enter a number of at least 1")
	assert.EqualError(t, atLeastOne("-3"), "enter a number of at least 1")
	assert.EqualError(t, atLeastOne("two"), "enter a whole number")

	assert.NoError(t, intAtLeast(0)("0"))
}
