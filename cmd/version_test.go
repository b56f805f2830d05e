package cmd

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "codeaug version\t"))
	assert.NotEqual(t, "codeaug version\t", lines[0])
	assert.Equal(t, "go version\t"+runtime.Version(), lines[1])
	assert.Equal(t, "languages\tgo, java", lines[2])
	assert.Equal(t, "config file\tcodeaug.yaml", lines[3])
}

func TestLanguageNames(t *testing.T) {
	assert.Equal(t, "go, java", languageNames())
}
