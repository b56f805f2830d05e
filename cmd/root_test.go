package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainmocks "codeaug.dev/pkg/codeaug/internal/domain/mocks"
)

// useMockWorkflow replaces the workflow for the duration of the test.
func useMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

// newTestRootCmd returns a root command holding sub, with output captured
// and the log file kept in a temporary directory.
func newTestRootCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "codeaug.log"))
	t.Cleanup(func() { viper.Set(logFilenameKey, defaultLogFilename) })

	output := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, output
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "codeaug", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, rootLongDescription, cmd.Long)

	assert.NotNil(t, cmd.PersistentFlags().Lookup(verboseFlagName))
	assert.NotNil(t, cmd.PersistentFlags().Lookup(languageFlagName))
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd, output := newTestRootCmd(t, newVersionCmd())

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "Methods are Go function declarations")
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	assert.NotNil(t, ui)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, recordStore)
	assert.Nil(t, workflow)
}

func TestWorkflowFor(t *testing.T) {
	for _, lang := range []string{"go", "java", "Java"} {
		wf, err := workflowFor(lang)
		require.NoError(t, err, lang)
		assert.NotNil(t, wf, lang)
	}

	_, err := workflowFor("cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")

	mockWorkflow := useMockWorkflow(t)

	wf, err := workflowFor("cobol")
	require.NoError(t, err)
	assert.Same(t, mockWorkflow, wf)
}

func TestExecute(t *testing.T) {
	// Save original rootCmd
	originalRootCmd := rootCmd

	// Create a mock command that succeeds
	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute should not panic or exit
	Execute()

	// Restore
	rootCmd = originalRootCmd
}

func TestExecute_WithError(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() {
		rootCmd = originalRootCmd
	}()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("command failed")
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute would call os.Exit(1), so only the command itself is run.
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // This should call os.Exit(1)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
