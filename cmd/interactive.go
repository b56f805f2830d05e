package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"codeaug.dev/pkg/codeaug/internal/controller"
	"codeaug.dev/pkg/codeaug/internal/domain"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

// promptRunArgs fills the run settings interactively.
var promptRunArgs = promptRunArgsForm

func promptRunArgsForm(cmd *cobra.Command, args *domain.RunArgs) error {
	ctx := cmd.Context()

	cmd.Println("ATTENTION: Keep a backup of the original files somewhere else just to make sure.")

	input, output := string(args.Input), string(args.Output)

	err := runForm(cmd, huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Input directory that contains jsonl files").
			Value(&input).
			Validate(validateDir),
		huh.NewInput().
			Title("Output directory to create augmented jsonl files in").
			Placeholder(string(defaultOutputDir(m.Path(input)))).
			Value(&output),
	)))
	if err != nil {
		return err
	}

	args.Input = m.Path(strings.TrimSpace(input))
	args.Output = m.Path(strings.TrimSpace(output))

	files, err := fsAdapter.ListRecordFiles(ctx, args.Input)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: %s has no jsonl file", domain.ErrNoInputFiles, args.Input)
	}

	cmd.Printf("Discovered %d file(s).\n", len(files))

	keys, err := recordStore.FirstKeys(ctx, files[0])
	if err != nil {
		return err
	}

	codeKey, tokensKey := args.CodeKey, args.TokensKey
	minChanges := strconv.Itoa(args.MinChanges)
	maxExtraRounds := strconv.Itoa(args.MaxExtraRounds)
	operators := args.Operators

	tokenOptions := append([]huh.Option[string]{huh.NewOption("(none)", "")}, huh.NewOptions(keys...)...)

	err = runForm(cmd, huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Method code key").
				Options(huh.NewOptions(keys...)...).
				Value(&codeKey),
			huh.NewSelect[string]().
				Title("Method code tokens key").
				Options(tokenOptions...).
				Value(&tokensKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum changes for one augmentation round").
				Value(&minChanges).
				Validate(intAtLeast(1)),
			huh.NewInput().
				Title("Maximum extra augmentation rounds (other than the first round)").
				Value(&maxExtraRounds).
				Validate(intAtLeast(0)),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Enable swap operands?").Value(&operators.SwapOperands),
			huh.NewConfirm().Title("Enable rename variables?").Value(&operators.RenameVariables),
			huh.NewConfirm().Title("Enable swap statements?").Value(&operators.SwapStatements),
		),
	))
	if err != nil {
		return err
	}

	args.CodeKey = codeKey
	args.TokensKey = tokensKey
	args.MinChanges, _ = strconv.Atoi(strings.TrimSpace(minChanges))
	args.MaxExtraRounds, _ = strconv.Atoi(strings.TrimSpace(maxExtraRounds))
	args.Operators = operators

	return nil
}

// runForm falls back to huh's line-based accessible mode when stdout is not
// a terminal.
func runForm(cmd *cobra.Command, form *huh.Form) error {
	form = form.
		WithAccessible(!controller.IsTTY(os.Stdout)).
		WithInput(cmd.InOrStdin()).
		WithOutput(cmd.OutOrStdout())

	return form.RunWithContext(cmd.Context())
}

func validateDir(value string) error {
	info, err := os.Stat(strings.TrimSpace(value))
	if err != nil {
		return errors.New("this directory doesn't exist")
	}

	if !info.IsDir() {
		return errors.New("this is not a directory")
	}

	return nil
}

func intAtLeast(minimum int) func(string) error {
	return func(value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return errors.New("enter a whole number")
		}

		if n < minimum {
			return fmt.Errorf("enter a number of at least %d", minimum)
		}

		return nil
	}
}
