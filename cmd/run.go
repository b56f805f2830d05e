package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeaug.dev/pkg/codeaug/internal/domain"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

// outputDirSuffix names the default output directory next to the input.
const outputDirSuffix = "-augmented"

var runInteractiveFlag bool
var runQuietFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input-dir]",
		Short: "Augment the record files of a directory",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs := runArgsFromConfig(args)
			runArgs.Quiet = runQuietFlag

			if runInteractiveFlag {
				if err := promptRunArgs(cmd, &runArgs); err != nil {
					return err
				}
			}

			if runArgs.Input == "" {
				return errors.New("an input directory is required")
			}

			if runArgs.Output == "" {
				runArgs.Output = defaultOutputDir(runArgs.Input)
			}

			wf, err := workflowFor(viper.GetString(languageConfigKey))
			if err != nil {
				return err
			}

			_, err = wf.Run(cmd.Context(), runArgs)

			return err
		},
	}

	configureRunFlags(cmd)
	configureAugmentFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(outputFlagName, "o", viper.GetString(outputConfigKey), "output directory for augmented record files (default <input-dir>"+outputDirSuffix+")")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputConfigKey)

	cmd.Flags().String(statsFlagName, viper.GetString(statsConfigKey), "statistics directory (default <output>/stats)")
	bindFlagToConfig(cmd.Flags().Lookup(statsFlagName), statsConfigKey)

	cmd.Flags().String(codeKeyFlagName, viper.GetString(codeKeyConfigKey), "record key holding the method code")
	bindFlagToConfig(cmd.Flags().Lookup(codeKeyFlagName), codeKeyConfigKey)

	cmd.Flags().String(tokensKeyFlagName, viper.GetString(tokensKeyConfigKey), "record key receiving the method tokens (empty to skip)")
	bindFlagToConfig(cmd.Flags().Lookup(tokensKeyFlagName), tokensKeyConfigKey)

	cmd.Flags().IntP(runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of records augmented in parallel (0 uses every CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().BoolVarP(&runInteractiveFlag, interactiveFlagName, "i", false, "prompt for the run settings")
	cmd.Flags().BoolVarP(&runQuietFlag, quietFlagName, "q", false, "only print warnings and the final statistics")
}

// configureAugmentFlags registers the flags shared by run and preview.
func configureAugmentFlags(cmd *cobra.Command) {
	cmd.Flags().Int(minChangesFlagName, viper.GetInt(minChangesConfigKey), "minimum changes for one augmentation round")
	bindFlagToConfig(cmd.Flags().Lookup(minChangesFlagName), minChangesConfigKey)

	cmd.Flags().Int(maxExtraRoundsFlagName, viper.GetInt(maxExtraRoundsConfigKey), "maximum extra augmentation rounds (other than the first round)")
	bindFlagToConfig(cmd.Flags().Lookup(maxExtraRoundsFlagName), maxExtraRoundsConfigKey)

	cmd.Flags().Bool(swapOperandsFlagName, viper.GetBool(swapOperandsConfigKey), "swap operands of commutative and mirrored operators")
	bindFlagToConfig(cmd.Flags().Lookup(swapOperandsFlagName), swapOperandsConfigKey)

	cmd.Flags().Bool(renameVariablesFlagName, viper.GetBool(renameVariablesConfigKey), "rename local variables")
	bindFlagToConfig(cmd.Flags().Lookup(renameVariablesFlagName), renameVariablesConfigKey)

	cmd.Flags().Bool(swapStatementsFlagName, viper.GetBool(swapStatementsConfigKey), "reorder independent statements")
	bindFlagToConfig(cmd.Flags().Lookup(swapStatementsFlagName), swapStatementsConfigKey)

	cmd.Flags().Uint64(runSeedFlagName, viper.GetUint64(runSeedConfigKey), "seed of the random choices")
	bindFlagToConfig(cmd.Flags().Lookup(runSeedFlagName), runSeedConfigKey)
}

func operatorsFromConfig() m.Operators {
	return m.Operators{
		SwapOperands:    viper.GetBool(swapOperandsConfigKey),
		RenameVariables: viper.GetBool(renameVariablesConfigKey),
		SwapStatements:  viper.GetBool(swapStatementsConfigKey),
	}
}

func runArgsFromConfig(args []string) domain.RunArgs {
	var input m.Path
	if len(args) > 0 {
		input = m.Path(args[0])
	}

	return domain.RunArgs{
		Input:          input,
		Output:         m.Path(viper.GetString(outputConfigKey)),
		Stats:          m.Path(viper.GetString(statsConfigKey)),
		CodeKey:        viper.GetString(codeKeyConfigKey),
		TokensKey:      viper.GetString(tokensKeyConfigKey),
		Parallel:       viper.GetInt(runParallelConfigKey),
		Seed:           viper.GetUint64(runSeedConfigKey),
		MinChanges:     viper.GetInt(minChangesConfigKey),
		MaxExtraRounds: viper.GetInt(maxExtraRoundsConfigKey),
		Operators:      operatorsFromConfig(),
	}
}

func defaultOutputDir(input m.Path) m.Path {
	return m.Path(filepath.Clean(string(input)) + outputDirSuffix)
}
