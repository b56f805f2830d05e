// Package cmd provides the root command and CLI setup for codeaug.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeaug.dev/pkg/codeaug/internal/adapter"
	"codeaug.dev/pkg/codeaug/internal/controller"
	"codeaug.dev/pkg/codeaug/internal/domain"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var recordStore adapter.RecordStore
var ui controller.UI

// workflow overrides the language-specific workflow built by workflowFor.
var workflow domain.Workflow

// verboseFlag forces debug logging.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	recordStore = adapter.NewJSONLRecordStore()
}

const languagesHelp = `Methods are Go function declarations or Java method declarations,
selected with --language (go, java).`

const rootLongDescription = `Codeaug generates semantically equivalent variants of source methods for
training-data augmentation. Variants swap operands of commutative and mirrored
operators, rename local variables and reorder independent statements.

` + languagesHelp

const runLongDescription = `Augment every *.jsonl record file of the input directory.

Each line of a record file is a JSON object holding one method under the code
key. For every generated variant a copy of the line is written to the file of
the same name in the output directory, and statistics go to the stats
directory (default <output>/stats).

` + languagesHelp

const listLongDescription = `List the *.jsonl record files of a directory with the keys of their first
record, to choose the --code-key and --tokens-key of a run.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codeaug",
		Short: "Source code augmentation tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a fresh root command with its persistent flags.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringP(languageFlagName, "l", viper.GetString(languageConfigKey), "language of the methods (go, java)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(languageFlagName), languageConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// workflowFor returns the workflow for the configured language.
func workflowFor(language string) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	lang, err := m.ParseLanguage(language)
	if err != nil {
		return nil, err
	}

	parser, err := adapter.NewMethodParser(lang)
	if err != nil {
		return nil, err
	}

	return domain.NewWorkflow(fsAdapter, recordStore, parser, ui, domain.NewAugmenter(parser)), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
