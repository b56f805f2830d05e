package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeaug.dev/pkg/codeaug/internal/controller"
	"codeaug.dev/pkg/codeaug/internal/domain"
)

// explainCmd represents the explain command.
var explainCmd = newExplainCmd()

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <file>",
		Short: "Show how the statements of a method may be reordered",
		Long: `Print the statements of the method stored in a file ("-" reads standard
input) with the fraction they belong to and the names they read and write.
Statements of the same block and fraction may be swapped; pinned statements
never move.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readMethod(cmd, args[0])
			if err != nil {
				return err
			}

			wf, err := workflowFor(viper.GetString(languageConfigKey))
			if err != nil {
				return err
			}

			explanation, err := wf.Explain(cmd.Context(), domain.ExplainArgs{Code: code})
			if err != nil {
				return err
			}

			return controller.RenderExplanation(cmd.OutOrStdout(), explanation)
		},
	}
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
