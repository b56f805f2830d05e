package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeaug.dev/pkg/codeaug/internal/controller"
	"codeaug.dev/pkg/codeaug/internal/domain"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

// stdinPath reads the method from standard input.
const stdinPath = "-"

// previewCmd represents the preview command.
var previewCmd = newPreviewCmd()

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the variants generated for one method",
		Long: `Augment the method stored in a file ("-" reads standard input) and print
every generated variant as a unified diff against the original.`,
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

			preview, err := wf.Preview(cmd.Context(), domain.PreviewArgs{
				Code:           code,
				MinChanges:     viper.GetInt(minChangesConfigKey),
				MaxExtraRounds: viper.GetInt(maxExtraRoundsConfigKey),
				Operators:      operatorsFromConfig(),
				Seed:           viper.GetUint64(runSeedConfigKey),
			})
			if err != nil {
				return err
			}

			return controller.RenderPreview(cmd.OutOrStdout(), preview.Original, preview.Result)
		},
	}

	configureAugmentFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func readMethod(cmd *cobra.Command, path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}

	data, err := fsAdapter.ReadFile(m.Path(path))
	if err != nil {
		return "", err
	}

	return string(data), nil
}
