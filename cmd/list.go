package cmd

import (
	"github.com/spf13/cobra"

	"codeaug.dev/pkg/codeaug/internal/controller"
	m "codeaug.dev/pkg/codeaug/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <input-dir>",
		Short: "List record files and the keys of their first record",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths, err := fsAdapter.ListRecordFiles(ctx, m.Path(args[0]))
			if err != nil {
				return err
			}

			files := make([]m.RecordFile, 0, len(paths))

			for _, path := range paths {
				file := m.RecordFile{Path: path}

				keys, err := recordStore.FirstKeys(ctx, path)
				if err != nil {
					file.Problem = err.Error()
				}

				file.Keys = keys
				files = append(files, file)
			}

			return controller.RenderRecordFiles(cmd.OutOrStdout(), files)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
