package cmd

import (
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	m "codeaug.dev/pkg/codeaug/internal/model"
)

const unknownVersion = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version, supported languages and config file",
		Long: `Print the build version of codeaug and the Go version it was built with,
followed by the languages whose methods can be augmented and the configuration
file read from the working directory.`,
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := buildVersions()

			cmd.Printf("codeaug version\t%s\n", version)
			cmd.Printf("go version\t%s\n", goVersion)
			cmd.Printf("languages\t%s\n", languageNames())
			cmd.Printf("config file\t%s\n", filepath.Join(configFolderPath, configFileName))
		},
	}
}

func buildVersions() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion, runtime.Version()
	}

	version := info.Main.Version
	if version == "" {
		version = unknownVersion
	}

	return version, info.GoVersion
}

func languageNames() string {
	langs := m.Languages()

	names := make([]string, 0, len(langs))
	for _, lang := range langs {
		names = append(names, string(lang))
	}

	return strings.Join(names, ", ")
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
