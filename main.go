// Package main is the entry point for the codeaug CLI.
package main

import "codeaug.dev/pkg/codeaug/cmd"

func main() {
	cmd.Execute()
}
