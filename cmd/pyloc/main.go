// Package main provides the entry point for the pyloc CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyloc/cmd/pyloc/commands"
	"github.com/Sumatoshi-tech/pyloc/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyloc",
		Short: "pyloc - size and density metrics for Python codebases",
		Long: `pyloc scans a directory tree for Python sources and computes
line, comment, and effective-statement metrics per file.

Commands:
  scan      Scan a directory and report metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pyloc %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
