//go:build !( js || wasm)

package main

import (
	"github.com/cottand/ilecheck/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "ilecheck [subcommand]",
	Short:        "ilecheck 🌴\n kind inference for type declarations",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.KindsCmd)
	rootCmd.AddCommand(cmd.ReplCmd)
}
