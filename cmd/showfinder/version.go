package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "showfinder: %v\n", version)
		if commit != "" {
			fmt.Fprintf(out, "Commit: %v\n", commit)
		}
		if date != "" {
			fmt.Fprintf(out, "Build Date: %v\n", date)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
