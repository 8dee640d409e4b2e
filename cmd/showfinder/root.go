package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "showfinder",
	Short: "Search TV shows and browse their episodes",
	Long: `ShowFinder serves a small search page backed by the TVmaze catalog:
search shows by title, then list the episodes of any result.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return nil
		}
		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("load config %s: %w", cfgFile, err)
		}
		return nil
	},
}

// Execute runs the command selected on the command line. Its context is
// cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
}
