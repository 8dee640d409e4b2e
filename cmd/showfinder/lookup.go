package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
)

var outputFormat string

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the catalog for shows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(config.GetConfig())
		defer c.Close()

		shows := c.SearchShows(cmd.Context(), args[0])
		return printRecords(cmd.OutOrStdout(), shows, func(w io.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tIMAGE")
			for _, s := range shows {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Name, s.ImageURL)
			}
		})
	},
}

var episodesCmd = &cobra.Command{
	Use:   "episodes <show-id>",
	Short: "List the episodes of a show",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("show id must be an integer, got %q", args[0])
		}

		c := client.NewClient(config.GetConfig())
		defer c.Close()

		episodes := c.ListEpisodes(cmd.Context(), showID)
		return printRecords(cmd.OutOrStdout(), episodes, func(w io.Writer) {
			fmt.Fprintln(w, "SEASON\tNUMBER\tNAME")
			for _, e := range episodes {
				fmt.Fprintf(w, "%d\t%d\t%s\n", e.Season, e.Number, e.Name)
			}
		})
	},
}

// printRecords writes records as indented JSON or, by default, through table.
func printRecords(out io.Writer, records any, table func(w io.Writer)) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "table", "":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", outputFormat)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{searchCmd, episodesCmd} {
		cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table or json")
		rootCmd.AddCommand(cmd)
	}
}
