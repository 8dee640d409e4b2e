package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/ui"
)

var renderEpisodesOf int

var renderCmd = &cobra.Command{
	Use:   "render <term>",
	Short: "Run a search against an in-memory page and print the resulting HTML",
	Long: `Render submits <term> to a fresh search page, optionally clicks the
episodes action of one result with --episodes, and prints the page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(config.GetConfig())
		defer c.Close()

		page, err := dom.NewPage()
		if err != nil {
			return err
		}
		view := ui.NewPageView(page)
		controller := ui.NewController(c, view, config.GetLogger())
		controller.Attach()

		ctx := cmd.Context()
		if err := controller.Dispatch(ctx, ui.SubmitEvent(args[0])); err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if renderEpisodesOf > 0 {
			if err := controller.Dispatch(ctx, ui.ClickEvent(render.EpisodesActionTarget(renderEpisodesOf))); err != nil {
				return fmt.Errorf("episodes: %w", err)
			}
		}

		return view.Read(ctx, func(p *dom.Page) error {
			return p.Render(cmd.OutOrStdout())
		})
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderEpisodesOf, "episodes", 0, "show id whose episodes action to click after the search")
	rootCmd.AddCommand(renderCmd)
}
