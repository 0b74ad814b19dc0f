package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	runsRoot := &cobra.Command{
		Use:   "runs",
		Short: "Inspect scrape run history",
	}

	runsRoot.AddCommand(runsListCmd(), runsTriggerCmd())

	return runsRoot
}

func runsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent scrape runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListRuns(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Runs) == 0 {
				fmt.Println("No scrape runs recorded.")
				return nil
			}

			return printRunsTable(resp.Runs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of results")

	return cmd
}

func runsTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Run one scrape cycle now",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			run, err := c.TriggerScrape(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(run)
			}

			fmt.Printf("Scrape %s: %s (%d pages, %d found, %d stored)\n",
				run.ID, run.Status, run.PagesUsed, run.ProductsFound, run.ProductsStored)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(runsCmd())
}
