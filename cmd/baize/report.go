package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportDivision string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the latest saved projection report",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := leagueStore.LatestSimReport(reportDivision)
		if err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		}
		if report == nil {
			fmt.Println("No report saved yet. Run simulate or watch first.")
			return nil
		}

		fmt.Printf("Report %s for %s, saved %s\n\n",
			report.ID, report.Division, report.CreatedAt.Format("02-01-2006 15:04"))
		return printProjections(report.Projections)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportDivision, "division", "", "division code (empty means the newest across divisions)")
}
