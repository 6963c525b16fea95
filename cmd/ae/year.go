package main

import (
	"context"

	"github.com/spf13/cobra"
)

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Manage admission years",
}

var yearAddCmd = &cobra.Command{
	Use:   "add <year>",
	Short: "Create an admission year",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, rt *runtime, args []string) error {
		return rt.app.CreateAdmissionYear(ctx, args[0])
	}),
}

var yearListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List admission years",
	Args:  cobra.NoArgs,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: the closure references yearListCmd.
	yearListCmd.RunE = withApp(func(ctx context.Context, rt *runtime, _ []string) error {
		for _, y := range rt.app.Cache().AdmissionYears() {
			yearListCmd.Println(y.Year)
		}
		return nil
	})
	yearCmd.AddCommand(yearAddCmd, yearListCmd)
	rootCmd.AddCommand(yearCmd)
}
