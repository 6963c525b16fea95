package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
)

var (
	importYear     string
	importActivity string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import students or participants from a spreadsheet",
}

var importStudentsCmd = &cobra.Command{
	Use:   "students <file.xlsx>",
	Short: "Import a roster file into an admission year",
	Args:  cobra.ExactArgs(1),
}

var importParticipantsCmd = &cobra.Command{
	Use:   "participants <file.xlsx>",
	Short: "Import a sign-in sheet into an activity",
	Args:  cobra.ExactArgs(1),
}

func printImport(cmd *cobra.Command, r app.ImportReport) {
	cmd.Printf("accepted: %d\n", r.Accepted)
	for _, e := range r.RowErrors {
		cmd.Printf("row %d: %s\n", e.Row, e.Message)
	}
}

func init() {
	// RunE closures reference their own command variables, so they are
	// assigned here to avoid an initialization cycle.
	importStudentsCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		r, err := rt.app.ImportStudents(ctx, data, importYear)
		if err != nil {
			return err
		}
		printImport(importStudentsCmd, r)
		return nil
	})
	importParticipantsCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		r, err := rt.app.ImportParticipants(ctx, data, importActivity)
		if err != nil {
			return err
		}
		printImport(importParticipantsCmd, r)
		return nil
	})
	importStudentsCmd.Flags().StringVar(&importYear, "year", "", "admission year (required)")
	_ = importStudentsCmd.MarkFlagRequired("year")
	importParticipantsCmd.Flags().StringVar(&importActivity, "activity", "", "activity id (required)")
	_ = importParticipantsCmd.MarkFlagRequired("activity")
	importCmd.AddCommand(importStudentsCmd, importParticipantsCmd)
	rootCmd.AddCommand(importCmd)
}
