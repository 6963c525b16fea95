package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	exportYear string
	exportDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export summaries",
}

var exportStudentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Write the cohort summary workbook",
	Args:  cobra.NoArgs,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: the closure references exportStudentsCmd.
	exportStudentsCmd.RunE = withApp(func(ctx context.Context, rt *runtime, _ []string) error {
		f, name, err := rt.app.ExportStudents(exportYear)
		if err != nil {
			return err
		}
		path := filepath.Join(exportDir, name)
		if err := f.SaveAs(path); err != nil {
			return err
		}
		exportStudentsCmd.Println(path)
		return nil
	})
	exportStudentsCmd.Flags().StringVar(&exportYear, "year", "", "admission year (required)")
	_ = exportStudentsCmd.MarkFlagRequired("year")
	exportStudentsCmd.Flags().StringVar(&exportDir, "out", ".", "output directory")
	exportCmd.AddCommand(exportStudentsCmd)
	rootCmd.AddCommand(exportCmd)
}
