package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	studentName string
	studentYear string
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage the roster",
}

var studentAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Create a student",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, rt *runtime, args []string) error {
		return rt.app.CreateStudent(ctx, args[0], studentName, studentYear)
	}),
}

var studentSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Update a student's name or admission year",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, rt *runtime, args []string) error {
		return rt.app.UpdateStudent(ctx, args[0], studentName, studentYear)
	}),
}

var studentRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete students and scrub their attendance",
	Args:  cobra.MinimumNArgs(1),
}

var studentUnbindCmd = &cobra.Command{
	Use:   "unbind <id>...",
	Short: "Release the Google account bound to each student",
	Args:  cobra.MinimumNArgs(1),
}

func init() {
	// RunE closures reference their own command variables, so they are
	// assigned here to avoid an initialization cycle.
	studentRmCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		if len(args) == 1 {
			return rt.app.DeleteStudent(ctx, args[0])
		}
		r, err := rt.app.BulkDeleteStudents(ctx, args)
		if err != nil {
			return err
		}
		report(studentRmCmd, r)
		return nil
	})
	studentUnbindCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		if len(args) == 1 {
			return rt.app.Unbind(ctx, args[0])
		}
		r, err := rt.app.BulkUnbind(ctx, args)
		if err != nil {
			return err
		}
		report(studentUnbindCmd, r)
		return nil
	})
	for _, c := range []*cobra.Command{studentAddCmd, studentSetCmd} {
		c.Flags().StringVar(&studentName, "name", "", "student name")
		c.Flags().StringVar(&studentYear, "year", "", "admission year")
	}
	studentCmd.AddCommand(studentAddCmd, studentSetCmd, studentRmCmd, studentUnbindCmd)
	rootCmd.AddCommand(studentCmd)
}
