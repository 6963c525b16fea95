package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
)

var activityIn app.ActivityInput

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activities",
}

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an activity",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, rt *runtime, _ []string) error {
		act, err := rt.app.CreateActivity(ctx, activityIn)
		if err != nil {
			return err
		}
		rt.log.Sugar().Infof("created %s", act.ID)
		return nil
	}),
}

var activitySetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Update an activity's fields",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, rt *runtime, args []string) error {
		return rt.app.UpdateActivity(ctx, args[0], activityIn)
	}),
}

var activityRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete one or more activities",
	Args:  cobra.MinimumNArgs(1),
}

var activityToggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Flip visibility for the given activities",
	Args:  cobra.MinimumNArgs(1),
}

func init() {
	// RunE closures reference their own command variables, so they are
	// assigned here to avoid an initialization cycle.
	activityRmCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		if len(args) == 1 {
			return rt.app.DeleteActivity(ctx, args[0])
		}
		r, err := rt.app.BulkDeleteActivities(ctx, args)
		if err != nil {
			return err
		}
		report(activityRmCmd, r)
		return nil
	})
	activityToggleCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		r, err := rt.app.BulkToggleVisibility(ctx, args)
		if err != nil {
			return err
		}
		report(activityToggleCmd, r)
		return nil
	})
	for _, c := range []*cobra.Command{activityAddCmd, activitySetCmd} {
		c.Flags().StringVar(&activityIn.Name, "name", "", "activity name")
		c.Flags().StringVar(&activityIn.Date, "date", "", "date (YYYY-MM-DD)")
		c.Flags().StringVar(&activityIn.Location, "location", "", "location")
		c.Flags().StringVar(&activityIn.Teacher, "teacher", "", "responsible teacher")
		c.Flags().StringVar(&activityIn.Notes, "notes", "", "free-form notes")
		c.Flags().BoolVar(&activityIn.Visible, "visible", true, "visible to students")
	}
	activityCmd.AddCommand(activityAddCmd, activitySetCmd, activityRmCmd, activityToggleCmd)
	rootCmd.AddCommand(activityCmd)
}
