package main

import (
	"context"

	"github.com/spf13/cobra"
)

var participantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Manage an activity's participant list",
}

var participantAddCmd = &cobra.Command{
	Use:   "add <activity-id> <student-id>",
	Short: "Add a student to an activity",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, rt *runtime, args []string) error {
		return rt.app.AddParticipant(ctx, args[0], args[1])
	}),
}

var participantRmCmd = &cobra.Command{
	Use:   "rm <activity-id> <student-id>",
	Short: "Remove a student from an activity",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, rt *runtime, args []string) error {
		return rt.app.RemoveParticipant(ctx, args[0], args[1])
	}),
}

func init() {
	participantCmd.AddCommand(participantAddCmd, participantRmCmd)
	rootCmd.AddCommand(participantCmd)
}
