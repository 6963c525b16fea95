package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

// whoami resolves an email the way the student-facing view does: role first,
// then the bound roster entry and its visible attendance.
var whoamiCmd = &cobra.Command{
	Use:   "whoami <email>",
	Short: "Show the role and bound student for an email",
	Args:  cobra.ExactArgs(1),
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: the closure references whoamiCmd.
	whoamiCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		email := args[0]
		role := rt.app.RoleFor(ctx, email)
		whoamiCmd.Printf("role: %s\n", role)
		if role != models.RoleStudent {
			return nil
		}
		st, err := rt.app.StudentFor(ctx, email)
		if err != nil {
			return err
		}
		if st == nil {
			whoamiCmd.Println("no usable binding; the binding screen would be shown")
			return nil
		}
		whoamiCmd.Printf("student: %s %s (admission year %s)\n", st.ID, st.Name, st.AdmissionYear)
		for _, a := range rt.app.Cache().ActivitiesFor(st.ID) {
			whoamiCmd.Printf("  %s  %s  %s\n", a.Date, a.Name, a.Location)
		}
		return nil
	})
	rootCmd.AddCommand(whoamiCmd)
}
