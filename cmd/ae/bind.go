package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/watsonshih/nsysu-isi-ae/internal/auth"
	"github.com/watsonshih/nsysu-isi-ae/internal/ctxutil"
)

var bindToken string

// bind is the self-service path exercised on behalf of a student: the ID
// token comes from the Google sign-in flow outside this program.
var bindCmd = &cobra.Command{
	Use:   "bind <student-id>",
	Short: "Bind a Google identity to a student number",
	Args:  cobra.ExactArgs(1),
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: the closure references bindCmd.
	bindCmd.RunE = withApp(func(ctx context.Context, rt *runtime, args []string) error {
		v := auth.NewVerifier(rt.cfg.OAuthClientID)
		p, err := v.Verify(ctx, bindToken)
		if err != nil {
			return err
		}
		ctx = ctxutil.WithEmail(ctx, p.Email)
		if err := rt.app.Bind(ctx, *p, args[0]); err != nil {
			return err
		}
		bindCmd.Printf("bound %s to %s\n", args[0], p.Email)
		return nil
	})
	bindCmd.Flags().StringVar(&bindToken, "token", "", "Google ID token (required)")
	_ = bindCmd.MarkFlagRequired("token")
	rootCmd.AddCommand(bindCmd)
}
