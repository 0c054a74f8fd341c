package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	provider, _, err := newProvider(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	sess, err := provider.CurrentSession(ctx)
	if err != nil {
		// Same policy as the landing page: an unreadable session is no session.
		logger.Warn("session fetch failed", zap.Error(err))
		fmt.Fprintf(out, "Signed out (session unavailable: %v)\n", err)
		return nil
	}
	if sess == nil || sess.User == nil {
		fmt.Fprintln(out, "Signed out")
		return nil
	}

	fmt.Fprintf(out, "Signed in as %s\n", sess.User.Email)
	fmt.Fprintf(out, "  user:    %s\n", sess.User.ID)
	fmt.Fprintf(out, "  session: %s\n", sess.ID)
	if !sess.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "  expires: %s\n", humanize.Time(sess.ExpiresAt))
	}
	return nil
}
