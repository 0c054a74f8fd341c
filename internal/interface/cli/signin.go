package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neilberkman/farmedge/internal/core/config"
	"github.com/neilberkman/farmedge/internal/core/identity"
	"github.com/neilberkman/farmedge/internal/core/models"
)

var (
	signinEmail string
	signinID    string
	signinTTL   time.Duration
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and write a session token",
	Long: `Sign in by writing a signed session token to the token file.

Running landing pages pick up the new session immediately.`,
	RunE: runSignin,
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out by removing the session token",
	RunE:  runSignout,
}

func init() {
	signinCmd.Flags().StringVar(&signinEmail, "email", "", "Email address (required)")
	signinCmd.Flags().StringVar(&signinID, "id", "", "User id (defaults to the email)")
	signinCmd.Flags().DurationVar(&signinTTL, "ttl", time.Hour, "Session lifetime")
	_ = signinCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
}

func requireFileProvider() error {
	if cfg.Identity.Provider != config.ProviderFile {
		return fmt.Errorf("sessions are managed in-process by the %q provider", cfg.Identity.Provider)
	}
	return nil
}

func runSignin(cmd *cobra.Command, args []string) error {
	if err := requireFileProvider(); err != nil {
		return err
	}
	if signinTTL <= 0 {
		return errors.New("--ttl must be positive")
	}

	id := signinID
	if id == "" {
		id = signinEmail
	}

	raw, sess, err := identity.IssueToken([]byte(cfg.Identity.Secret), models.User{ID: id, Email: signinEmail}, signinTTL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	if err := identity.WriteTokenFile(cfg.Identity.TokenFile, raw); err != nil {
		return err
	}

	logger.Info("signed in", zap.String("user", id), zap.Time("expires_at", sess.ExpiresAt))
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (session expires %s)\n", signinEmail, humanize.Time(sess.ExpiresAt))
	return nil
}

func runSignout(cmd *cobra.Command, args []string) error {
	if err := requireFileProvider(); err != nil {
		return err
	}

	removed, err := identity.RemoveTokenFile(cfg.Identity.TokenFile)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(cmd.OutOrStdout(), "Already signed out")
		return nil
	}

	logger.Info("signed out")
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	return nil
}
