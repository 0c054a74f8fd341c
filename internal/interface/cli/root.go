package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neilberkman/farmedge/internal/core/config"
	"github.com/neilberkman/farmedge/internal/core/logging"
)

var (
	configPath  string
	tokenFile   string
	verbose     bool
	versionInfo string

	cfg    *config.Config
	logger = zap.NewNop()
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "farmedge",
	Short: "FarmEdge AI farming assistant",
	Long: `farmedge - AI-powered farming assistant

Browse the FarmEdge AI landing page in your terminal, try the crop analysis
demo, and sign in or out of your FarmEdge session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if tokenFile != "" {
			loaded.Identity.TokenFile = tokenFile
		}
		cfg = loaded

		l, err := logging.New(cfg.LogFile, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Session token file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}
