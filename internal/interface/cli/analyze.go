package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neilberkman/farmedge/internal/core/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the crop analysis demo without the TUI",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workflow := newWorkflow(cfg)
	defer workflow.Close()

	// Interrupt cancels the pending run.
	go func() {
		<-ctx.Done()
		workflow.Close()
	}()

	job, ok := workflow.Trigger()
	if !ok {
		return analysis.ErrClosed
	}

	spinner := NewSpinner("Analyzing...")
	spinner.Start()
	res := workflow.Run(job)
	spinner.Stop()

	if !workflow.Complete(res) {
		return fmt.Errorf("analysis interrupted")
	}
	if err := workflow.Err(); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	text, err := analysis.RenderReport(cfg.Analysis.ReportTemplate, *workflow.Report(), res.Job.StartedAt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
