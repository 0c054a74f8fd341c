package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/neilberkman/farmedge/internal/core/session"
	"github.com/neilberkman/farmedge/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive landing page",
	Long:  "Launch the FarmEdge AI landing page with live session status and the crop analysis demo",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	provider, watch, err := newProvider(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := watch(gctx); err != nil {
			return fmt.Errorf("identity provider: %w", err)
		}
		return nil
	})

	// Fetch only once the provider is watching, so a sign-in between the
	// fetch and the watch is not lost.
	if r, ok := provider.(interface{ Ready() <-chan struct{} }); ok {
		select {
		case <-r.Ready():
		case <-gctx.Done():
			return g.Wait()
		}
	}

	// Teardown runs on every exit path, after the program and provider stop.
	sessions := session.New(provider, logger)
	defer sessions.Stop()
	if err := sessions.Start(gctx); err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("failed to start session sync: %w", err)
	}

	workflow := newWorkflow(cfg)
	defer workflow.Close()

	model := tui.New(sessions, workflow, tui.Options{
		ReportTemplate: cfg.Analysis.ReportTemplate,
		Delay:          cfg.Analysis.Delay,
		TokenFile:      cfg.Identity.TokenFile,
		Logger:         logger,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(gctx),
	)

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	})

	return g.Wait()
}
