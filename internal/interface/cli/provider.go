package cli

import (
	"context"
	"fmt"

	"github.com/neilberkman/farmedge/internal/core/analysis"
	"github.com/neilberkman/farmedge/internal/core/config"
	"github.com/neilberkman/farmedge/internal/core/identity"
)

// newProvider builds the configured identity provider and the loop that
// keeps its change stream alive until ctx ends.
func newProvider(c *config.Config) (identity.Provider, func(ctx context.Context) error, error) {
	switch c.Identity.Provider {
	case config.ProviderFile:
		p := identity.NewFileProvider(c.Identity.TokenFile, []byte(c.Identity.Secret), logger)
		return p, p.Run, nil
	case config.ProviderMemory:
		p := identity.NewMemoryProvider()
		return p, func(ctx context.Context) error {
			<-ctx.Done()
			p.Close()
			return nil
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown identity provider %q", c.Identity.Provider)
}

func newWorkflow(c *config.Config) *analysis.Workflow {
	analyzer := analysis.NewSimulatedAnalyzer(c.Analysis.Delay, c.Analysis.Report)
	return analysis.NewWorkflow(analyzer, c.Analysis.Crop, logger)
}
