package steps

import (
	"context"
	"log/slog"

	"github.com/privastead/privastead-setup/pkg/api"
)

type preflightStep struct {
	base
	cfg *api.PreflightConfig
}

// NewPreflightStep creates the requirement check. Tools are checked in order
// and the first missing one aborts the check.
func NewPreflightStep(name string, cfg *api.PreflightConfig) Step {
	return &preflightStep{base: base{name: name}, cfg: cfg}
}

func (s *preflightStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	for _, tool := range s.cfg.Tools {
		path, err := sctx.Resolver.LookPath(tool.Name)
		if err != nil {
			sctx.Report.Error("%s is not installed or not in PATH", tool.Name)
			if tool.InstallURL != "" {
				sctx.Report.Plain("     install it from %s and run this setup again", tool.InstallURL)
			}
			return nil, newError(KindMissingDependency, s.name, "%s not found in PATH: %w", tool.Name, err)
		}

		slog.Info("found requirement", "step", s.name, "tool", tool.Name, "path", path)
		sctx.Report.Success("%s found at %s", tool.Name, path)
		if tool.Name == "cargo" {
			sctx.TemplateData[DataCargo] = path
		}
	}
	return &StepResult{}, nil
}
