package steps

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/privastead/privastead-setup/pkg/api"
	"github.com/privastead/privastead-setup/pkg/workdir"
)

type buildStep struct {
	base
	cfg *api.BuildConfig
}

// NewBuildStep creates the release build of the server. Only the exit status
// of the build tool is checked.
func NewBuildStep(name string, cfg *api.BuildConfig) Step {
	return &buildStep{base: base{name: name}, cfg: cfg}
}

func (s *buildStep) Run(ctx context.Context, sctx StepContext) (*StepResult, error) {
	dir := filepath.Join(sctx.Root, s.cfg.Dir)
	sctx.TemplateData[DataServerDir] = dir

	err := workdir.Within(dir, func() error {
		sctx.Report.Info("running %s %s in %s", s.cfg.Command, strings.Join(s.cfg.Args, " "), s.cfg.Dir)
		res, err := sctx.Runner.Run(ctx, ".", s.cfg.Command, s.cfg.Args...)
		if err != nil {
			return newError(KindBuildFailure, s.name, "starting %s: %w", s.cfg.Command, err)
		}
		if res.ExitCode != 0 {
			return newError(KindBuildFailure, s.name, "%s exited with status %d%s",
				s.cfg.Command, res.ExitCode, stderrSuffix(res.Stderr))
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, KindBuildFailure, s.name)
	}

	slog.Info("server built", "step", s.name, "dir", dir)
	sctx.Report.Success("server built")
	return &StepResult{}, nil
}
