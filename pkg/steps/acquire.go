package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/privastead/privastead-setup/pkg/api"
)

type acquireStep struct {
	base
	cfg *api.AcquireConfig
}

// NewAcquireStep creates the repository checkout. An existing workspace
// directory is removed before cloning; there is no update path.
func NewAcquireStep(name string, cfg *api.AcquireConfig) Step {
	return &acquireStep{base: base{name: name}, cfg: cfg}
}

func (s *acquireStep) Run(ctx context.Context, sctx StepContext) (*StepResult, error) {
	dir := filepath.Join(sctx.Root, s.cfg.Dir)

	if _, err := os.Stat(dir); err == nil {
		sctx.Report.Warn("removing existing %s", s.cfg.Dir)
		slog.Info("removing existing workspace", "step", s.name, "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return nil, newError(KindAcquisitionFailure, s.name, "removing %s: %w", dir, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, newError(KindAcquisitionFailure, s.name, "checking %s: %w", dir, err)
	}

	sctx.Report.Info("running %s %s", s.cfg.Command, strings.Join(s.cfg.Args, " "))
	res, err := sctx.Runner.Run(ctx, sctx.Root, s.cfg.Command, s.cfg.Args...)
	if err != nil {
		return nil, newError(KindAcquisitionFailure, s.name, "starting %s: %w", s.cfg.Command, err)
	}
	if res.ExitCode != 0 {
		return nil, newError(KindAcquisitionFailure, s.name, "%s exited with status %d%s",
			s.cfg.Command, res.ExitCode, stderrSuffix(res.Stderr))
	}

	sctx.Report.Success("repository cloned into %s", s.cfg.Dir)
	return &StepResult{}, nil
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return fmt.Sprintf("\nstderr: %s", msg)
}
