package steps

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/privastead/privastead-setup/pkg/api"
	"github.com/privastead/privastead-setup/pkg/workdir"
)

type credentialsStep struct {
	base
	cfg *api.CredentialsConfig
}

// NewCredentialsStep creates the credential generation step. Success is
// decided by the presence of every configured artifact, not by the tool's
// exit status alone.
func NewCredentialsStep(name string, cfg *api.CredentialsConfig) Step {
	return &credentialsStep{base: base{name: name}, cfg: cfg}
}

// patterns returns the artifact patterns plus the QR code pattern when it is
// not listed, and the index of the QR code pattern.
func (s *credentialsStep) patterns() ([]string, int) {
	patterns := slices.Clone(s.cfg.Artifacts)
	if s.cfg.QRCode == "" {
		return patterns, -1
	}
	i := slices.Index(patterns, s.cfg.QRCode)
	if i < 0 {
		patterns = append(patterns, s.cfg.QRCode)
		i = len(patterns) - 1
	}
	return patterns, i
}

func (s *credentialsStep) Run(ctx context.Context, sctx StepContext) (*StepResult, error) {
	patterns, qr := s.patterns()

	var found []string
	err := workdir.Within(filepath.Join(sctx.Root, s.cfg.Dir), func() error {
		var err error
		found, err = s.generate(ctx, sctx, patterns)
		return err
	})
	if err != nil {
		return nil, classify(err, KindGenerationFailure, s.name)
	}

	artifacts := make([]string, 0, len(found))
	for _, f := range found {
		artifacts = append(artifacts, path.Join(filepath.ToSlash(s.cfg.Dir), f))
	}
	if qr >= 0 {
		sctx.TemplateData[DataQRCode] = artifacts[qr]
	}

	sctx.Report.Success("credentials written: %s", strings.Join(artifacts, ", "))
	return &StepResult{Artifacts: artifacts, Kind: KindGenerationFailure}, nil
}

// generate runs inside the credentials directory and returns the files the
// patterns resolved to.
func (s *credentialsStep) generate(ctx context.Context, sctx StepContext, patterns []string) ([]string, error) {
	sctx.Report.Info("generating user credentials in %s", s.cfg.Dir)
	res, err := sctx.Runner.Run(ctx, ".", s.cfg.Command, s.cfg.Args...)
	if err != nil {
		return nil, newError(KindGenerationFailure, s.name, "starting %s: %w", s.cfg.Command, err)
	}

	found, missing, err := resolveArtifacts(os.DirFS("."), patterns)
	if err != nil {
		return nil, newError(KindGenerationFailure, s.name, "verifying artifacts: %w", err)
	}
	if len(missing) > 0 {
		return nil, newError(KindGenerationFailure, s.name, "missing %s after %s (exit status %d)%s",
			strings.Join(missing, ", "), s.cfg.Command, res.ExitCode, stderrSuffix(res.Stderr))
	}
	if res.ExitCode != 0 {
		return nil, newError(KindGenerationFailure, s.name, "%s exited with status %d%s",
			s.cfg.Command, res.ExitCode, stderrSuffix(res.Stderr))
	}

	slog.Info("credential artifacts verified", "step", s.name, "artifacts", found)
	return found, nil
}
