package steps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/privastead/privastead-setup/pkg/api"
	"github.com/privastead/privastead-setup/pkg/prompt"
)

type intakeStep struct {
	base
	cfg *api.IntakeConfig
}

// NewIntakeStep creates the gate for the operator-supplied service account
// key. The operator is asked until the file is in place or they decline.
func NewIntakeStep(name string, cfg *api.IntakeConfig) Step {
	return &intakeStep{base: base{name: name}, cfg: cfg}
}

func (s *intakeStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	src := filepath.Join(sctx.Root, s.cfg.File)
	dst := filepath.Join(sctx.Root, s.cfg.Destination)

	sctx.Report.Info("%s must be obtained manually:", s.cfg.File)
	for i, line := range s.cfg.Instructions {
		sctx.Report.Plain("  %d. %s", i+1, line)
	}

	question := fmt.Sprintf("Has %s been placed in %s?", s.cfg.File, sctx.Root)
	for attempt := 1; ; attempt++ {
		answer, err := sctx.Prompt.Ask(question)
		if err != nil {
			if errors.Is(err, prompt.ErrNoInput) {
				return nil, newError(KindUserDeclined, s.name, "input closed before %s was confirmed", s.cfg.File)
			}
			return nil, newError(KindIntakeFailure, s.name, "reading answer: %w", err)
		}

		switch answer {
		case prompt.Negative:
			sctx.Report.Error("%s is required to run the server", s.cfg.File)
			return nil, newError(KindUserDeclined, s.name, "%s not provided", s.cfg.File)
		case prompt.Affirmative:
			if _, err := os.Stat(src); err != nil {
				slog.Warn("service account key not found", "step", s.name, "path", src, "attempt", attempt)
				sctx.Report.Error("%s not found in %s", s.cfg.File, sctx.Root)
				continue
			}
			if err := moveFile(src, dst); err != nil {
				return nil, newError(KindIntakeFailure, s.name, "moving %s: %w", s.cfg.File, err)
			}
			sctx.Report.Success("moved %s to %s", s.cfg.File, s.cfg.Destination)
			return &StepResult{
				Artifacts: []string{filepath.ToSlash(s.cfg.Destination)},
				Kind:      KindIntakeFailure,
			}, nil
		default:
			sctx.Report.Warn("please answer y or n")
		}
	}
}

// moveFile renames src to dst, falling back to copy and remove when they are
// on different filesystems.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	if closeErr := out.Close(); closeErr != nil && copyErr == nil {
		return fmt.Errorf("closing %s: %w", dst, closeErr)
	}
	if copyErr != nil {
		return fmt.Errorf("copying to %s: %w", dst, copyErr)
	}
	return nil
}
