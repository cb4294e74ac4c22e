package steps

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/privastead/privastead-setup/pkg/api"
)

// UnitDescriptor holds the values rendered into the systemd unit.
type UnitDescriptor struct {
	Description      string
	User             string
	WorkingDirectory string
	ExecStart        string
	Restart          string
	RestartSec       int
	StandardOutput   string
	StandardError    string
	SyslogIdentifier string
}

// templateData converts the descriptor into template data.
func (d UnitDescriptor) templateData() map[string]any {
	return map[string]any{
		"Description":      d.Description,
		"User":             d.User,
		"WorkingDirectory": d.WorkingDirectory,
		"ExecStart":        d.ExecStart,
		"Restart":          d.Restart,
		"RestartSec":       d.RestartSec,
		"StandardOutput":   d.StandardOutput,
		"StandardError":    d.StandardError,
		"SyslogIdentifier": d.SyslogIdentifier,
	}
}

// CurrentUser returns the name of the operating identity. Tests replace it.
var CurrentUser = func() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

type serviceUnitStep struct {
	base
	cfg *api.ServiceUnitConfig
}

// NewServiceUnitStep creates the optional systemd unit generation. It asks
// once; anything but an affirmative answer skips the step.
func NewServiceUnitStep(name string, cfg *api.ServiceUnitConfig) Step {
	return &serviceUnitStep{base: base{name: name, optional: true}, cfg: cfg}
}

func (s *serviceUnitStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	ok, err := sctx.Prompt.Confirm("Create a systemd service file for the server?")
	if err != nil {
		slog.Info("no answer for service unit, skipping", "step", s.name, "error", err)
		ok = false
	}
	if !ok {
		sctx.Report.Info("skipping systemd service file")
		return &StepResult{Declined: true}, nil
	}

	desc, err := s.describe(sctx)
	if err != nil {
		return nil, err
	}

	data := api.MergeContext(desc.templateData(), s.cfg.Context)
	content, err := renderUnit(s.name, s.cfg.Template, data)
	if err != nil {
		return nil, err
	}

	out := filepath.Join(sctx.Root, s.cfg.Output)
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}
	sctx.TemplateData[DataUnitFile] = out

	slog.Info("service unit written", "step", s.name, "output", out)
	sctx.Report.Success("wrote %s", out)
	sctx.Report.Plain("To install the service run:")
	sctx.Report.Plain("  sudo cp %s /etc/systemd/system/", out)
	sctx.Report.Plain("  sudo systemctl daemon-reload")
	sctx.Report.Plain("  sudo systemctl enable %s", filepath.Base(out))
	sctx.Report.Plain("  sudo systemctl start %s", filepath.Base(out))

	return &StepResult{Artifacts: []string{s.cfg.Output}}, nil
}

// describe captures the operating identity, server directory and resolved
// toolchain path.
func (s *serviceUnitStep) describe(sctx StepContext) (UnitDescriptor, error) {
	username, err := CurrentUser()
	if err != nil {
		return UnitDescriptor{}, fmt.Errorf("resolving current user: %w", err)
	}

	dir, err := filepath.Abs(filepath.Join(sctx.Root, s.cfg.Dir))
	if err != nil {
		return UnitDescriptor{}, fmt.Errorf("resolving server directory: %w", err)
	}

	cmd, err := sctx.Resolver.LookPath(s.cfg.Command)
	if err != nil {
		return UnitDescriptor{}, fmt.Errorf("resolving %s: %w", s.cfg.Command, err)
	}

	return UnitDescriptor{
		Description:      "Privastead Server",
		User:             username,
		WorkingDirectory: dir,
		ExecStart:        execArg(cmd) + " run --release",
		Restart:          "always",
		RestartSec:       1,
		StandardOutput:   "syslog",
		StandardError:    "syslog",
		SyslogIdentifier: "privastead",
	}, nil
}

// execArg quotes a command line word for systemd when it would otherwise be
// split or unescaped.
func execArg(word string) string {
	if strings.ContainsAny(word, " \t\"'\\") {
		return strconv.Quote(word)
	}
	return word
}

func renderUnit(name, text string, data map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing unit template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing unit template: %w", err)
	}
	return buf.Bytes(), nil
}
