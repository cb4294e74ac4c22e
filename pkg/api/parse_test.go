package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(f, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLoadPlan_Default(t *testing.T) {
	p, err := LoadPlan("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Steps) != 7 {
		t.Fatalf("expected 7 steps, got %d", len(p.Steps))
	}
	if p.RepoURL != DefaultRepoURL {
		t.Errorf("expected default repo URL, got %q", p.RepoURL)
	}
	if p.FilePath != "" {
		t.Errorf("expected no file path for built-in plan, got %q", p.FilePath)
	}
}

func TestLoadPlan_OverridesFromFile(t *testing.T) {
	f := writePlan(t, `
repoURL: https://example.com/fork.git
workspaceDir: checkout
`)

	p, err := LoadPlan(f, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acquire := p.Steps[1].Acquire
	want := []string{"clone", "--recurse-submodules", "https://example.com/fork.git", "checkout"}
	if strings.Join(acquire.Args, " ") != strings.Join(want, " ") {
		t.Errorf("acquire args = %v, want %v", acquire.Args, want)
	}
	if p.Steps[2].Credentials.Dir != "checkout/config_tool" {
		t.Errorf("credentials dir = %q", p.Steps[2].Credentials.Dir)
	}
	if p.Steps[3].Intake.Destination != "checkout/server/service_account_key.json" {
		t.Errorf("intake destination = %q", p.Steps[3].Intake.Destination)
	}
	if !filepath.IsAbs(p.FilePath) {
		t.Errorf("expected absolute FilePath, got %q", p.FilePath)
	}
}

func TestLoadPlan_StepBlocks(t *testing.T) {
	f := writePlan(t, `
steps:
  - name: requirements
    type: preflight
  - name: clone
    type: acquire
  - name: credentials
    type: credentials
    credentials:
      args: ["run", "--release", "--", "--dir", "."]
      artifacts: ["user_credentials", "*.png"]
      qrcode: "*.png"
  - name: key
    type: intake
  - name: build
    type: build
    build:
      args: ["build", "--release", "--locked"]
  - name: unit
    type: service-unit
    serviceUnit:
      context:
        ExecStart: /opt/privastead/server
  - name: done
    type: summary
`)

	p, err := LoadPlan(f, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := p.Steps[2].Credentials; c.QRCode != "*.png" || len(c.Artifacts) != 2 {
		t.Errorf("credentials = %+v", c)
	}
	if got := strings.Join(p.Steps[4].Build.Args, " "); got != "build --release --locked" {
		t.Errorf("build args = %q", got)
	}
	if p.Steps[5].ServiceUnit.Context["ExecStart"] != "/opt/privastead/server" {
		t.Errorf("unit context = %v", p.Steps[5].ServiceUnit.Context)
	}
	if !p.Steps[5].Optional || !p.Steps[6].Optional {
		t.Error("service unit and summary must always be optional")
	}
	if p.Steps[4].Optional {
		t.Error("build must not be optional")
	}
}

func TestLoadPlan_SettingsOverride(t *testing.T) {
	f := writePlan(t, "repoURL: https://example.com/file.git\n")

	p, err := LoadPlan(f, &Settings{RepoURL: "https://example.com/env.git"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RepoURL != "https://example.com/env.git" {
		t.Errorf("expected env override, got %q", p.RepoURL)
	}
	if p.Steps[1].Acquire.Args[2] != "https://example.com/env.git" {
		t.Errorf("acquire args not derived from override: %v", p.Steps[1].Acquire.Args)
	}
}

func TestLoadPlan_FileNotFound(t *testing.T) {
	_, err := LoadPlan("/nonexistent/plan.yaml", nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading plan file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadPlan_InvalidYAML(t *testing.T) {
	f := writePlan(t, "steps: [[[invalid")

	_, err := LoadPlan(f, nil)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parsing plan file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadPlan_ValidationError(t *testing.T) {
	f := writePlan(t, `
steps:
  - name: build
    type: build
`)

	_, err := LoadPlan(f, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validating plan") {
		t.Fatalf("unexpected error: %v", err)
	}
}
