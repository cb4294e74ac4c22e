package steps

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/privastead/privastead-setup/pkg/prompt"
	"github.com/privastead/privastead-setup/pkg/report"
	"github.com/privastead/privastead-setup/pkg/runner/runnertest"
)

// writeTestFile writes content to a file in dir, failing the test on error.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

type testEnv struct {
	root     string
	runner   *runnertest.Runner
	resolver *runnertest.Resolver
	out      *bytes.Buffer
}

// newTestEnv creates a workspace root, changes into it and returns a step
// context answering prompts from input.
func newTestEnv(t *testing.T, input string) (*testEnv, StepContext) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	prevWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWd) })

	env := &testEnv{
		root:   root,
		runner: runnertest.NewRunner(),
		resolver: &runnertest.Resolver{Paths: map[string]string{
			"git":   "/usr/bin/git",
			"cargo": "/home/op/.cargo/bin/cargo",
		}},
		out: &bytes.Buffer{},
	}

	return env, StepContext{
		Root:         root,
		Runner:       env.runner,
		Resolver:     env.resolver,
		Prompt:       prompt.NewPrompter(strings.NewReader(input), env.out),
		Report:       report.New(env.out, true),
		TemplateData: map[string]any{DataRoot: root},
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
