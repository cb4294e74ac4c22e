// Package runner abstracts invocation of external tools so pipeline steps can
// be exercised against deterministic fakes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Result is the outcome of one external command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// CommandRunner runs an external command in dir and reports its exit status
// and captured output. A non-zero exit is reported through Result, not err;
// err is only set when the command could not be started.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// Resolver looks up executables on the execution path.
type Resolver interface {
	LookPath(name string) (string, error)
}

// ExecRunner executes commands on the local host. Output is captured and,
// when Stdout/Stderr are set, also streamed to them.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, r.Stdout)
	cmd.Stderr = tee(&stderr, r.Stderr)

	slog.Debug("running command", "dir", dir, "command", name, "args", strings.Join(args, " "))

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = 127
	return res, err
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// PathResolver resolves executables with exec.LookPath.
type PathResolver struct{}

func (PathResolver) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
