// Package runnertest provides deterministic fakes for runner interfaces.
package runnertest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/privastead/privastead-setup/pkg/runner"
)

// Call records one invocation of the fake runner.
type Call struct {
	Dir  string // dir argument
	Cwd  string // process working directory at call time
	Name string
	Args []string
}

// Key returns the handler key for the call: the command name followed by
// its first argument, e.g. "git clone" or "cargo build".
func (c Call) Key() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + c.Args[0]
}

// Handler produces the outcome of a call. It may write files to simulate a
// tool's side effects.
type Handler func(c Call) (runner.Result, error)

// Runner is a fake runner.CommandRunner. Calls without a handler succeed
// with exit status 0.
type Runner struct {
	mu       sync.Mutex
	Handlers map[string]Handler
	Calls    []Call
}

func NewRunner() *Runner {
	return &Runner{Handlers: make(map[string]Handler)}
}

// On registers a handler for key (see Call.Key).
func (r *Runner) On(key string, h Handler) *Runner {
	r.Handlers[key] = h
	return r
}

func (r *Runner) Run(_ context.Context, dir, name string, args ...string) (runner.Result, error) {
	cwd, _ := os.Getwd()
	c := Call{Dir: dir, Cwd: cwd, Name: name, Args: args}

	r.mu.Lock()
	r.Calls = append(r.Calls, c)
	h := r.Handlers[c.Key()]
	r.mu.Unlock()

	if h == nil {
		return runner.Result{}, nil
	}
	return h(c)
}

// Count returns how many calls matched key.
func (r *Runner) Count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Calls {
		if c.Key() == key {
			n++
		}
	}
	return n
}

// Exit returns a handler that exits with code and stderr.
func Exit(code int, stderr string) Handler {
	return func(Call) (runner.Result, error) {
		return runner.Result{ExitCode: code, Stderr: []byte(stderr)}, nil
	}
}

// Resolver is a fake runner.Resolver backed by a name to path map.
type Resolver struct {
	Paths   map[string]string
	Lookups []string
}

func (r *Resolver) LookPath(name string) (string, error) {
	r.Lookups = append(r.Lookups, name)
	if p, ok := r.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Joined returns args joined by spaces, for assertions.
func Joined(args []string) string {
	return strings.Join(args, " ")
}
