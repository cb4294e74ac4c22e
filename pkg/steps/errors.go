package steps

import (
	"errors"
	"fmt"
)

// Kind classifies a terminal step failure.
type Kind int

const (
	KindMissingDependency Kind = iota + 1
	KindAcquisitionFailure
	KindGenerationFailure
	KindUserDeclined
	KindBuildFailure
	KindIntakeFailure
)

var (
	ErrMissingDependency  = errors.New("missing dependency")
	ErrAcquisitionFailure = errors.New("repository acquisition failed")
	ErrGenerationFailure  = errors.New("credential generation failed")
	ErrUserDeclined       = errors.New("declined by operator")
	ErrBuildFailure       = errors.New("build failed")
	ErrIntakeFailure      = errors.New("credential intake failed")
)

var kindSentinels = map[Kind]error{
	KindMissingDependency:  ErrMissingDependency,
	KindAcquisitionFailure: ErrAcquisitionFailure,
	KindGenerationFailure:  ErrGenerationFailure,
	KindUserDeclined:       ErrUserDeclined,
	KindBuildFailure:       ErrBuildFailure,
	KindIntakeFailure:      ErrIntakeFailure,
}

// exit codes 1 and 2 are reserved for startup errors in main.
var kindExitCodes = map[Kind]int{
	KindMissingDependency:  3,
	KindAcquisitionFailure: 4,
	KindGenerationFailure:  5,
	KindUserDeclined:       6,
	KindBuildFailure:       7,
	KindIntakeFailure:      8,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return "unknown failure"
}

// Error is a classified step failure.
type Error struct {
	Kind Kind
	Step string
	Err  error
}

func newError(kind Kind, step string, format string, args ...any) *Error {
	return &Error{Kind: kind, Step: step, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("step %q: %s", e.Step, e.Kind)
	}
	return fmt.Sprintf("step %q: %s: %v", e.Step, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// ExitCode maps an error to the process exit status: 0 for nil, the kind's
// code for classified failures and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *Error
	if errors.As(err, &se) {
		if code, ok := kindExitCodes[se.Kind]; ok {
			return code
		}
	}
	return 1
}

// classify returns err unchanged when it is already a step error, otherwise
// it wraps it with kind.
func classify(err error, kind Kind, step string) error {
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Kind: kind, Step: step, Err: err}
}
