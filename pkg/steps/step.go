package steps

import (
	"context"

	"github.com/privastead/privastead-setup/pkg/prompt"
	"github.com/privastead/privastead-setup/pkg/report"
	"github.com/privastead/privastead-setup/pkg/runner"
)

// Keys steps publish into StepContext.TemplateData for later steps.
const (
	DataRoot      = "Root"
	DataCargo     = "Cargo"
	DataQRCode    = "QRCode"
	DataServerDir = "ServerDir"
	DataUnitFile  = "UnitFile"
)

// StepContext provides the runtime context for a step.
type StepContext struct {
	Root         string // absolute workspace root
	Runner       runner.CommandRunner
	Resolver     runner.Resolver
	Prompt       prompt.Confirmer
	Report       *report.Reporter
	TemplateData map[string]any
}

// StepResult holds the output of a step.
type StepResult struct {
	Artifacts []string // paths relative to Root produced by the step
	Declined  bool     // an optional gate was declined
	Kind      Kind     // classifies a missing artifact
}

// Step is the interface all pipeline steps implement. A step checks its own
// precondition, performs its body and verifies its postcondition; failures
// are reported as *Error.
type Step interface {
	Name() string
	Optional() bool
	Run(ctx context.Context, sctx StepContext) (*StepResult, error)
}

type base struct {
	name     string
	optional bool
}

func (b base) Name() string   { return b.name }
func (b base) Optional() bool { return b.optional }
