package steps

import (
	"fmt"

	"github.com/privastead/privastead-setup/pkg/api"
)

// NewStep creates a Step implementation from a StepConfig. The config is
// expected to have defaults applied (see api.Plan.ApplyDefaults).
func NewStep(cfg api.StepConfig) (Step, error) {
	var (
		s       Step
		missing bool
	)

	switch cfg.Type {
	case api.StepTypePreflight:
		s, missing = NewPreflightStep(cfg.Name, cfg.Preflight), cfg.Preflight == nil
	case api.StepTypeAcquire:
		s, missing = NewAcquireStep(cfg.Name, cfg.Acquire), cfg.Acquire == nil
	case api.StepTypeCredentials:
		s, missing = NewCredentialsStep(cfg.Name, cfg.Credentials), cfg.Credentials == nil
	case api.StepTypeIntake:
		s, missing = NewIntakeStep(cfg.Name, cfg.Intake), cfg.Intake == nil
	case api.StepTypeBuild:
		s, missing = NewBuildStep(cfg.Name, cfg.Build), cfg.Build == nil
	case api.StepTypeServiceUnit:
		s, missing = NewServiceUnitStep(cfg.Name, cfg.ServiceUnit), cfg.ServiceUnit == nil
	case api.StepTypeSummary:
		s, missing = NewSummaryStep(cfg.Name, cfg.Summary), cfg.Summary == nil
	default:
		return nil, fmt.Errorf("unknown step type: %s", cfg.Type)
	}

	if missing {
		return nil, fmt.Errorf("%s config is required", cfg.Type)
	}
	return s, nil
}

// NewSteps creates the steps of a plan in order.
func NewSteps(p *api.Plan) ([]Step, error) {
	out := make([]Step, 0, len(p.Steps))
	for _, cfg := range p.Steps {
		s, err := NewStep(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating step %q: %w", cfg.Name, err)
		}
		out = append(out, s)
	}
	return out, nil
}
