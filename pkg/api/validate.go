package api

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Validate checks the plan configuration for errors. The steps must contain
// every step type exactly once in the fixed provisioning order.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}
	if err := validateRelative("workspaceDir", p.WorkspaceDir); err != nil {
		return err
	}

	names := make(map[string]int)
	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if !slices.Contains(stepOrder, step.Type) {
			return fmt.Errorf("step %q: unknown type %q", step.Name, step.Type)
		}

		if err := validateStepConfig(step); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}

	return validateOrder(p.Steps)
}

func validateOrder(steps []StepConfig) error {
	if len(steps) != len(stepOrder) {
		return fmt.Errorf("plan must have exactly %d steps (%s), got %d",
			len(stepOrder), strings.Join(stepOrder, ", "), len(steps))
	}
	for i, step := range steps {
		if step.Type != stepOrder[i] {
			return fmt.Errorf("step %q: type %q at position %d, expected %q", step.Name, step.Type, i, stepOrder[i])
		}
	}
	return nil
}

func validateStepConfig(step StepConfig) error {
	switch step.Type {
	case StepTypePreflight:
		if step.Preflight == nil || len(step.Preflight.Tools) == 0 {
			return fmt.Errorf("preflight.tools is required")
		}
		for i, tool := range step.Preflight.Tools {
			if tool.Name == "" {
				return fmt.Errorf("preflight.tools[%d].name is required", i)
			}
		}
	case StepTypeAcquire:
		if step.Acquire == nil || step.Acquire.Command == "" {
			return fmt.Errorf("acquire.command is required")
		}
		if err := validateRelative("acquire.dir", step.Acquire.Dir); err != nil {
			return err
		}
	case StepTypeCredentials:
		return validateCredentialsConfig(step)
	case StepTypeIntake:
		if step.Intake == nil || step.Intake.File == "" {
			return fmt.Errorf("intake.file is required")
		}
		if step.Intake.Destination == "" {
			return fmt.Errorf("intake.destination is required")
		}
	case StepTypeBuild:
		if step.Build == nil || step.Build.Command == "" {
			return fmt.Errorf("build.command is required")
		}
		if step.Build.Dir == "" {
			return fmt.Errorf("build.dir is required")
		}
	case StepTypeServiceUnit:
		if step.ServiceUnit == nil || step.ServiceUnit.Output == "" {
			return fmt.Errorf("serviceUnit.output is required")
		}
		if step.ServiceUnit.Template == "" {
			return fmt.Errorf("serviceUnit.template is required")
		}
	case StepTypeSummary:
		if step.Summary == nil || step.Summary.Template == "" {
			return fmt.Errorf("summary.template is required")
		}
	}
	return nil
}

func validateCredentialsConfig(step StepConfig) error {
	c := step.Credentials
	if c == nil || c.Command == "" {
		return fmt.Errorf("credentials.command is required")
	}
	if c.Dir == "" {
		return fmt.Errorf("credentials.dir is required")
	}
	if len(c.Artifacts) == 0 {
		return fmt.Errorf("credentials.artifacts must name at least one file")
	}
	return nil
}

// validateRelative rejects empty, absolute and root-escaping paths. The
// acquire step removes its directory, so it must stay inside the root.
func validateRelative(field, p string) error {
	clean := filepath.Clean(p)
	if p == "" || clean == "." || filepath.IsAbs(p) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%s %q must be a relative path inside the root", field, p)
	}
	return nil
}
