package api

import (
	"strings"
	"testing"
)

func TestValidate_DefaultPlan(t *testing.T) {
	if err := DefaultPlan().Validate(); err != nil {
		t.Fatalf("expected valid default plan, got error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Plan)
		wantErr string
	}{
		{
			name:    "no steps",
			mutate:  func(p *Plan) { p.Steps = nil },
			wantErr: "no steps",
		},
		{
			name:    "absolute workspace",
			mutate:  func(p *Plan) { p.WorkspaceDir = "/srv/privastead" },
			wantErr: "must be a relative path",
		},
		{
			name:    "escaping workspace",
			mutate:  func(p *Plan) { p.WorkspaceDir = "../privastead" },
			wantErr: "must be a relative path",
		},
		{
			name:    "missing name",
			mutate:  func(p *Plan) { p.Steps[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "duplicate name",
			mutate:  func(p *Plan) { p.Steps[2].Name = p.Steps[1].Name },
			wantErr: "duplicate step name",
		},
		{
			name:    "unknown type",
			mutate:  func(p *Plan) { p.Steps[0].Type = "deploy" },
			wantErr: "unknown type",
		},
		{
			name:    "out of order",
			mutate:  func(p *Plan) { p.Steps[3], p.Steps[4] = p.Steps[4], p.Steps[3] },
			wantErr: "expected \"intake\"",
		},
		{
			name:    "missing step",
			mutate:  func(p *Plan) { p.Steps = p.Steps[:6] },
			wantErr: "exactly 7 steps",
		},
		{
			name:    "empty tool name",
			mutate:  func(p *Plan) { p.Steps[0].Preflight.Tools[1].Name = "" },
			wantErr: "preflight.tools[1].name is required",
		},
		{
			name:    "no acquire command",
			mutate:  func(p *Plan) { p.Steps[1].Acquire = nil },
			wantErr: "acquire.command is required",
		},
		{
			name:    "acquire dir outside root",
			mutate:  func(p *Plan) { p.Steps[1].Acquire.Dir = "../../home" },
			wantErr: "acquire.dir",
		},
		{
			name:    "acquire dir is root",
			mutate:  func(p *Plan) { p.Steps[1].Acquire.Dir = "." },
			wantErr: "acquire.dir",
		},
		{
			name:    "no artifacts",
			mutate:  func(p *Plan) { p.Steps[2].Credentials.Artifacts = nil },
			wantErr: "credentials.artifacts",
		},
		{
			name:    "no intake destination",
			mutate:  func(p *Plan) { p.Steps[3].Intake.Destination = "" },
			wantErr: "intake.destination is required",
		},
		{
			name:    "no build dir",
			mutate:  func(p *Plan) { p.Steps[4].Build.Dir = "" },
			wantErr: "build.dir is required",
		},
		{
			name:    "no unit template",
			mutate:  func(p *Plan) { p.Steps[5].ServiceUnit.Template = "" },
			wantErr: "serviceUnit.template is required",
		},
		{
			name:    "no summary template",
			mutate:  func(p *Plan) { p.Steps[6].Summary = nil },
			wantErr: "summary.template is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPlan()
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
