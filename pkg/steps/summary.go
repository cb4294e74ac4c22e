package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/privastead/privastead-setup/pkg/api"
)

type summaryStep struct {
	base
	cfg *api.SummaryConfig
}

// NewSummaryStep creates the closing instructions. It has no side effects
// besides output.
func NewSummaryStep(name string, cfg *api.SummaryConfig) Step {
	return &summaryStep{base: base{name: name, optional: true}, cfg: cfg}
}

func (s *summaryStep) Run(_ context.Context, sctx StepContext) (*StepResult, error) {
	tmpl, err := template.New(s.name).Funcs(sprig.FuncMap()).Parse(s.cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("parsing summary template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, sctx.TemplateData); err != nil {
		return nil, fmt.Errorf("executing summary template: %w", err)
	}

	sctx.Report.Success("setup complete")
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		sctx.Report.Plain("%s", line)
	}
	return &StepResult{}, nil
}
