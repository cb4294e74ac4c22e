package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/privastead/privastead-setup/pkg/api"
	"github.com/privastead/privastead-setup/pkg/steps"
)

// Result records how far a pipeline got.
type Result struct {
	Completed []string // steps that succeeded, in order
	Skipped   []string // optional steps that were declined or failed
	Failed    string   // the step that aborted the run
}

// RunPlan creates the plan's steps and runs them.
func RunPlan(ctx context.Context, plan *api.Plan, sctx steps.StepContext) (*Result, error) {
	pipeline, err := steps.NewSteps(plan)
	if err != nil {
		return nil, err
	}
	return RunPipeline(ctx, pipeline, sctx)
}

// RunPipeline executes steps sequentially and stops at the first failing
// step that is not optional. Artifacts a step reports are checked for
// existence before the next step starts.
func RunPipeline(ctx context.Context, pipeline []steps.Step, sctx steps.StepContext) (*Result, error) {
	if sctx.TemplateData == nil {
		sctx.TemplateData = make(map[string]any)
	}
	sctx.TemplateData[steps.DataRoot] = sctx.Root

	result := &Result{}
	for i, step := range pipeline {
		slog.Info("running step", "index", i+1, "step", step.Name(), "optional", step.Optional())
		sctx.Report.Section("[%d/%d] %s", i+1, len(pipeline), step.Name())

		start := time.Now()
		err := runStep(ctx, step, sctx)
		elapsed := time.Since(start).Round(time.Millisecond)

		switch {
		case errors.Is(err, errDeclined):
			slog.Info("optional step declined", "step", step.Name())
			result.Skipped = append(result.Skipped, step.Name())
		case err != nil && step.Optional():
			slog.Warn("optional step failed", "step", step.Name(), "error", err, "elapsed", elapsed)
			sctx.Report.Warn("%s failed, continuing: %v", step.Name(), err)
			result.Skipped = append(result.Skipped, step.Name())
		case err != nil:
			slog.Error("step failed", "step", step.Name(), "error", err, "elapsed", elapsed)
			sctx.Report.Error("%v", err)
			result.Failed = step.Name()
			return result, err
		default:
			slog.Info("step succeeded", "step", step.Name(), "elapsed", elapsed)
			result.Completed = append(result.Completed, step.Name())
		}
	}

	return result, nil
}

var errDeclined = errors.New("declined")

func runStep(ctx context.Context, step steps.Step, sctx steps.StepContext) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("step %q not started: %w", step.Name(), err)
	}

	res, err := step.Run(ctx, sctx)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	if res.Declined {
		return errDeclined
	}
	return verifyArtifacts(sctx.Root, step.Name(), res)
}

// verifyArtifacts checks the paths a step reported. A missing one is a
// failure of the step's own kind.
func verifyArtifacts(root, step string, res *steps.StepResult) error {
	for _, a := range res.Artifacts {
		p := filepath.Join(root, filepath.FromSlash(a))
		if _, err := os.Stat(p); err != nil {
			return &steps.Error{Kind: res.Kind, Step: step, Err: fmt.Errorf("artifact %s not present: %w", a, err)}
		}
		slog.Debug("artifact verified", "step", step, "path", p)
	}
	return nil
}
