package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/privastead/privastead-setup/pkg/api"
	"github.com/privastead/privastead-setup/pkg/logging"
	"github.com/privastead/privastead-setup/pkg/processing"
	"github.com/privastead/privastead-setup/pkg/prompt"
	"github.com/privastead/privastead-setup/pkg/report"
	"github.com/privastead/privastead-setup/pkg/runner"
	"github.com/privastead/privastead-setup/pkg/steps"
)

var version = "dev"

// Pipeline failures exit with steps.ExitCode, which starts at 3.
const (
	_ = iota
	exitStartupFailed
	exitLoadPlanFailed
)

var (
	planFile    string
	loggingType string
	logLevel    string
	showVersion bool
)

func init() {
	flag.StringVar(
		&planFile,
		"plan",
		"",
		"YAML plan overriding the built-in provisioning steps")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"warn",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := logging.Initialize(loggingType, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitStartupFailed)
	}
	slog.SetDefault(slog.Default().With("run", uuid.NewString()))

	includeEnv()

	ctx := context.Background()
	settings := loadSettings(ctx)
	root := resolveRoot(settings)
	plan := loadPlan(settings)

	sctx := steps.StepContext{
		Root:     root,
		Runner:   runner.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		Resolver: runner.PathResolver{},
		Prompt:   prompt.NewPrompter(os.Stdin, os.Stdout),
		Report:   report.New(os.Stdout, settings.NoColor),
	}

	slog.Info("starting provisioning", "root", root, "repo", plan.RepoURL, "version", version)
	result, err := processing.RunPlan(ctx, plan, sctx)
	if err != nil {
		failed := ""
		if result != nil {
			failed = result.Failed
		}
		slog.Error("provisioning aborted", "step", failed, "error", err)
		os.Exit(steps.ExitCode(err))
	}

	slog.Info("done", "completed", len(result.Completed), "skipped", result.Skipped)
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitStartupFailed)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}

func loadSettings(ctx context.Context) *api.Settings {
	settings, err := api.LoadSettings(ctx)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(exitStartupFailed)
	}
	if planFile == "" {
		planFile = settings.PlanFile
	}
	return settings
}

func resolveRoot(settings *api.Settings) string {
	root := settings.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			slog.Error("failed to resolve working directory", "error", err)
			os.Exit(exitStartupFailed)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		slog.Error("failed to resolve root", "root", root, "error", err)
		os.Exit(exitStartupFailed)
	}

	st, err := os.Stat(abs)
	if err != nil {
		slog.Error("failed to check root", "root", abs, "error", err)
		os.Exit(exitStartupFailed)
	}
	if !st.IsDir() {
		slog.Error("root is not a directory", "root", abs)
		os.Exit(exitStartupFailed)
	}
	return abs
}

func loadPlan(settings *api.Settings) *api.Plan {
	plan, err := api.LoadPlan(planFile, settings)
	if err != nil {
		slog.Error("failed to load plan", "filename", planFile, "error", err)
		os.Exit(exitLoadPlanFailed)
	}
	if plan.FilePath != "" {
		slog.Info("using plan file", "filename", plan.FilePath)
	}
	return plan
}
