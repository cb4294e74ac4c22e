package api

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Settings are read from the environment (and .env) with the
// PRIVASTEAD_SETUP_ prefix.
type Settings struct {
	Root     string `env:"ROOT"`
	RepoURL  string `env:"REPO_URL"`
	PlanFile string `env:"PLAN"`
	NoColor  bool   `env:"NO_COLOR, default=false"`
}

// LoadSettings processes the environment into Settings.
func LoadSettings(ctx context.Context) (*Settings, error) {
	return loadSettings(ctx, envconfig.OsLookuper())
}

func loadSettings(ctx context.Context, l envconfig.Lookuper) (*Settings, error) {
	var s Settings
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: envconfig.PrefixLookuper("PRIVASTEAD_SETUP_", l),
	})
	if err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	return &s, nil
}

// Apply overrides plan values with the ones set in the environment. It must
// run before ApplyDefaults so derived step arguments pick up the overrides.
func (s *Settings) Apply(p *Plan) {
	if s.RepoURL != "" {
		p.RepoURL = s.RepoURL
	}
}
