package api

const (
	StepTypePreflight   = "preflight"
	StepTypeAcquire     = "acquire"
	StepTypeCredentials = "credentials"
	StepTypeIntake      = "intake"
	StepTypeBuild       = "build"
	StepTypeServiceUnit = "service-unit"
	StepTypeSummary     = "summary"

	DefaultRepoURL      = "https://github.com/privastead/privastead.git"
	DefaultWorkspaceDir = "privastead"
)

// stepOrder is the fixed order in which step types must appear in a plan.
var stepOrder = []string{
	StepTypePreflight,
	StepTypeAcquire,
	StepTypeCredentials,
	StepTypeIntake,
	StepTypeBuild,
	StepTypeServiceUnit,
	StepTypeSummary,
}

// Plan is the provisioning plan. The built-in plan comes from DefaultPlan;
// a YAML file may override any of its values.
type Plan struct {
	RepoURL      string       `yaml:"repoURL"`
	WorkspaceDir string       `yaml:"workspaceDir"`
	Steps        []StepConfig `yaml:"steps"`

	// Set by the loader, not from YAML.
	FilePath string `yaml:"-"`
}

// StepConfig defines a single step within a plan.
type StepConfig struct {
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Optional    bool               `yaml:"optional"`
	Preflight   *PreflightConfig   `yaml:"preflight,omitempty"`
	Acquire     *AcquireConfig     `yaml:"acquire,omitempty"`
	Credentials *CredentialsConfig `yaml:"credentials,omitempty"`
	Intake      *IntakeConfig      `yaml:"intake,omitempty"`
	Build       *BuildConfig       `yaml:"build,omitempty"`
	ServiceUnit *ServiceUnitConfig `yaml:"serviceUnit,omitempty"`
	Summary     *SummaryConfig     `yaml:"summary,omitempty"`
}

// Tool is an executable that must be resolvable on PATH.
type Tool struct {
	Name       string `yaml:"name"`
	InstallURL string `yaml:"installURL"`
}

// PreflightConfig configures the requirement check.
type PreflightConfig struct {
	Tools []Tool `yaml:"tools"`
}

// AcquireConfig configures the repository checkout. Dir is removed before
// the command runs.
type AcquireConfig struct {
	Dir     string   `yaml:"dir"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// CredentialsConfig configures credential generation. Artifacts are glob
// patterns relative to Dir, all of which must match after the tool ran.
// QRCode names the pairing image shown in the summary; it is required like
// the artifacts.
type CredentialsConfig struct {
	Dir       string   `yaml:"dir"`
	Command   string   `yaml:"command"`
	Args      []string `yaml:"args"`
	Artifacts []string `yaml:"artifacts"`
	QRCode    string   `yaml:"qrcode"`
}

// IntakeConfig configures the operator-supplied credential file.
type IntakeConfig struct {
	File         string   `yaml:"file"`
	Destination  string   `yaml:"destination"`
	Instructions []string `yaml:"instructions"`
}

// BuildConfig configures the release build.
type BuildConfig struct {
	Dir     string   `yaml:"dir"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ServiceUnitConfig configures the optional systemd unit.
type ServiceUnitConfig struct {
	Output   string         `yaml:"output"`
	Dir      string         `yaml:"dir"`
	Command  string         `yaml:"command"`
	Template string         `yaml:"template"`
	Context  map[string]any `yaml:"context"`
}

// SummaryConfig configures the closing instructions.
type SummaryConfig struct {
	Template string `yaml:"template"`
}
