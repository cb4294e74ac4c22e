package api

import "path"

const (
	DefaultCredentialsFile = "user_credentials"
	DefaultQRCodeFile      = "user_credentials_qrcode.png"
	DefaultServiceKeyFile  = "service_account_key.json"
	DefaultUnitFile        = "privastead.service"

	DefaultUnitTemplate = `[Unit]
Description={{ .Description }}
After=network.target

[Service]
User={{ .User }}
WorkingDirectory={{ .WorkingDirectory }}
ExecStart={{ .ExecStart }}
Restart={{ .Restart }}
RestartSec={{ .RestartSec }}
StandardOutput={{ .StandardOutput }}
StandardError={{ .StandardError }}
SyslogIdentifier={{ .SyslogIdentifier }}

[Install]
WantedBy=multi-user.target
`

	DefaultSummaryTemplate = `Next steps:
  1. Scan {{ .QRCode | default "the generated QR code" }} with the Privastead app to pair it with this server.
{{- if .UnitFile }}
  2. Install and start the service:
       sudo cp {{ .UnitFile }} /etc/systemd/system/
       sudo systemctl daemon-reload
       sudo systemctl enable --now {{ base .UnitFile | trimSuffix ".service" }}
{{- else }}
  2. Start the server:
       cd {{ .ServerDir }} && {{ .Cargo | default "cargo" }} run --release
{{- end }}
`
)

// DefaultPlan returns the built-in provisioning plan.
func DefaultPlan() *Plan {
	p := &Plan{}
	p.ApplyDefaults()
	return p
}

// DefaultSteps returns the fixed step list.
func DefaultSteps() []StepConfig {
	return []StepConfig{
		{Name: "check requirements", Type: StepTypePreflight},
		{Name: "clone repository", Type: StepTypeAcquire},
		{Name: "generate user credentials", Type: StepTypeCredentials},
		{Name: "install service account key", Type: StepTypeIntake},
		{Name: "build server", Type: StepTypeBuild},
		{Name: "create systemd unit", Type: StepTypeServiceUnit},
		{Name: "summary", Type: StepTypeSummary},
	}
}

// ApplyDefaults fills unset plan values, including per-step config blocks.
func (p *Plan) ApplyDefaults() {
	if p.RepoURL == "" {
		p.RepoURL = DefaultRepoURL
	}
	if p.WorkspaceDir == "" {
		p.WorkspaceDir = DefaultWorkspaceDir
	}
	if len(p.Steps) == 0 {
		p.Steps = DefaultSteps()
	}
	for i := range p.Steps {
		p.applyStepDefaults(&p.Steps[i])
	}
}

func (p *Plan) applyStepDefaults(s *StepConfig) {
	ws := p.WorkspaceDir
	switch s.Type {
	case StepTypePreflight:
		if s.Preflight == nil {
			s.Preflight = &PreflightConfig{}
		}
		if len(s.Preflight.Tools) == 0 {
			s.Preflight.Tools = []Tool{
				{Name: "git", InstallURL: "https://git-scm.com/downloads"},
				{Name: "cargo", InstallURL: "https://www.rust-lang.org/tools/install"},
			}
		}
	case StepTypeAcquire:
		if s.Acquire == nil {
			s.Acquire = &AcquireConfig{}
		}
		if s.Acquire.Dir == "" {
			s.Acquire.Dir = ws
		}
		if s.Acquire.Command == "" {
			s.Acquire.Command = "git"
		}
		if s.Acquire.Args == nil {
			s.Acquire.Args = []string{"clone", "--recurse-submodules", p.RepoURL, s.Acquire.Dir}
		}
	case StepTypeCredentials:
		if s.Credentials == nil {
			s.Credentials = &CredentialsConfig{}
		}
		c := s.Credentials
		if c.Dir == "" {
			c.Dir = path.Join(ws, "config_tool")
		}
		if c.Command == "" {
			c.Command = "cargo"
		}
		if c.Args == nil {
			c.Args = []string{"run", "--", "--dir", "."}
		}
		if len(c.Artifacts) == 0 {
			c.Artifacts = []string{DefaultCredentialsFile, DefaultQRCodeFile}
		}
		if c.QRCode == "" {
			c.QRCode = DefaultQRCodeFile
		}
	case StepTypeIntake:
		if s.Intake == nil {
			s.Intake = &IntakeConfig{}
		}
		in := s.Intake
		if in.File == "" {
			in.File = DefaultServiceKeyFile
		}
		if in.Destination == "" {
			in.Destination = path.Join(ws, "server", in.File)
		}
		if len(in.Instructions) == 0 {
			in.Instructions = []string{
				"Open the Firebase console (https://console.firebase.google.com) and create a project.",
				"Add an Android app to the project with the package name of the Privastead app.",
				"Go to Project settings > Service accounts.",
				"Click \"Generate new private key\" and download the JSON file.",
				"Rename the file to " + in.File + " and place it in this directory.",
			}
		}
	case StepTypeBuild:
		if s.Build == nil {
			s.Build = &BuildConfig{}
		}
		if s.Build.Dir == "" {
			s.Build.Dir = path.Join(ws, "server")
		}
		if s.Build.Command == "" {
			s.Build.Command = "cargo"
		}
		if s.Build.Args == nil {
			s.Build.Args = []string{"build", "--release"}
		}
	case StepTypeServiceUnit:
		s.Optional = true
		if s.ServiceUnit == nil {
			s.ServiceUnit = &ServiceUnitConfig{}
		}
		u := s.ServiceUnit
		if u.Output == "" {
			u.Output = DefaultUnitFile
		}
		if u.Dir == "" {
			u.Dir = path.Join(ws, "server")
		}
		if u.Command == "" {
			u.Command = "cargo"
		}
		if u.Template == "" {
			u.Template = DefaultUnitTemplate
		}
	case StepTypeSummary:
		s.Optional = true
		if s.Summary == nil {
			s.Summary = &SummaryConfig{}
		}
		if s.Summary.Template == "" {
			s.Summary.Template = DefaultSummaryTemplate
		}
	}
}
