package steps

import (
	"context"
	"testing"

	"github.com/privastead/privastead-setup/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_WithoutUnit(t *testing.T) {
	env, sctx := newTestEnv(t, "")
	sctx.TemplateData[DataQRCode] = "privastead/config_tool/user_credentials_qrcode.png"
	sctx.TemplateData[DataServerDir] = "/srv/privastead/server"
	sctx.TemplateData[DataCargo] = "/home/op/.cargo/bin/cargo"

	cfg := defaultStepConfig(t, api.StepTypeSummary)
	_, err := NewSummaryStep(cfg.Name, cfg.Summary).Run(context.Background(), sctx)
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "Scan privastead/config_tool/user_credentials_qrcode.png")
	assert.Contains(t, out, "cd /srv/privastead/server && /home/op/.cargo/bin/cargo run --release")
	assert.NotContains(t, out, "systemctl")
}

func TestSummary_WithUnit(t *testing.T) {
	env, sctx := newTestEnv(t, "")
	sctx.TemplateData[DataQRCode] = "privastead/config_tool/user_credentials_qrcode.png"
	sctx.TemplateData[DataUnitFile] = "/srv/privastead.service"

	cfg := defaultStepConfig(t, api.StepTypeSummary)
	_, err := NewSummaryStep(cfg.Name, cfg.Summary).Run(context.Background(), sctx)
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "sudo cp /srv/privastead.service /etc/systemd/system/")
	assert.Contains(t, out, "sudo systemctl enable --now privastead\n")
}

func TestSummary_WithoutQRCode(t *testing.T) {
	env, sctx := newTestEnv(t, "")
	sctx.TemplateData[DataServerDir] = "/srv/privastead/server"

	cfg := defaultStepConfig(t, api.StepTypeSummary)
	_, err := NewSummaryStep(cfg.Name, cfg.Summary).Run(context.Background(), sctx)
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "Scan the generated QR code with")
	assert.NotContains(t, out, "<no value>")
}

func TestSummary_BadTemplate(t *testing.T) {
	_, sctx := newTestEnv(t, "")

	_, err := NewSummaryStep("summary", &api.SummaryConfig{Template: "{{ .Broken"}).Run(context.Background(), sctx)
	require.Error(t, err)
}
