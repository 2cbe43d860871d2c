package bootstrap

import (
	"context"
	"testing"

	"go-jobscout/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReporters(t *testing.T) {
	cfg := &config.Config{}

	sinks := NewReporters(cfg, t.TempDir(), nil)
	require.Len(t, sinks, 2)
	assert.Equal(t, "markdown", sinks[0].Name())
	assert.Equal(t, "json", sinks[1].Name())

	cfg.ExportPDF = true
	sinks = NewReporters(cfg, t.TempDir(), nil)
	require.Len(t, sinks, 3)
	assert.Equal(t, "pdf", sinks[2].Name())
}

func TestConnectDatabase_Unset(t *testing.T) {
	repo, err := ConnectDatabase(context.Background(), &config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, repo)
}

func TestNewGate_UsesConfiguredAgent(t *testing.T) {
	cfg, err := config.LoadFile("does-not-exist.yaml")
	require.NoError(t, err)
	cfg.Robots.UserAgent = "TestScout/0.1"

	gate := NewGate(cfg)
	assert.Equal(t, "TestScout/0.1", gate.UserAgent())
	assert.Equal(t, 0, gate.Len())
}
