package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/config"
)

func TestApplyFlagsDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, applyFlags(cfg, nil))
	assert.Equal(t, config.Default(), cfg)
}

func TestApplyFlagsOverrides(t *testing.T) {
	cfg := config.Default()
	err := applyFlags(cfg, []string{
		"--root", "/srv/files",
		"--prefix", "fs/",
		"--port", "9000",
		"--host", "127.0.0.1",
		"--static", "./dist",
		"--dev",
	})
	require.NoError(t, err)

	assert.Equal(t, "/srv/files", cfg.Gateway.Root)
	assert.Equal(t, "/fs", cfg.Gateway.Prefix)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, config.ModeStatic, cfg.Gateway.Mode)
	assert.Equal(t, "./dist", cfg.Gateway.StaticDir)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyFlagsKeepsEnvironment(t *testing.T) {
	t.Setenv("FS_ROOT", "/from/env")
	t.Setenv("FS_MODE", config.ModeStatic)
	t.Setenv("STATIC_DIR", "/www")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, applyFlags(cfg, []string{"--port", "8080"}))

	assert.Equal(t, "/from/env", cfg.Gateway.Root)
	assert.Equal(t, config.ModeStatic, cfg.Gateway.Mode)
	assert.Equal(t, "/www", cfg.Gateway.StaticDir)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestApplyFlagsRejectsArguments(t *testing.T) {
	assert.Error(t, applyFlags(config.Default(), []string{"extra"}))
	assert.Error(t, applyFlags(config.Default(), []string{"--unknown"}))
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	logger, err := newLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	cfg.Logging.Level = "loud"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}
