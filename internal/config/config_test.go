package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, args, err := Load([]string{"chat"})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ServerURL)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultDemoDB, cfg.DemoDB)
	assert.True(t, cfg.DemoMode())
	assert.Equal(t, []string{"chat"}, args)
}

func TestLoad_Flags(t *testing.T) {
	cfg, args, err := Load([]string{
		"-server", "https://project.example.com",
		"-anon-key", "anon-key",
		"-db", "/tmp/custom.db",
		"chat",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://project.example.com", cfg.ServerURL)
	assert.Equal(t, "anon-key", cfg.AnonKey)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.False(t, cfg.DemoMode())
	assert.Equal(t, []string{"chat"}, args)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvServerURL, "https://env.example.com")
	t.Setenv(EnvAnonKey, "env-key")
	t.Setenv(EnvDBPath, "/tmp/env.db")

	cfg, _, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.ServerURL)
	assert.Equal(t, "env-key", cfg.AnonKey)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.False(t, cfg.DemoMode())
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv(EnvServerURL, "https://env.example.com")

	cfg, _, err := Load([]string{"-server", "https://flag.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com", cfg.ServerURL)
}

func TestDemoMode(t *testing.T) {
	assert.True(t, (&Config{}).DemoMode())
	assert.True(t, (&Config{ServerURL: "https://x"}).DemoMode())
	assert.True(t, (&Config{AnonKey: "k"}).DemoMode())
	assert.False(t, (&Config{ServerURL: "https://x", AnonKey: "k"}).DemoMode())
}
