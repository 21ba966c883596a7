package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caiflower/minihttpd/global/env"
	"github.com/caiflower/minihttpd/web/server"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	old := env.ConfigPath
	env.SetDefaultConfigPath(t.TempDir())
	defer env.SetDefaultConfigPath(old)
	t.Setenv(publicPathEnv, "")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	want := server.Config{Name: "minihttpd", Addr: "127.0.0.1:8080", Workers: 4, ReadBufferSize: 1024}
	if diff := cmp.Diff(want, cfg.Server); diff != "" {
		t.Errorf("server config mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "./public", cfg.PublicPath)
	assert.Equal(t, "@every 1m", cfg.StatsCron)

	ttl, err := cfg.cacheTTL()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ttl)
}

func TestLoadConfigYamlFromConfigPath(t *testing.T) {
	dir := t.TempDir()
	old := env.ConfigPath
	env.SetDefaultConfigPath(dir)
	defer env.SetDefaultConfigPath(old)
	t.Setenv(publicPathEnv, "/srv/www")

	content := "server:\n  addr: 0.0.0.0:9090\n  workers: 8\nmetricsAddr: 127.0.0.1:9100\ncacheTTL: 0s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644))

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Server.Workers)
	assert.Equal(t, "minihttpd", cfg.Server.Name)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
	assert.Equal(t, "/srv/www", cfg.PublicPath)

	ttl, err := cfg.cacheTTL()
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestLoadConfigToml(t *testing.T) {
	file := filepath.Join(t.TempDir(), "minihttpd.toml")
	content := "publicPath = \"./www\"\n\n[server]\nname = \"edge\"\nreadBufferSize = 4096\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	t.Setenv(publicPathEnv, "")

	cfg, err := loadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "edge", cfg.Server.Name)
	assert.Equal(t, 4096, cfg.Server.ReadBufferSize)
	assert.Equal(t, 4, cfg.Server.Workers)
	assert.Equal(t, "./www", cfg.PublicPath)
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCacheTTLInvalid(t *testing.T) {
	cfg := &AppConfig{CacheTTL: "soon"}
	_, err := cfg.cacheTTL()
	assert.Error(t, err)
}
