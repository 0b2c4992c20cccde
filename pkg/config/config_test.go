package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the loader away from any real config file on the machine
// running the tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "results.html", cfg.Output)
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, "zgrep", cfg.Zgrep)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SLACKSEARCH_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("SLACKSEARCH_OPEN_BROWSER", "false")
	t.Setenv("SLACKSEARCH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)

	yaml := "base_url: http://viewer.local:8080\noutput: out.html\nzgrep: /usr/bin/zgrep\n"
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "slackdump-searcher.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://viewer.local:8080", cfg.BaseURL)
	assert.Equal(t, "out.html", cfg.Output)
	assert.Equal(t, "/usr/bin/zgrep", cfg.Zgrep)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their defaults")
}

func TestLoadEnvBeatsConfigFile(t *testing.T) {
	isolate(t)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "slackdump-searcher.yaml"), []byte("output: from-file.html\n"), 0o644))
	t.Setenv("SLACKSEARCH_OUTPUT", "from-env.html")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env.html", cfg.Output)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	isolate(t)
	t.Setenv("SLACKSEARCH_LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("SLACKSEARCH_BASE_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	isolate(t)

	// Tab indentation is not valid YAML.
	require.NoError(t, os.WriteFile("slackdump-searcher.yaml", []byte("\toutput: x\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
