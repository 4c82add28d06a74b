package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
	"github.com/dmitrijs2005/dapnet/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, dapnet.DefaultBaseURL, c.APIURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, "dapnet-history.db", c.HistoryDSN)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 80, c.MaxLength)
	assert.Equal(t, "...", c.Ellipsis)
	assert.Equal(t, PolicyReplace, c.NonASCII)
	assert.Equal(t, "?", c.Replacement)
	assert.Empty(t, c.Username)
	assert.Empty(t, c.Password)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"dapnet", "stats"}

	t.Setenv(EnvURL, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, dapnet.DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_url":  "http://file.example/api/",
		"username": "from-file",
		"password": "file-secret",
		"timeout":  "3s",
	})

	t.Setenv(EnvURL, "")
	t.Setenv(EnvUsername, "from-env")
	t.Setenv(EnvPassword, "env-secret")

	os.Args = []string{"dapnet", "-c", path, "-p", "flag-secret", "stats"}

	cfg := LoadConfig()

	assert.Equal(t, "http://file.example/api/", cfg.APIURL, "file beats defaults")
	assert.Equal(t, "from-env", cfg.Username, "env beats file")
	assert.Equal(t, "flag-secret", cfg.Password, "flags beat env")
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvURL, "http://env.example/")
	t.Setenv(EnvUsername, "m0nxn")
	t.Setenv(EnvPassword, "")

	cfg := &Config{Password: "keep-me"}
	parseEnv(cfg)

	assert.Equal(t, "http://env.example/", cfg.APIURL)
	assert.Equal(t, "m0nxn", cfg.Username)
	assert.Equal(t, "keep-me", cfg.Password, "empty variable must not clear a value")
}

func TestSanitizeOptions(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		repl    string
		want    sanitize.NonASCIIPolicy
		wantErr bool
	}{
		{name: "keep", policy: PolicyKeep, want: sanitize.KeepNonASCII()},
		{name: "remove", policy: PolicyRemove, want: sanitize.RemoveNonASCII()},
		{name: "replace default", policy: PolicyReplace, want: sanitize.ReplaceNonASCII('?')},
		{name: "replace custom", policy: PolicyReplace, repl: "_", want: sanitize.ReplaceNonASCII('_')},
		{name: "empty policy means replace", policy: "", want: sanitize.ReplaceNonASCII('?')},
		{name: "multi-char replacement", policy: PolicyReplace, repl: "ab", wantErr: true},
		{name: "unknown policy", policy: "transliterate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{MaxLength: 20, Ellipsis: "~", NonASCII: tt.policy, Replacement: tt.repl}

			opts, err := c.SanitizeOptions()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 20, opts.MaxLength)
			assert.Equal(t, "~", opts.Ellipsis)
			assert.Equal(t, tt.want, opts.NonASCII)
		})
	}
}

func TestLoadConfig_SubSecondTimeoutFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(EnvURL, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{name: "below one second", timeout: "500ms", want: 500 * time.Millisecond},
		{name: "fractional seconds", timeout: "1500ms", want: 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempJSON(t, "", "", map[string]any{"timeout": tt.timeout})
			os.Args = []string{"dapnet", "-c", path, "stats"}

			cfg := LoadConfig()

			assert.Equal(t, tt.want, cfg.Timeout)
		})
	}
}
