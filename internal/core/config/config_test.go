package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 400*time.Millisecond, cfg.Motion.ScrollDuration)
	assert.Equal(t, 0.62, cfg.Motion.RevealPoint)
	assert.Equal(t, ActionReply, cfg.Keybindings["r"].Action)
}

func TestLoad_FileOverridesAndMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  base_url: https://anubis.example.com
motion:
  scroll_duration: 100ms
  scroll_settle: 50ms
  expand_duration: 80ms
  fade_duration: 40ms
  settle_delay: 40ms
  edge_proximity: 3
  reveal_point: 0.5
credentials:
  - pattern: "*.example.com"
    token: secret
keybindings:
  "r":
    action: edit
    help: edit instead
  "x":
    action: delete
    help: delete
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://anubis.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 100*time.Millisecond, cfg.Motion.ScrollDuration)
	assert.Equal(t, 3, cfg.Motion.EdgeProximity)

	// User keybindings override defaults for the same key and add new ones;
	// untouched defaults survive.
	assert.Equal(t, ActionEdit, cfg.Keybindings["r"].Action)
	assert.Equal(t, ActionDelete, cfg.Keybindings["x"].Action)
	assert.Equal(t, ActionNewComment, cfg.Keybindings["c"].Action)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestTokenFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Credentials = []Credential{
		{Pattern: "judge.example.com", Token: "exact"},
		{Pattern: "*.example.com", Token: "wild"},
	}

	assert.Equal(t, "exact", cfg.TokenFor("judge.example.com"))
	assert.Equal(t, "wild", cfg.TokenFor("other.example.com"))
	assert.Empty(t, cfg.TokenFor("elsewhere.org"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "negative duration",
			mutate:  func(c *Config) { c.Motion.FadeDuration = -time.Second },
			wantErr: "fade_duration",
		},
		{
			name:    "reveal point out of range",
			mutate:  func(c *Config) { c.Motion.RevealPoint = 1.5 },
			wantErr: "reveal_point",
		},
		{
			name:    "keybinding without action",
			mutate:  func(c *Config) { c.Keybindings["z"] = Keybinding{} },
			wantErr: "keybinding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
