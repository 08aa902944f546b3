package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://anubis.example.com"
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Credentials = []Credential{
		{Pattern: "*.example.com", Token: "secret"},
	}

	err := cfg.ValidateDeep("")
	assert.NoError(t, err)
}

func TestValidateDeep_BadServerURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "relative", url: "/discuss"},
		{name: "wrong scheme", url: "ftp://host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.BaseURL = tt.url

			err := cfg.ValidateDeep("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "base_url")
		})
	}
}

func TestValidateDeep_BadCredentialPattern(t *testing.T) {
	cfg := validConfig()
	cfg.Credentials = []Credential{
		{Pattern: "[unclosed", Token: "x"},
	}

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern")
}

func TestValidateDeep_UnknownKeybindingAction(t *testing.T) {
	cfg := validConfig()
	cfg.Keybindings["z"] = Keybinding{Action: "teleport"}

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig()

	err := cfg.ValidateDeep(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, cfg.Warnings())

	cfg.Motion.ScrollSettle = cfg.Motion.ScrollDuration + time.Millisecond
	cfg.Credentials = []Credential{{Pattern: "*", Token: ""}}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Motion", warnings[0].Category)
	assert.Equal(t, "Credentials", warnings[1].Category)
}

func TestWarnings_ReducedMotionSilencesOverlap(t *testing.T) {
	cfg := validConfig()
	cfg.Motion.ScrollSettle = cfg.Motion.ScrollDuration
	cfg.Motion.Reduced = true

	assert.Empty(t, cfg.Warnings())
}
