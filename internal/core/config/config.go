// Package config handles configuration loading and validation for
// anubis-discuss.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Built-in trigger action names for keybindings. These are the values the
// `action` field of a keybinding accepts.
const (
	ActionNewComment   = "new-comment"
	ActionReply        = "reply"
	ActionReplyToReply = "reply-to-reply"
	ActionEdit         = "edit"
	ActionDelete       = "delete"
	ActionStar         = "star"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"c": {Action: ActionNewComment, Help: "new comment"},
	"r": {Action: ActionReply, Help: "reply"},
	"t": {Action: ActionReplyToReply, Help: "reply to reply"},
	"e": {Action: ActionEdit, Help: "edit"},
	"d": {Action: ActionDelete, Help: "delete"},
	"s": {Action: ActionStar, Help: "star/unstar"},
}

// Config holds the application configuration.
type Config struct {
	Server      Server                `yaml:"server"`
	Motion      Motion                `yaml:"motion"`
	Credentials []Credential          `yaml:"credentials"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
}

// Server configures the Anubis server endpoint.
type Server struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Motion holds the editor reveal/dismiss timing contract. The values are
// configuration, not incidental constants: tests and reduced-motion setups
// substitute their own.
type Motion struct {
	ScrollDuration time.Duration `yaml:"scroll_duration"` // smooth-scroll to the reveal point
	ScrollSettle   time.Duration `yaml:"scroll_settle"`   // post-scroll wait, shorter than the scroll to mask latency
	ExpandDuration time.Duration `yaml:"expand_duration"` // height expand/collapse
	FadeDuration   time.Duration `yaml:"fade_duration"`   // opacity cross-fade
	SettleDelay    time.Duration `yaml:"settle_delay"`    // wait before clearing style overrides
	EdgeProximity  int           `yaml:"edge_proximity"`  // rows from a viewport edge that trigger the scroll step
	RevealPoint    float64       `yaml:"reveal_point"`    // fraction of the viewport the container scrolls to
	Reduced        bool          `yaml:"reduced"`         // run all transitions instantaneously
}

// Credential selects an auth token by server host. Pattern is a doublestar
// glob matched against the host, e.g. "*.example.com".
type Credential struct {
	Pattern string `yaml:"pattern"`
	Token   string `yaml:"token"`
}

// Keybinding maps a key to a trigger action in the thread view.
type Keybinding struct {
	Action string `yaml:"action"`
	Help   string `yaml:"help"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: Server{
			Timeout: 10 * time.Second,
		},
		Motion: Motion{
			ScrollDuration: 400 * time.Millisecond,
			ScrollSettle:   300 * time.Millisecond,
			ExpandDuration: 300 * time.Millisecond,
			FadeDuration:   200 * time.Millisecond,
			SettleDelay:    200 * time.Millisecond,
			EdgeProximity:  5,
			RevealPoint:    0.62,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path. If the path is empty or does
// not exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.Motion == (Motion{}) {
		c.Motion = defaults.Motion
	}
	if c.Motion.RevealPoint == 0 {
		c.Motion.RevealPoint = defaults.Motion.RevealPoint
	}
	if c.Motion.EdgeProximity == 0 {
		c.Motion.EdgeProximity = defaults.Motion.EdgeProximity
	}
}

// TokenFor returns the auth token for the first credential rule whose
// pattern matches the host, or "" when none matches.
func (c *Config) TokenFor(host string) string {
	for _, cred := range c.Credentials {
		ok, err := doublestar.Match(cred.Pattern, host)
		if err != nil {
			continue
		}
		if ok {
			return cred.Token
		}
	}
	return ""
}

// mergeKeybindings merges user keybindings into defaults. User keybindings
// override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}

	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"motion.scroll_duration", c.Motion.ScrollDuration},
		{"motion.scroll_settle", c.Motion.ScrollSettle},
		{"motion.expand_duration", c.Motion.ExpandDuration},
		{"motion.fade_duration", c.Motion.FadeDuration},
		{"motion.settle_delay", c.Motion.SettleDelay},
	} {
		if d.val < 0 {
			return fmt.Errorf("%s cannot be negative", d.name)
		}
	}

	if c.Motion.RevealPoint < 0 || c.Motion.RevealPoint > 1 {
		return fmt.Errorf("motion.reveal_point must be within [0, 1]")
	}

	for key, kb := range c.Keybindings {
		if kb.Action == "" {
			return fmt.Errorf("keybinding %q must have an action", key)
		}
	}

	return nil
}
