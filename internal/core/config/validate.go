package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration beyond
// the structural checks in Validate: URL syntax, credential pattern syntax,
// and config file accessibility. configPath may be empty to skip the file
// check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateServer(),
		c.validateCredentials(),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Motion.ScrollSettle >= c.Motion.ScrollDuration && !c.Motion.Reduced {
		warnings = append(warnings, ValidationWarning{
			Category: "Motion",
			Item:     "scroll_settle",
			Message:  "settle wait is not shorter than the scroll duration; the reveal will no longer overlap the scroll tail",
		})
	}

	for i, cred := range c.Credentials {
		if cred.Token == "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Credentials",
				Item:     fmt.Sprintf("rule %d", i),
				Message:  "credential rule has an empty token",
			})
		}
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateServer() error {
	return criterio.ValidateStruct(
		criterio.Run("server.base_url", c.Server.BaseURL, isAbsoluteURL),
	)
}

func (c *Config) validateCredentials() error {
	var errs criterio.FieldErrorsBuilder
	for i, cred := range c.Credentials {
		field := fmt.Sprintf("credentials[%d].pattern", i)
		if cred.Pattern == "" {
			errs = errs.Append(field, fmt.Errorf("pattern cannot be empty"))
			continue
		}
		if !doublestar.ValidatePattern(cred.Pattern) {
			errs = errs.Append(field, fmt.Errorf("invalid glob pattern %q", cred.Pattern))
		}
	}
	return errs.ToError()
}

func (c *Config) validateKeybindings() error {
	known := map[string]bool{
		ActionNewComment:   true,
		ActionReply:        true,
		ActionReplyToReply: true,
		ActionEdit:         true,
		ActionDelete:       true,
		ActionStar:         true,
	}

	var errs criterio.FieldErrorsBuilder
	for key, kb := range c.Keybindings {
		if !known[kb.Action] {
			errs = errs.Append(fmt.Sprintf("keybindings.%s", key), fmt.Errorf("unknown action %q", kb.Action))
		}
	}
	return errs.ToError()
}

func isAbsoluteURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}
