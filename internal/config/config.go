package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ConfigFileName is the file inside .git holding the repository configuration.
const ConfigFileName = ".commitgen_config"

// Verbosity levels accepted by the "verbosity" key.
const (
	VerbosityConcise  = "concise"
	VerbosityBalanced = "balanced"
	VerbosityDetailed = "detailed"
)

var validate = validator.New()

// Config is the repository configuration. All fields are optional; nil means
// "not configured" and the consumer's default applies. Keys the current
// version doesn't understand are kept aside on Load and written back
// untouched on Save.
type Config struct {
	Model        *string  `json:"model,omitempty" validate:"omitempty,min=1"`
	MaxTokens    *int     `json:"maxTokens,omitempty" validate:"omitempty,gt=0"`
	Temperature  *float64 `json:"temperature,omitempty" validate:"omitempty,gt=0,lte=1"`
	Verbosity    *string  `json:"verbosity,omitempty" validate:"omitempty,oneof=concise balanced detailed"`
	IncludeBody  *bool    `json:"includeBody,omitempty"`
	CustomPrompt *string  `json:"customPrompt,omitempty"`

	unknown map[string]json.RawMessage
}

// knownKeys are the JSON keys owned by this version.
var knownKeys = map[string]bool{
	"model": true, "maxTokens": true, "temperature": true,
	"verbosity": true, "includeBody": true, "customPrompt": true,
}

// Keys lists the configuration keys in display order.
func Keys() []string {
	return []string{"model", "maxTokens", "temperature", "verbosity", "includeBody", "customPrompt"}
}

// ConfigPath returns the location of the config file under the repo root.
func ConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ConfigFileName)
}

// Load reads the repository configuration. A missing file is not an error
// and yields an all-defaults configuration.
func Load(repoRoot string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &Config{}, nil
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Keep unknown keys so Save can write them back
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		for key := range raw {
			if knownKeys[key] {
				delete(raw, key)
			}
		}
		if len(raw) > 0 {
			config.unknown = raw
		}
	}

	return &config, nil
}

// Save validates and writes the configuration, preserving unknown keys from
// the loaded file.
func (c *Config) Save(repoRoot string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	known, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	merged := make(map[string]json.RawMessage, len(c.unknown)+len(knownKeys))
	for key, value := range c.unknown {
		merged[key] = value
	}
	if err := json.Unmarshal(known, &merged); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	configJSON, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(ConfigPath(repoRoot), configJSON, 0600)
}

// Validate checks the configured values against their constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Set parses and assigns a value by key, then validates the result.
func (c *Config) Set(key, value string) error {
	switch key {
	case "model":
		c.Model = &value
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer, got %q", value)
		}
		c.MaxTokens = &n
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number, got %q", value)
		}
		c.Temperature = &f
	case "verbosity":
		c.Verbosity = &value
	case "includeBody":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("includeBody must be true or false, got %q", value)
		}
		c.IncludeBody = &b
	case "customPrompt":
		c.CustomPrompt = &value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	return c.Validate()
}

// Get renders the value for a key, or "" when the key is not configured.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "model":
		if c.Model != nil {
			return *c.Model, nil
		}
	case "maxTokens":
		if c.MaxTokens != nil {
			return strconv.Itoa(*c.MaxTokens), nil
		}
	case "temperature":
		if c.Temperature != nil {
			return strconv.FormatFloat(*c.Temperature, 'g', -1, 64), nil
		}
	case "verbosity":
		if c.Verbosity != nil {
			return *c.Verbosity, nil
		}
	case "includeBody":
		if c.IncludeBody != nil {
			return strconv.FormatBool(*c.IncludeBody), nil
		}
	case "customPrompt":
		if c.CustomPrompt != nil {
			return *c.CustomPrompt, nil
		}
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return "", nil
}

// GetModel returns the configured model, or "" when unset.
func (c *Config) GetModel() string {
	if c.Model != nil {
		return *c.Model
	}
	return ""
}

// GetMaxTokens returns the configured generation token cap, or 0 when unset.
func (c *Config) GetMaxTokens() int {
	if c.MaxTokens != nil {
		return *c.MaxTokens
	}
	return 0
}

// GetTemperature returns the configured sampling temperature, or 0 when unset.
func (c *Config) GetTemperature() float64 {
	if c.Temperature != nil {
		return *c.Temperature
	}
	return 0
}

// GetVerbosity returns the configured verbosity, or "balanced" by default.
func (c *Config) GetVerbosity() string {
	if c.Verbosity != nil {
		return *c.Verbosity
	}
	return VerbosityBalanced
}

// GetIncludeBody returns whether suggestions should carry a body, false by default.
func (c *Config) GetIncludeBody() bool {
	if c.IncludeBody != nil {
		return *c.IncludeBody
	}
	return false
}

// GetCustomPrompt returns the extra prompt instruction, or "" when unset.
func (c *Config) GetCustomPrompt() string {
	if c.CustomPrompt != nil {
		return *c.CustomPrompt
	}
	return ""
}
