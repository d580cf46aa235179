// Package ai implements the generative capability behind the suggestion
// engine: model name resolution, an OpenAI-compatible HTTP client and a
// mock client for tests.
package ai

import (
	"os"
	"strings"
)

// DefaultModel is used when neither flag, config nor environment name a
// model.
const DefaultModel = "llama3.2"

// EnvModel names the environment variable that overrides the default
// model.
const EnvModel = "COMMITGEN_MODEL"

// disabledSentinels are model names that turn the generative path off.
var disabledSentinels = map[string]bool{
	"none": true, "off": true, "disabled": true,
}

// ResolveModel picks the model name, most explicit value first: the
// per-call flag, then the configured value, then COMMITGEN_MODEL, then
// DefaultModel. The boolean is false when the winning name is a disable
// sentinel ("none", "off", "disabled", case-insensitive).
func ResolveModel(flagValue, configValue string) (string, bool) {
	for _, candidate := range []string{flagValue, configValue, os.Getenv(EnvModel)} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if disabledSentinels[strings.ToLower(candidate)] {
			return "", false
		}
		return candidate, true
	}
	return DefaultModel, true
}
