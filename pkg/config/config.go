// Package config holds runtime configuration for the bot.
package config

import "strings"

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultPersonaPath is the persona file used when no flag is given.
const DefaultPersonaPath = "personas/himmy.md"

// Config holds all runtime configuration for the bot.
type Config struct {
	PersonaPath    string
	Provider       string
	Model          string
	TranscriptPath string
	Stream         bool
	Verbose        bool

	APIKey          string
	BaseURL         string
	AnthropicAPIKey string
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		PersonaPath: DefaultPersonaPath,
		Provider:    ProviderOpenAI,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.PersonaPath = strings.TrimSpace(cfg.PersonaPath)
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.TranscriptPath = strings.TrimSpace(cfg.TranscriptPath)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.AnthropicAPIKey = strings.TrimSpace(cfg.AnthropicAPIKey)

	if cfg.PersonaPath == "" {
		cfg.PersonaPath = DefaultPersonaPath
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	return cfg
}
