package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cberlack/himmybot/pkg/config"
)

// parseCLIConfig loads env + flags into runtime config.
func parseCLIConfig() (config.Config, error) {
	_ = godotenv.Load()

	defaults := config.DefaultConfig()
	if p := strings.TrimSpace(os.Getenv("HIMMYBOT_PROVIDER")); p != "" {
		defaults.Provider = p
	}

	personaPath := flag.String("persona", defaults.PersonaPath, "Persona definition file")
	providerName := flag.String("provider", defaults.Provider, "Generation backend: openai or anthropic")
	model := flag.String("model", "", "Model name (defaults to OPENAI_MODEL or ANTHROPIC_MODEL)")
	transcriptPath := flag.String("transcript", "", "Load and save conversation history at this path")
	stream := flag.Bool("stream", false, "Stream assistant output")
	verbose := flag.Bool("verbose", false, "Verbose logging to stderr")
	flag.Parse()

	cfg := defaults
	cfg.PersonaPath = *personaPath
	cfg.Provider = *providerName
	cfg.Model = *model
	cfg.TranscriptPath = *transcriptPath
	cfg.Stream = *stream
	cfg.Verbose = *verbose
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")

	cfg = config.Normalize(cfg)
	if cfg.Model == "" {
		cfg.Model = strings.TrimSpace(os.Getenv(modelEnvVar(cfg.Provider)))
	}
	return cfg, nil
}

// modelEnvVar maps a provider name to its model env variable.
func modelEnvVar(providerName string) string {
	if providerName == config.ProviderAnthropic {
		return "ANTHROPIC_MODEL"
	}
	return "OPENAI_MODEL"
}
