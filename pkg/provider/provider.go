// Package provider implements the generation backends the bot can talk to.
package provider

import (
	"fmt"
	"io"

	"github.com/cberlack/himmybot/pkg/chat"
	"github.com/cberlack/himmybot/pkg/config"
)

// New builds the completer selected by cfg.Provider. The returned completer
// treats the backend as a black box that yields text or an error.
func New(cfg config.Config, streamWriter io.Writer) (chat.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return newOpenAI(cfg, streamWriter)
	case config.ProviderAnthropic:
		return newAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q (expected %q or %q)",
			cfg.Provider, config.ProviderOpenAI, config.ProviderAnthropic)
	}
}
