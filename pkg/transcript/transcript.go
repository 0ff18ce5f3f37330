// Package transcript persists conversation turns between runs as JSON.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cberlack/himmybot/pkg/chat"
)

// Load reads saved turns from path. A missing file yields (nil, nil) so a
// fresh transcript path is not an error.
func Load(path string) ([]chat.Message, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var msgs []chat.Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	for i, m := range msgs {
		if !m.Role.Valid() {
			return nil, fmt.Errorf("transcript %s: invalid role %q at entry %d", path, m.Role, i)
		}
	}
	return msgs, nil
}

// Save writes the conversation to path, replacing any previous transcript.
func Save(path string, msgs []chat.Message) error {
	b, err := json.MarshalIndent(msgs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
