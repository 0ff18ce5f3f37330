// Package persona loads the static persona definition that drives the bot's voice.
package persona

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound reports a missing or unreadable persona resource.
var ErrNotFound = errors.New("persona resource not found")

// Definition is an immutable persona loaded at startup. SystemPrompt is
// treated as opaque, pre-validated text.
type Definition struct {
	Name         string
	Description  string
	Greeting     string
	Farewell     string
	SystemPrompt string
}

// frontMatter mirrors the YAML header of a persona file.
type frontMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Greeting    string `yaml:"greeting"`
	Farewell    string `yaml:"farewell"`
}

// Load reads a persona file (YAML front matter + markdown body) from path.
// A missing or unreadable file fails with an error matching ErrNotFound.
func Load(path string) (Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}

	fm, body, err := splitFrontMatter(content)
	if err != nil {
		return Definition{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(fm.Name) == "" {
		return Definition{}, fmt.Errorf("parse %s: missing front matter name", path)
	}
	if strings.TrimSpace(body) == "" {
		return Definition{}, fmt.Errorf("parse %s: empty persona body", path)
	}

	return Definition{
		Name:         strings.TrimSpace(fm.Name),
		Description:  strings.TrimSpace(fm.Description),
		Greeting:     strings.TrimSpace(fm.Greeting),
		Farewell:     strings.TrimSpace(fm.Farewell),
		SystemPrompt: strings.TrimSpace(body),
	}, nil
}

// splitFrontMatter separates the YAML header from the markdown body.
func splitFrontMatter(content []byte) (frontMatter, string, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 3 || strings.TrimSpace(lines[0]) != "---" {
		return frontMatter{}, "", fmt.Errorf("missing YAML front matter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return frontMatter{}, "", fmt.Errorf("unterminated YAML front matter")
	}

	fmText := strings.Join(lines[1:end], "\n")
	var fm frontMatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return frontMatter{}, "", err
	}
	body := strings.Join(lines[end+1:], "\n")
	return fm, body, nil
}
