// Tests for persona loading and front-matter extraction.
package persona

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const samplePersona = `---
name: Himmy
description: Test persona
greeting: "hey"
farewell: "later"
---
You are Himmy. Keep it short.
`

func writePersona(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write persona: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePersona(t, samplePersona)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.Name != "Himmy" {
		t.Fatalf("expected name Himmy, got %q", def.Name)
	}
	if def.Description != "Test persona" {
		t.Fatalf("unexpected description %q", def.Description)
	}
	if def.Greeting != "hey" || def.Farewell != "later" {
		t.Fatalf("unexpected greeting/farewell %q/%q", def.Greeting, def.Farewell)
	}
	if def.SystemPrompt != "You are Himmy. Keep it short." {
		t.Fatalf("unexpected system prompt %q", def.SystemPrompt)
	}
}

func TestLoadMissingFileIsErrNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.md")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing persona")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadMissingFrontMatter(t *testing.T) {
	path := writePersona(t, "You are Himmy with no header.\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing front matter")
	}
}

func TestLoadUnterminatedFrontMatter(t *testing.T) {
	path := writePersona(t, "---\nname: Himmy\nbody never starts\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unterminated front matter")
	}
}

func TestLoadMissingName(t *testing.T) {
	path := writePersona(t, "---\ndescription: nameless\n---\nBody here.\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestLoadEmptyBody(t *testing.T) {
	path := writePersona(t, "---\nname: Himmy\n---\n   \n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty persona body")
	}
}

func TestLoadShippedPersona(t *testing.T) {
	def, err := Load(filepath.Join("..", "..", "personas", "himmy.md"))
	if err != nil {
		t.Fatalf("Load shipped persona: %v", err)
	}
	if def.Name != "Himmy" {
		t.Fatalf("expected shipped persona name Himmy, got %q", def.Name)
	}
	if def.SystemPrompt == "" {
		t.Fatal("shipped persona has empty system prompt")
	}
}
