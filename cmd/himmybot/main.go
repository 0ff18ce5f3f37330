// Package main provides the HimmyBot terminal chat binary.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cberlack/himmybot/pkg/chat"
	"github.com/cberlack/himmybot/pkg/command"
	"github.com/cberlack/himmybot/pkg/logger"
	"github.com/cberlack/himmybot/pkg/persona"
	"github.com/cberlack/himmybot/pkg/provider"
	"github.com/cberlack/himmybot/pkg/transcript"
)

// main is the program entry point.
func main() {
	cfg, err := parseCLIConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewWriterLogger(os.Stderr)

	def, err := persona.Load(cfg.PersonaPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug(cfg.Verbose, appLogger, "persona loaded", map[string]any{
		"name":  def.Name,
		"path":  cfg.PersonaPath,
		"bytes": len(def.SystemPrompt),
	})

	completer, err := provider.New(cfg, os.Stdout)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug(cfg.Verbose, appLogger, "provider ready", map[string]any{
		"provider": cfg.Provider,
		"model":    cfg.Model,
	})

	session := chat.NewSession(def, completer)
	if cfg.TranscriptPath != "" {
		saved, err := transcript.Load(cfg.TranscriptPath)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		session.History().Restore(saved)
		logger.Debug(cfg.Verbose, appLogger, "transcript restored", map[string]any{
			"path":  cfg.TranscriptPath,
			"turns": len(saved),
		})
	}

	opts := replOptions{
		Persona:        def,
		Commands:       command.New(),
		TranscriptPath: cfg.TranscriptPath,
		Stream:         cfg.Stream,
		Verbose:        cfg.Verbose,
		Logger:         appLogger,
	}
	if err := runREPL(context.Background(), session, opts, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
