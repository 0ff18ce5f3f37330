package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cberlack/himmybot/pkg/chat"
	"github.com/cberlack/himmybot/pkg/command"
	"github.com/cberlack/himmybot/pkg/logger"
	"github.com/cberlack/himmybot/pkg/persona"
	"github.com/cberlack/himmybot/pkg/transcript"
)

// replState tracks where the loop is between reading input and waiting on
// the generation backend.
type replState int

const (
	stateAwaitingInput replState = iota
	stateAwaitingResponse
	stateTerminated
)

// chatSession is the slice of chat.Session the REPL needs.
type chatSession interface {
	Send(ctx context.Context, input string) (string, error)
	History() *chat.History
	Reset()
}

// replOptions configures REPL behavior.
type replOptions struct {
	Persona        persona.Definition
	Commands       *command.Dispatcher
	TranscriptPath string
	Stream         bool
	Verbose        bool
	Logger         logger.Logger
}

// runREPL blocks on the read/complete/print loop until a sentinel input,
// EOF, or a read error terminates it.
func runREPL(ctx context.Context, session chatSession, opts replOptions, in io.Reader, out io.Writer) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if opts.Commands == nil {
		opts.Commands = command.New()
	}

	logger.Debug(opts.Verbose, opts.Logger, "repl start", map[string]any{
		"persona": opts.Persona.Name,
		"stream":  opts.Stream,
	})

	printWelcome(out, opts.Persona)
	scanner := bufio.NewScanner(in)

	state := stateAwaitingInput
	for state != stateTerminated {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			state = stateTerminated
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if isExitSentinel(input) {
			state = stateTerminated
			break
		}

		if strings.HasPrefix(input, "/") {
			handled, shouldQuit := handleBuiltin(input, session, opts, out)
			if shouldQuit {
				state = stateTerminated
				break
			}
			if handled {
				continue
			}
		}

		if reply, handled := opts.Commands.Handle(input); handled {
			_, _ = fmt.Fprintf(out, "%s\n\n", reply)
			continue
		}

		state = stateAwaitingResponse
		reply, err := session.Send(ctx, input)
		state = stateAwaitingInput
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			logger.Error(opts.Logger, "generation failed", map[string]any{"error": err.Error()})
			continue
		}

		if opts.Stream {
			// The provider already wrote the reply to out while streaming.
			_, _ = fmt.Fprintln(out)
		} else {
			_, _ = fmt.Fprintf(out, "%s\n\n", reply)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	printFarewell(out, opts.Persona)
	if opts.TranscriptPath != "" {
		if err := saveTranscript(opts.TranscriptPath, session); err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
	}
	return nil
}

// isExitSentinel reports whether input is a bare exit keyword. Empty lines
// are not sentinels; they re-prompt without state change.
func isExitSentinel(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

func handleBuiltin(input string, session chatSession, opts replOptions, out io.Writer) (bool, bool) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	switch cmd {
	case "/help", "/h":
		printHelp(out)
		return true, false
	case "/clear", "/c":
		session.Reset()
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
		return true, false
	case "/save":
		path := opts.TranscriptPath
		if len(fields) > 1 {
			path = fields[1]
		}
		if path == "" {
			_, _ = fmt.Fprintln(out, "No transcript path. Use /save <path> or start with -transcript.")
			_, _ = fmt.Fprintln(out)
			return true, false
		}
		if err := saveTranscript(path, session); err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			return true, false
		}
		_, _ = fmt.Fprintf(out, "Transcript saved to %s.\n\n", path)
		return true, false
	case "/quit", "/exit", "/q":
		return true, true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
		return true, false
	}
}

// saveTranscript persists every turn after the persona system entry.
func saveTranscript(path string, session chatSession) error {
	msgs := session.History().Messages()
	return transcript.Save(path, msgs[1:])
}

func printWelcome(out io.Writer, def persona.Definition) {
	greeting := def.Greeting
	if greeting == "" {
		greeting = fmt.Sprintf("%s terminal chat (type 'exit' to quit).", def.Name)
	}
	_, _ = fmt.Fprintln(out, greeting)
	_, _ = fmt.Fprintln(out, "Type /help for built-in commands.")
	_, _ = fmt.Fprintln(out)
}

func printFarewell(out io.Writer, def persona.Definition) {
	if def.Farewell != "" {
		_, _ = fmt.Fprintln(out, def.Farewell)
		return
	}
	_, _ = fmt.Fprintln(out, "Goodbye!")
}

func printHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  /help         - Show this help message")
	_, _ = fmt.Fprintln(out, "  /clear        - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /save <path>  - Save the conversation transcript")
	_, _ = fmt.Fprintln(out, "  /quit, /exit  - Exit the program")
	_, _ = fmt.Fprintln(out, "Persona commands: !photo, !rec <topic>, !roll NdM, !quiz")
	_, _ = fmt.Fprintln(out, "Bare 'exit' or 'quit' also ends the chat.")
	_, _ = fmt.Fprintln(out)
}
