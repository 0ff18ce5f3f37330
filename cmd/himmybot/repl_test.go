package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cberlack/himmybot/pkg/chat"
	"github.com/cberlack/himmybot/pkg/command"
	"github.com/cberlack/himmybot/pkg/persona"
	"github.com/cberlack/himmybot/pkg/transcript"
)

var testPersona = persona.Definition{
	Name:         "Himmy",
	Greeting:     "HimmyBot terminal chat (type 'exit' to quit).",
	Farewell:     "Later! Stay vibey.",
	SystemPrompt: "You are Himmy.",
}

// scriptedCompleter returns canned replies or a fixed error and counts calls.
type scriptedCompleter struct {
	replies []string
	errs    []error
	calls   int
}

func (f *scriptedCompleter) Complete(_ context.Context, _ []chat.Message) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("script exhausted")
}

func runScript(t *testing.T, completer *scriptedCompleter, opts replOptions, input string) (*chat.Session, string) {
	t.Helper()
	session := chat.NewSession(testPersona, completer)
	opts.Persona = testPersona
	if opts.Commands == nil {
		opts.Commands = command.New()
	}
	var out strings.Builder
	if err := runREPL(context.Background(), session, opts, strings.NewReader(input), &out); err != nil {
		t.Fatalf("runREPL: %v", err)
	}
	return session, out.String()
}

func TestREPLPrintsReplyAndRecordsTurn(t *testing.T) {
	completer := &scriptedCompleter{replies: []string{"sup, just got back from a hike"}}
	session, out := runScript(t, completer, replOptions{}, "hey\nexit\n")

	if !strings.Contains(out, "sup, just got back from a hike") {
		t.Fatalf("reply not printed:\n%s", out)
	}
	if session.History().Len() != 3 {
		t.Fatalf("expected 3 history entries, got %d", session.History().Len())
	}
	if completer.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", completer.calls)
	}
}

func TestREPLExitSentinelSkipsProvider(t *testing.T) {
	for _, sentinel := range []string{"exit", "quit", "EXIT", "/quit", "/exit"} {
		completer := &scriptedCompleter{}
		session, out := runScript(t, completer, replOptions{}, sentinel+"\n")
		if completer.calls != 0 {
			t.Fatalf("sentinel %q reached the provider", sentinel)
		}
		if session.History().Len() != 1 {
			t.Fatalf("sentinel %q changed history", sentinel)
		}
		if !strings.Contains(out, "Later! Stay vibey.") {
			t.Fatalf("farewell not printed for %q:\n%s", sentinel, out)
		}
	}
}

func TestREPLTerminatesOnEOF(t *testing.T) {
	completer := &scriptedCompleter{}
	_, out := runScript(t, completer, replOptions{}, "")
	if !strings.Contains(out, "Later! Stay vibey.") {
		t.Fatalf("farewell not printed on EOF:\n%s", out)
	}
}

func TestREPLRecoversFromServiceError(t *testing.T) {
	completer := &scriptedCompleter{
		errs:    []error{errors.New("dial tcp: connection refused"), nil},
		replies: []string{"", "back online"},
	}
	session, out := runScript(t, completer, replOptions{}, "hey\nhey again\nexit\n")

	if !strings.Contains(out, "Error:") || !strings.Contains(out, "connection refused") {
		t.Fatalf("service error not reported:\n%s", out)
	}
	if !strings.Contains(out, "back online") {
		t.Fatalf("loop did not continue after error:\n%s", out)
	}
	// The failed turn left no entries; only the successful one is recorded.
	if session.History().Len() != 3 {
		t.Fatalf("expected 3 history entries, got %d", session.History().Len())
	}
}

func TestREPLIgnoresEmptyLines(t *testing.T) {
	completer := &scriptedCompleter{}
	session, _ := runScript(t, completer, replOptions{}, "\n   \n\t\nexit\n")
	if completer.calls != 0 {
		t.Fatalf("empty lines reached the provider: %d calls", completer.calls)
	}
	if session.History().Len() != 1 {
		t.Fatalf("empty lines changed history: %d entries", session.History().Len())
	}
}

func TestREPLClearResetsHistory(t *testing.T) {
	completer := &scriptedCompleter{replies: []string{"yo", "hey again"}}
	session, out := runScript(t, completer, replOptions{}, "hi\n/clear\nhello\nexit\n")

	if !strings.Contains(out, "Conversation history cleared.") {
		t.Fatalf("clear confirmation missing:\n%s", out)
	}
	// system + one post-clear turn
	if session.History().Len() != 3 {
		t.Fatalf("expected 3 entries after clear, got %d", session.History().Len())
	}
}

func TestREPLPersonaCommandsStayLocal(t *testing.T) {
	completer := &scriptedCompleter{}
	session, out := runScript(t, completer, replOptions{}, "!rec edm\nexit\n")

	if completer.calls != 0 {
		t.Fatalf("persona command reached the provider")
	}
	if !strings.Contains(out, "Flume") {
		t.Fatalf("rec reply missing:\n%s", out)
	}
	if session.History().Len() != 1 {
		t.Fatalf("local command changed history: %d entries", session.History().Len())
	}
}

func TestREPLUnknownBuiltin(t *testing.T) {
	completer := &scriptedCompleter{}
	_, out := runScript(t, completer, replOptions{}, "/dance\nexit\n")
	if !strings.Contains(out, "Unknown command: /dance") {
		t.Fatalf("unknown builtin not reported:\n%s", out)
	}
	if completer.calls != 0 {
		t.Fatal("unknown builtin reached the provider")
	}
}

func TestREPLSavesTranscriptOnExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.json")
	completer := &scriptedCompleter{replies: []string{"yo"}}
	runScript(t, completer, replOptions{TranscriptPath: path}, "hey\nexit\n")

	msgs, err := transcript.Load(path)
	if err != nil {
		t.Fatalf("load saved transcript: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 saved turns, got %d", len(msgs))
	}
	if msgs[0].Role != chat.RoleUser || msgs[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected saved roles: %+v", msgs)
	}
}

func TestREPLSaveCommandWritesTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.json")
	completer := &scriptedCompleter{replies: []string{"yo"}}
	_, out := runScript(t, completer, replOptions{}, "hey\n/save "+path+"\nexit\n")

	if !strings.Contains(out, "Transcript saved to "+path) {
		t.Fatalf("save confirmation missing:\n%s", out)
	}
	msgs, err := transcript.Load(path)
	if err != nil {
		t.Fatalf("load saved transcript: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 saved turns, got %d", len(msgs))
	}
}
