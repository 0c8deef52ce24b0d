// Package host models the capabilities the agent host provides to the
// pipeline: session lookup, shell command execution, and the raw event feed.
// The contract with the host is the JSON schema of these values, not shared
// Go types.
package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Session is the subset of the host's session record the pipeline needs.
type Session struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
}

// SessionLookup resolves a session id against the host.
type SessionLookup interface {
	Lookup(ctx context.Context, sessionID string) (Session, error)
}

// LookupFunc adapts a plain function to SessionLookup.
type LookupFunc func(ctx context.Context, sessionID string) (Session, error)

func (f LookupFunc) Lookup(ctx context.Context, sessionID string) (Session, error) {
	return f(ctx, sessionID)
}

// Runner executes a shell command and returns its stdout. Implementations
// must return a non-nil error when the command exits non-zero.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// ShellRunner runs commands through the system shell. The zero value uses
// "sh".
type ShellRunner struct {
	Shell string
}

func (r ShellRunner) Run(ctx context.Context, command string) (string, error) {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var xe *exec.ExitError
		if errors.As(err, &xe) {
			return "", fmt.Errorf("command exited %d: %s", xe.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return "", err
	}
	return stdout.String(), nil
}

// RawEvent is one hook invocation from the host, before classification.
// Payload keys vary by event name; use the Field helpers for permissive
// extraction.
type RawEvent struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// DecodeRawEvent reads one raw event from r (the hook's stdin).
func DecodeRawEvent(r io.Reader) (RawEvent, error) {
	var ev RawEvent
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ev); err != nil {
		return RawEvent{}, fmt.Errorf("decode host event: %w", err)
	}
	if ev.Name == "" {
		return RawEvent{}, errors.New("decode host event: missing name")
	}
	return ev, nil
}

// StringField extracts a string payload field. A missing or non-string value
// reports ok=false; it is never an error.
func (e RawEvent) StringField(key string) (string, bool) {
	v, ok := e.Payload[key].(string)
	return v, ok
}

// StringSliceField extracts a []string payload field. The field is all
// strings or nothing: any mixed-type element makes the whole field absent.
func (e RawEvent) StringSliceField(key string) ([]string, bool) {
	raw, ok := e.Payload[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		s, ok := it.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
