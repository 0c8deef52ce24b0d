package template

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner records commands and returns canned results.
type fakeRunner struct {
	out  string
	err  error
	runs []string
}

func (r *fakeRunner) Run(_ context.Context, command string) (string, error) {
	r.runs = append(r.runs, command)
	return r.out, r.err
}

func TestRender(t *testing.T) {
	t.Parallel()
	vars := map[string]string{
		"event":               "session-idle",
		"project":             "myrepo",
		"permission_patterns": "a,b",
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "single placeholder", in: "done in {project}", want: "done in myrepo"},
		{name: "multiple placeholders", in: "{event}: {project}", want: "session-idle: myrepo"},
		{name: "joined array", in: "[{permission_patterns}]", want: "[a,b]"},
		{name: "unknown placeholder empty", in: "x{nope}y", want: "xy"},
		{name: "non-placeholder braces kept", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "empty template", in: "", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Render(tt.in, vars); got != tt.want {
				t.Fatalf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Pure: same input, same output.
			if got := Render(tt.in, vars); got != tt.want {
				t.Fatalf("Render(%q) not deterministic", tt.in)
			}
		})
	}
}

func TestExecCommandTrimsStdout(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{out: "  hello\n"}
	got, err := ExecCommand(context.Background(), r, "echo hello")
	if err != nil {
		t.Fatalf("ExecCommand error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestExecCommandPropagatesFailure(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{err: errors.New("command exited 1")}
	if _, err := ExecCommand(context.Background(), r, "exit 1"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ExecCommand(context.Background(), nil, "echo hi"); err == nil {
		t.Fatal("nil runner must error")
	}
}

func TestExecTemplateRendersBeforeRunning(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{out: "ok"}
	_, err := ExecTemplate(context.Background(), r, "notify-send {project}", map[string]string{"project": "myrepo"})
	if err != nil {
		t.Fatalf("ExecTemplate error: %v", err)
	}
	if len(r.runs) != 1 || r.runs[0] != "notify-send myrepo" {
		t.Fatalf("runs = %v", r.runs)
	}
}

func TestResolveFieldCascade(t *testing.T) {
	t.Parallel()

	t.Run("empty template skips execution", func(t *testing.T) {
		t.Parallel()
		r := &fakeRunner{out: "never"}
		if got := ResolveField(context.Background(), r, "", nil, "fallback"); got != "fallback" {
			t.Fatalf("got %q", got)
		}
		if len(r.runs) != 0 {
			t.Fatal("no execution may be attempted for an absent template")
		}
	})

	t.Run("command failure degrades to fallback", func(t *testing.T) {
		t.Parallel()
		r := &fakeRunner{err: errors.New("exit 1")}
		if got := ResolveField(context.Background(), r, "exit 1", nil, "fallback"); got != "fallback" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("whitespace-only output degrades to fallback", func(t *testing.T) {
		t.Parallel()
		r := &fakeRunner{out: "   \n\t"}
		if got := ResolveField(context.Background(), r, "echo", nil, "fallback"); got != "fallback" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("successful output wins", func(t *testing.T) {
		t.Parallel()
		r := &fakeRunner{out: " custom title \n"}
		if got := ResolveField(context.Background(), r, "echo {project}", map[string]string{"project": "p"}, "fallback"); got != "custom title" {
			t.Fatalf("got %q", got)
		}
		if !strings.Contains(r.runs[0], "p") {
			t.Fatalf("template not rendered before execution: %v", r.runs)
		}
	})
}
