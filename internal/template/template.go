// Package template resolves notification content: a pure placeholder
// renderer, a shell-command executor, and a non-throwing fallback cascade
// built on top of both.
package template

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"agentbell/internal/host"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Render substitutes every {name} placeholder with the corresponding value
// from vars. Names absent from vars resolve to the empty string; text outside
// placeholders is untouched. Render is total: same input, same output, never
// an error.
func Render(tmpl string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		return vars[m[1:len(m)-1]]
	})
}

// ExecCommand runs command through the supplied runner and returns trimmed
// stdout. It fails when the command exits non-zero or the runner itself
// errors.
func ExecCommand(ctx context.Context, run host.Runner, command string) (string, error) {
	if run == nil {
		return "", errors.New("no command runner available")
	}
	out, err := run.Run(ctx, command)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ExecTemplate renders tmpl against vars and executes the result, returning
// trimmed stdout. Failure modes are those of ExecCommand.
func ExecTemplate(ctx context.Context, run host.Runner, tmpl string, vars map[string]string) (string, error) {
	return ExecCommand(ctx, run, Render(tmpl, vars))
}

// ResolveField is the non-throwing cascade used for notification content.
// An empty tmpl returns fallback immediately with no execution attempt.
// Otherwise the template is rendered and executed; a failed command, or
// empty/whitespace-only output, degrades to fallback instead of propagating.
// A broken user-supplied command must not abort the notification.
func ResolveField(ctx context.Context, run host.Runner, tmpl string, vars map[string]string, fallback string) string {
	if strings.TrimSpace(tmpl) == "" {
		return fallback
	}
	out, err := ExecTemplate(ctx, run, tmpl, vars)
	if err != nil || out == "" {
		return fallback
	}
	return out
}
