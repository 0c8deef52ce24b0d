// Package event defines the canonical notification events the pipeline
// recognizes, as distinct from the open-ended raw event vocabulary of the
// agent host.
package event

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind is one of the closed set of notification-worthy occurrences.
type Kind string

const (
	SessionIdle      Kind = "session-idle"
	SessionError     Kind = "session-error"
	Permission       Kind = "permission-requested"
	SubagentComplete Kind = "subagent-complete"
	Question         Kind = "question-asked"
)

// Kinds returns every canonical kind, in stable order.
func Kinds() []Kind {
	return []Kind{SessionIdle, SessionError, Permission, SubagentComplete, Question}
}

// Metadata is attached to every notification occurrence. It is created fresh
// per occurrence and never mutated after construction.
type Metadata struct {
	// SessionID may be empty when the host did not provide one.
	SessionID string `json:"session_id,omitempty"`
	// Project is the basename of the session's working directory.
	Project string `json:"project,omitempty"`
	// Timestamp is ISO-8601, assigned at classification time.
	Timestamp string `json:"timestamp"`

	// Event-specific optional fields.
	Error              string   `json:"error,omitempty"`
	PermissionType     string   `json:"permission_type,omitempty"`
	PermissionPatterns []string `json:"permission_patterns,omitempty"`
}

// Context is the value handed to a notification sink: constructed once,
// delivered, then discarded.
type Context struct {
	Kind    Kind     `json:"event"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Meta    Metadata `json:"meta"`
}

// NewMetadata stamps a fresh metadata record for one occurrence.
func NewMetadata(sessionID, workdir string, now time.Time) Metadata {
	return Metadata{
		SessionID: sessionID,
		Project:   projectName(workdir),
		Timestamp: now.Format(time.RFC3339),
	}
}

func projectName(workdir string) string {
	base := filepath.Base(strings.TrimSpace(workdir))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// TemplateVars builds the canonical variable set used by template rendering.
// Array fields join with ",". Every variable is always present so rendering
// stays total.
func TemplateVars(k Kind, m Metadata) map[string]string {
	return map[string]string{
		"event":               string(k),
		"time":                m.Timestamp,
		"project":             m.Project,
		"session_id":          m.SessionID,
		"error":               m.Error,
		"permission_type":     m.PermissionType,
		"permission_patterns": strings.Join(m.PermissionPatterns, ","),
	}
}
