package event

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		kind Kind
		ok   bool
	}{
		{raw: "session.idle", kind: SessionIdle, ok: true},
		{raw: "stop", kind: SessionIdle, ok: true},
		{raw: "session.error", kind: SessionError, ok: true},
		{raw: "permission.request", kind: Permission, ok: true},
		{raw: "subagent.complete", kind: SubagentComplete, ok: true},
		{raw: "question.asked", kind: Question, ok: true},
		{raw: "tool.before", ok: false},
		{raw: "", ok: false},
		{raw: "session-idle", ok: false}, // canonical names are not raw names
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			kind, ok := Classify(tt.raw)
			if ok != tt.ok || kind != tt.kind {
				t.Fatalf("Classify(%q) = %q, %v; want %q, %v", tt.raw, kind, ok, tt.kind, tt.ok)
			}
		})
	}
}

func TestNewMetadata(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	m := NewMetadata("sess-1", "/home/dev/projects/myrepo", now)
	if m.SessionID != "sess-1" {
		t.Fatalf("SessionID = %q", m.SessionID)
	}
	if m.Project != "myrepo" {
		t.Fatalf("Project = %q", m.Project)
	}
	if m.Timestamp != "2026-03-14T09:26:53Z" {
		t.Fatalf("Timestamp = %q", m.Timestamp)
	}

	if m := NewMetadata("", "", now); m.Project != "" {
		t.Fatalf("empty workdir should give empty project, got %q", m.Project)
	}
}

func TestTemplateVarsAlwaysComplete(t *testing.T) {
	t.Parallel()
	vars := TemplateVars(Permission, Metadata{
		SessionID:          "s",
		PermissionType:     "bash",
		PermissionPatterns: []string{"a", "b"},
	})
	for _, key := range []string{"event", "time", "project", "session_id", "error", "permission_type", "permission_patterns"} {
		if _, ok := vars[key]; !ok {
			t.Fatalf("variable %q missing", key)
		}
	}
	if vars["permission_patterns"] != "a,b" {
		t.Fatalf("patterns = %q", vars["permission_patterns"])
	}
	if vars["error"] != "" {
		t.Fatalf("unset field must be empty, got %q", vars["error"])
	}
}
