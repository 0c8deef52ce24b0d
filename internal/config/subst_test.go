package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSubstituteEnv(t *testing.T) {
	t.Setenv("AGENTBELL_TEST_TOKEN", "s3cret")
	cfg, err := Parse([]byte(`{"backend":{"token":"{env:AGENTBELL_TEST_TOKEN}","missing":"{env:AGENTBELL_TEST_UNSET}"}}`), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cfg.Backend["token"]; got != "s3cret" {
		t.Fatalf("token = %v", got)
	}
	if got := cfg.Backend["missing"]; got != "" {
		t.Fatalf("unset env var should substitute to empty, got %v", got)
	}
}

func TestSubstituteFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token.txt"), []byte("  tok-123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Relative to baseDir, trimmed.
	cfg, err := Parse([]byte(`{"backend":{"token":"{file:token.txt}"}}`), dir)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cfg.Backend["token"]; got != "tok-123" {
		t.Fatalf("token = %v", got)
	}

	// Absolute.
	abs := filepath.Join(dir, "token.txt")
	cfg, err = Parse([]byte(`{"backend":{"token":"{file:`+abs+`}"}}`), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cfg.Backend["token"]; got != "tok-123" {
		t.Fatalf("token = %v", got)
	}

	// Unreadable file substitutes to empty rather than failing the load.
	cfg, err = Parse([]byte(`{"backend":{"token":"{file:nope.txt}"}}`), dir)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cfg.Backend["token"]; got != "" {
		t.Fatalf("token = %v", got)
	}
}

func TestSubstituteMixedText(t *testing.T) {
	t.Setenv("AGENTBELL_TEST_HOST", "ntfy.example")
	cfg, err := Parse([]byte(`{"backend":{"server":"https://{env:AGENTBELL_TEST_HOST}/topics"}}`), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cfg.Backend["server"]; got != "https://ntfy.example/topics" {
		t.Fatalf("server = %v", got)
	}
}

func TestSubstituteRunsOnNestedLeaves(t *testing.T) {
	t.Setenv("AGENTBELL_TEST_NESTED", "deep")
	cfg, err := Parse([]byte(`{"backend":{"list":["{env:AGENTBELL_TEST_NESTED}"],"obj":{"v":"{env:AGENTBELL_TEST_NESTED}"}}}`), "")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	list, _ := cfg.Backend["list"].([]any)
	if len(list) != 1 || list[0] != "deep" {
		t.Fatalf("list = %v", list)
	}
	obj, _ := cfg.Backend["obj"].(map[string]any)
	if obj["v"] != "deep" {
		t.Fatalf("obj = %v", obj)
	}
}
