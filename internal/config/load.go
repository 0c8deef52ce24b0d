package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound marks a missing config file. Load still returns the full
// default configuration alongside it, so callers for whom a missing file is
// not fatal can use the value and ignore the error.
var ErrNotFound = errors.New("config file not found")

// ParseError marks text that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("config: invalid JSON: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError marks valid JSON whose top-level value is not an object.
type ShapeError struct {
	Got string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("config: top-level value must be an object, got %s", e.Got)
}

// Load reads and parses the config file at path. A missing file yields the
// defaults plus ErrNotFound; any other read failure, and the Parse error
// taxonomy, are fatal.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b, filepath.Dir(path))
}

// Parse decodes raw JSON text into a merged configuration. Secret
// substitution ({env:NAME}, {file:path}, with file paths resolved against
// baseDir) runs on every string leaf before any field is validated. Parse is
// idempotent on Serialize output.
func Parse(raw []byte, baseDir string) (*Config, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	doc = substituteValue(doc, baseDir)
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ShapeError{Got: jsonTypeName(doc)}
	}
	return merge(obj), nil
}

// Path resolves the config file location for a backend key. An empty key
// uses the default file. The base directory honors $XDG_CONFIG_HOME and
// falls back to ~/.config.
func Path(backendKey string) string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	name := "config"
	if backendKey != "" {
		name = backendKey
	}
	return filepath.Join(base, "agentbell", name+".json")
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
