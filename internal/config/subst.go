package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Secret substitution syntax, applied to every string leaf of the decoded
// document before validation:
//
//	{env:NAME}  -> value of environment variable NAME, or "" if unset
//	{file:P}    -> trimmed contents of file P, or "" if unreadable
//
// File paths may be absolute, ~-relative, or relative to the config file's
// directory.
var substPattern = regexp.MustCompile(`\{(env|file):([^{}]+)\}`)

func substituteValue(v any, baseDir string) any {
	switch t := v.(type) {
	case string:
		return substituteString(t, baseDir)
	case map[string]any:
		for k, iv := range t {
			t[k] = substituteValue(iv, baseDir)
		}
		return t
	case []any:
		for i, iv := range t {
			t[i] = substituteValue(iv, baseDir)
		}
		return t
	default:
		return v
	}
}

func substituteString(s string, baseDir string) string {
	return substPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := substPattern.FindStringSubmatch(m)
		switch sub[1] {
		case "env":
			return os.Getenv(sub[2])
		default: // file
			return readSecretFile(sub[2], baseDir)
		}
	})
}

func readSecretFile(path, baseDir string) string {
	switch {
	case strings.HasPrefix(path, "~"):
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	case !filepath.IsAbs(path) && baseDir != "":
		path = filepath.Join(baseDir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
