// Package backend implements the delivery sinks a resolved notification can
// be handed to. Each backend decodes its own section of the opaque backend
// config object; wrong-typed fields fall back to defaults, matching the
// leniency of the config loader.
package backend

import (
	"fmt"
	"strconv"
	"strings"

	"agentbell/internal/pipeline"
	logx "agentbell/pkg/logx"
)

// New builds the sink named by the backend key. Unknown keys are an error:
// the caller picked the key, so a typo should surface instead of silently
// dropping notifications.
func New(name string, raw map[string]any, log logx.Logger) (pipeline.Sink, error) {
	switch name {
	case "", "log":
		return NewLog(log), nil
	case "webhook":
		return NewWebhook(raw, log)
	case "ntfy":
		return NewNtfy(raw, log)
	case "telegram":
		return NewTelegram(raw, log)
	default:
		return nil, fmt.Errorf("backend: unknown backend %q", name)
	}
}

// strOpt reads a string option leniently.
func strOpt(raw map[string]any, key, def string) string {
	if v, ok := raw[key].(string); ok && v != "" {
		return v
	}
	return def
}

// intOpt reads an integer option leniently. JSON numbers decode as float64.
func intOpt(raw map[string]any, key string, def int) int {
	if v, ok := raw[key].(float64); ok && v == float64(int(v)) {
		return int(v)
	}
	return def
}

// int64Opt additionally accepts a numeric string, since chat ids are often
// quoted in configs to avoid precision surprises.
func int64Opt(raw map[string]any, key string, def int64) int64 {
	switch v := raw[key].(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}
