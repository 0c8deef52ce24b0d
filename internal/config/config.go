package config

import (
	"encoding/json"

	"agentbell/internal/event"
	"agentbell/internal/ratelimit"
)

// Config is the merged, immutable configuration for one pipeline
// instantiation. It is built once by Parse/Load and never mutated afterwards.
type Config struct {
	// Enabled is the global switch. False drops every event before any other
	// check runs.
	Enabled bool

	// Events maps every canonical kind to its enabled flag. The merge
	// guarantees an entry for each known kind; kinds missing from user input
	// default to enabled.
	Events map[event.Kind]bool

	// SubagentMode controls how child-session events are handled:
	// "always" (never suppress), "never" (suppress), "separate" (reclassify
	// as subagent-complete).
	SubagentMode string

	// Cooldown is nil when rate limiting is disabled.
	Cooldown *Cooldown

	// Templates holds per-kind shell command templates for title/message.
	// An empty command string means "use the built-in default".
	Templates map[event.Kind]Template

	// Backend is the opaque backend sub-object, passed through verbatim.
	Backend map[string]any
}

// Cooldown is the parsed rate-limit setting.
type Cooldown struct {
	Duration ratelimit.Duration
	Edge     ratelimit.Edge
}

// Template holds the optional shell commands used to resolve notification
// content for one event kind.
type Template struct {
	TitleCmd   string
	MessageCmd string
}

// Subagent handling modes.
const (
	SubagentAlways   = "always"
	SubagentNever    = "never"
	SubagentSeparate = "separate"
)

// Default returns the configuration used when no file exists: everything
// enabled, no cooldown, no templates.
func Default() *Config {
	events := make(map[event.Kind]bool, len(event.Kinds()))
	for _, k := range event.Kinds() {
		events[k] = true
	}
	return &Config{
		Enabled:      true,
		Events:       events,
		SubagentMode: SubagentNever,
		Templates:    map[event.Kind]Template{},
		Backend:      map[string]any{},
	}
}

// merge overlays a decoded (and substituted) user document onto the defaults.
// Each field is validated independently; a wrong-typed field keeps its
// default. Unknown event kinds and unknown top-level keys are ignored.
func merge(doc map[string]any) *Config {
	cfg := Default()

	if v, ok := doc["enabled"].(bool); ok {
		cfg.Enabled = v
	}

	if events, ok := doc["events"].(map[string]any); ok {
		for _, k := range event.Kinds() {
			entry, ok := events[string(k)].(map[string]any)
			if !ok {
				continue
			}
			if v, ok := entry["enabled"].(bool); ok {
				cfg.Events[k] = v
			}
		}
	}

	if mode, ok := doc["subagents"].(string); ok {
		switch mode {
		case SubagentAlways, SubagentNever, SubagentSeparate:
			cfg.SubagentMode = mode
		}
	}

	if cd, ok := doc["cooldown"].(map[string]any); ok {
		cfg.Cooldown = mergeCooldown(cd)
	}

	if tmpls, ok := doc["templates"].(map[string]any); ok {
		for _, k := range event.Kinds() {
			entry, ok := tmpls[string(k)].(map[string]any)
			if !ok {
				continue
			}
			var t Template
			if v, ok := entry["titleCmd"].(string); ok {
				t.TitleCmd = v
			}
			if v, ok := entry["messageCmd"].(string); ok {
				t.MessageCmd = v
			}
			if t != (Template{}) {
				cfg.Templates[k] = t
			}
		}
	}

	if b, ok := doc["backend"].(map[string]any); ok {
		cfg.Backend = b
	}

	return cfg
}

func mergeCooldown(doc map[string]any) *Cooldown {
	raw, ok := doc["duration"].(string)
	if !ok {
		return nil
	}
	d, err := ratelimit.ParseISODuration(raw)
	if err != nil {
		return nil
	}
	cd := &Cooldown{Duration: d, Edge: ratelimit.EdgeLeading}
	if e, ok := doc["edge"].(string); ok && ratelimit.Edge(e) == ratelimit.EdgeTrailing {
		cd.Edge = ratelimit.EdgeTrailing
	}
	return cd
}

// Serialize renders the merged configuration back to canonical JSON. Parse is
// idempotent on this output.
func (c *Config) Serialize() ([]byte, error) {
	doc := map[string]any{
		"enabled":   c.Enabled,
		"subagents": c.SubagentMode,
		"backend":   c.Backend,
	}
	events := map[string]any{}
	for k, en := range c.Events {
		events[string(k)] = map[string]any{"enabled": en}
	}
	doc["events"] = events
	if c.Cooldown != nil {
		doc["cooldown"] = map[string]any{
			"duration": c.Cooldown.Duration.String(),
			"edge":     string(c.Cooldown.Edge),
		}
	}
	if len(c.Templates) > 0 {
		tmpls := map[string]any{}
		for k, t := range c.Templates {
			entry := map[string]any{}
			if t.TitleCmd != "" {
				entry["titleCmd"] = t.TitleCmd
			}
			if t.MessageCmd != "" {
				entry["messageCmd"] = t.MessageCmd
			}
			tmpls[string(k)] = entry
		}
		doc["templates"] = tmpls
	}
	return json.Marshal(doc)
}
