// Package config loads and merges agentbell's per-backend JSON configuration.
//
// The merge policy is deliberately lenient: a field with the wrong JSON type
// silently falls back to its default instead of failing the whole file. Only
// two conditions are fatal to loading: text that is not valid JSON, and a
// top-level value that is not a JSON object. Secret substitution ({env:NAME},
// {file:path}) runs on every string leaf before any field is validated.
package config
