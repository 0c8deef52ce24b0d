// Package session classifies sessions into root and child (sub-agent)
// sessions using the host's session-lookup capability.
package session

import (
	"context"

	"agentbell/internal/host"
	logx "agentbell/pkg/logx"
)

// IsSubagent reports whether sessionID belongs to a child session.
//
// The policy fails open: an empty id, a nil lookup, or a lookup error all
// report false (root). A transient lookup failure must never silently swallow
// a legitimate root-session notification.
func IsSubagent(ctx context.Context, lookup host.SessionLookup, sessionID string, log logx.Logger) bool {
	if sessionID == "" || lookup == nil {
		return false
	}
	s, err := lookup.Lookup(ctx, sessionID)
	if err != nil {
		log.Debug("session lookup failed; treating as root",
			logx.String("session_id", sessionID), logx.Err(err))
		return false
	}
	return s.ParentID != ""
}
