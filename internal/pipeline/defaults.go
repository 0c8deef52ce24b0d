package pipeline

import "agentbell/internal/event"

// defaultContent is the built-in fallback title/message per kind, used when
// no template is configured or a configured template command fails.
func defaultContent(kind event.Kind, meta event.Metadata) (title, message string) {
	project := meta.Project
	if project == "" {
		project = "agent session"
	}
	switch kind {
	case event.SessionIdle:
		return "Agent waiting", project + " is idle and waiting for input"
	case event.SessionError:
		msg := meta.Error
		if msg == "" {
			msg = "the session hit an error"
		}
		return "Agent error", msg
	case event.Permission:
		msg := "permission requested"
		if meta.PermissionType != "" {
			msg = meta.PermissionType + " permission requested"
		}
		return "Permission needed", msg
	case event.SubagentComplete:
		return "Sub-agent finished", "a sub-agent in " + project + " completed"
	case event.Question:
		return "Agent question", "the agent in " + project + " asked a question"
	default:
		return "Agent notification", project
	}
}
