package event

// Classify maps a raw host event name onto a canonical kind. The host's
// vocabulary evolves independently of this library, so anything unrecognized
// reports ok=false and the pipeline drops it without side effects.
func Classify(rawName string) (Kind, bool) {
	switch rawName {
	case "session.idle", "stop":
		return SessionIdle, true
	case "session.error":
		return SessionError, true
	case "permission.request":
		return Permission, true
	case "subagent.complete", "subagent.stop":
		return SubagentComplete, true
	case "question.asked":
		return Question, true
	default:
		return "", false
	}
}

// Suppressible reports whether a kind is subject to child-session
// suppression. Permission prompts and questions always reach the user; only
// idle/error style completions are suppressed for sub-agents.
func Suppressible(k Kind) bool {
	return k == SessionIdle || k == SessionError
}
