package backend

import (
	"context"

	"agentbell/internal/event"
	logx "agentbell/pkg/logx"
)

// Log is the development backend: it writes the notification through the
// logger instead of delivering it anywhere.
type Log struct {
	log logx.Logger
}

func NewLog(log logx.Logger) *Log {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Log{log: log}
}

func (*Log) Name() string { return "log" }

func (s *Log) Send(_ context.Context, n *event.Context) error {
	s.log.Info("notification",
		logx.String("event", string(n.Kind)),
		logx.String("title", n.Title),
		logx.String("message", n.Message),
		logx.String("session_id", n.Meta.SessionID),
		logx.String("project", n.Meta.Project))
	return nil
}
