// Package pipeline turns one raw host event into at most one sink delivery,
// applying the enable checks, sub-agent suppression, rate limiting, and
// content resolution in order.
package pipeline

import (
	"context"
	"time"

	"agentbell/internal/config"
	"agentbell/internal/event"
	"agentbell/internal/eventbus"
	"agentbell/internal/host"
	"agentbell/internal/ratelimit"
	"agentbell/internal/session"
	"agentbell/internal/template"
	logx "agentbell/pkg/logx"
)

// Sink is the delivery capability a resolved notification is handed to.
// Send is invoked at most once per incoming event.
type Sink interface {
	Name() string
	Send(ctx context.Context, n *event.Context) error
}

// Outcome is the terminal state of one Handle call.
type Outcome string

const (
	OutcomeDelivered   Outcome = "delivered"
	OutcomeSendFailed  Outcome = "send-failed"
	OutcomeDisabled    Outcome = "dropped-disabled"
	OutcomeUnknown     Outcome = "dropped-unknown-event"
	OutcomeKindOff     Outcome = "dropped-kind-disabled"
	OutcomeSubagent    Outcome = "dropped-subagent"
	OutcomeRateLimited Outcome = "dropped-rate-limited"
)

// Deps are the host capabilities and ambient services threaded into a
// pipeline. Any of them may be left zero; the pipeline degrades gracefully.
type Deps struct {
	Lookup  host.SessionLookup
	Runner  host.Runner
	Workdir string
	Bus     eventbus.Bus
	Log     logx.Logger
	Clock   func() time.Time
}

// Pipeline is constructed once per process with an immutable config; the
// rate limiter it owns lives as long as the pipeline so per-key windows
// survive across events.
type Pipeline struct {
	cfg     *config.Config
	sink    Sink
	deps    Deps
	limiter *ratelimit.Limiter
}

func New(cfg *config.Config, sink Sink, deps Deps) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Log.IsZero() {
		deps.Log = logx.Nop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if sink == nil {
		sink = nopSink{}
	}
	p := &Pipeline{cfg: cfg, sink: sink, deps: deps}
	if cd := cfg.Cooldown; cd != nil {
		p.limiter = ratelimit.NewWithClock(cd.Duration.Std(), cd.Edge, deps.Clock)
	}
	return p
}

// Handle runs the decision state machine for one raw host event. It never
// returns an error: sink failures are caught here so a broken delivery
// backend cannot destabilize the host.
func (p *Pipeline) Handle(ctx context.Context, raw host.RawEvent) Outcome {
	if !p.cfg.Enabled {
		return p.drop(OutcomeDisabled, "", "")
	}

	kind, ok := event.Classify(raw.Name)
	if !ok {
		// Unrecognized host events consume nothing: no session lookup, no
		// rate-limit state.
		return p.drop(OutcomeUnknown, "", raw.Name)
	}

	// The per-kind switch runs before the subagent lookup on purpose: the
	// lookup is the expensive step and disabled kinds must not pay for it.
	if !p.cfg.Events[kind] {
		return p.drop(OutcomeKindOff, kind, "")
	}

	sessionID, _ := raw.StringField("session_id")
	if event.Suppressible(kind) && sessionID != "" && p.cfg.SubagentMode != config.SubagentAlways {
		if session.IsSubagent(ctx, p.deps.Lookup, sessionID, p.deps.Log) {
			if p.cfg.SubagentMode == config.SubagentSeparate {
				kind = event.SubagentComplete
				if !p.cfg.Events[kind] {
					return p.drop(OutcomeKindOff, kind, "")
				}
			} else {
				return p.drop(OutcomeSubagent, kind, sessionID)
			}
		}
	}

	if p.limiter != nil && !p.limiter.Allow(string(kind)) {
		return p.drop(OutcomeRateLimited, kind, sessionID)
	}

	meta := event.NewMetadata(sessionID, p.deps.Workdir, p.deps.Clock())
	if v, ok := raw.StringField("error"); ok {
		meta.Error = v
	}
	if v, ok := raw.StringField("permission_type"); ok {
		meta.PermissionType = v
	}
	if v, ok := raw.StringSliceField("permission_patterns"); ok {
		meta.PermissionPatterns = v
	}

	n := &event.Context{Kind: kind, Meta: meta}
	n.Title, n.Message = p.resolveContent(ctx, kind, meta)

	if err := p.sink.Send(ctx, n); err != nil {
		p.deps.Log.Warn("sink send failed",
			logx.String("sink", p.sink.Name()),
			logx.String("event", string(kind)),
			logx.Err(err))
		p.publish(eventbus.TypeDropped, kind, sessionID, err.Error())
		return OutcomeSendFailed
	}

	p.deps.Log.Debug("notification delivered",
		logx.String("sink", p.sink.Name()),
		logx.String("event", string(kind)))
	p.publish(eventbus.TypeDelivered, kind, sessionID, "")
	return OutcomeDelivered
}

func (p *Pipeline) resolveContent(ctx context.Context, kind event.Kind, meta event.Metadata) (title, message string) {
	vars := event.TemplateVars(kind, meta)
	defTitle, defMessage := defaultContent(kind, meta)
	t := p.cfg.Templates[kind]
	title = template.ResolveField(ctx, p.deps.Runner, t.TitleCmd, vars, defTitle)
	message = template.ResolveField(ctx, p.deps.Runner, t.MessageCmd, vars, defMessage)
	return title, message
}

func (p *Pipeline) drop(o Outcome, kind event.Kind, detail string) Outcome {
	p.deps.Log.Debug("event dropped",
		logx.String("outcome", string(o)),
		logx.String("event", string(kind)),
		logx.String("detail", detail))
	if o == OutcomeSubagent {
		p.publish(eventbus.TypeSuppressed, kind, detail, "")
	} else {
		p.publish(eventbus.TypeDropped, kind, "", string(o))
	}
	return o
}

// nopSink accepts and discards everything. It stands in when no backend is
// configured so Handle never has to nil-check the sink.
type nopSink struct{}

func (nopSink) Name() string                               { return "nop" }
func (nopSink) Send(context.Context, *event.Context) error { return nil }

// Decision is the bus payload for one terminal pipeline state.
type Decision struct {
	Kind      event.Kind `json:"event,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Detail    string     `json:"detail,omitempty"`
}

func (p *Pipeline) publish(typ string, kind event.Kind, sessionID, detail string) {
	if p.deps.Bus == nil {
		return
	}
	p.deps.Bus.Publish(eventbus.Event{
		Type: typ,
		Data: Decision{Kind: kind, SessionID: sessionID, Detail: detail},
	})
}
