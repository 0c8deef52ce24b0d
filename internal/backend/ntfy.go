package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"agentbell/internal/event"
	logx "agentbell/pkg/logx"
)

// Ntfy publishes to an ntfy topic: plain-text body, title and priority via
// headers.
//
// Options: topic (required), server (default https://ntfy.sh), token
// (optional), priority (1..5, default 3), rate_per_sec (default 3).
type Ntfy struct {
	server   string
	topic    string
	token    string
	priority int
	client   *http.Client
	limiter  *rate.Limiter
	log      logx.Logger
}

func NewNtfy(raw map[string]any, log logx.Logger) (*Ntfy, error) {
	topic := strOpt(raw, "topic", "")
	if topic == "" {
		return nil, errors.New("backend: ntfy requires a topic")
	}
	prio := intOpt(raw, "priority", 3)
	if prio < 1 || prio > 5 {
		prio = 3
	}
	rps := intOpt(raw, "rate_per_sec", 3)
	if rps <= 0 {
		rps = 3
	}
	return &Ntfy{
		server:   strings.TrimRight(strOpt(raw, "server", "https://ntfy.sh"), "/"),
		topic:    topic,
		token:    strOpt(raw, "token", ""),
		priority: prio,
		client:   &http.Client{Timeout: 10 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(rps), rps),
		log:      log,
	}, nil
}

func (*Ntfy) Name() string { return "ntfy" }

func (s *Ntfy) Send(ctx context.Context, n *event.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	url := s.server + "/" + s.topic
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(n.Message))
	if err != nil {
		return err
	}
	req.Header.Set("Title", n.Title)
	req.Header.Set("Priority", strconv.Itoa(s.priority))
	if n.Kind == event.SessionError {
		req.Header.Set("Tags", "warning")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ntfy: unexpected status %d", resp.StatusCode)
	}
	s.log.Debug("ntfy delivered", logx.String("event", string(n.Kind)), logx.String("topic", s.topic))
	return nil
}
