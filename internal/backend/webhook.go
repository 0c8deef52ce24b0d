package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"agentbell/internal/event"
	logx "agentbell/pkg/logx"
)

// Webhook POSTs the notification context as JSON to a configured URL.
//
// Options: url (required), token (optional bearer), rate_per_sec (default 3).
type Webhook struct {
	url     string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	log     logx.Logger
}

func NewWebhook(raw map[string]any, log logx.Logger) (*Webhook, error) {
	url := strOpt(raw, "url", "")
	if url == "" {
		return nil, errors.New("backend: webhook requires a url")
	}
	// Token bucket: burst = rate per sec, so short spikes don't block too hard.
	rps := intOpt(raw, "rate_per_sec", 3)
	if rps <= 0 {
		rps = 3
	}
	return &Webhook{
		url:     url,
		token:   strOpt(raw, "token", ""),
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}, nil
}

func (*Webhook) Name() string { return "webhook" }

func (s *Webhook) Send(ctx context.Context, n *event.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}
	s.log.Debug("webhook delivered", logx.String("event", string(n.Kind)))
	return nil
}
