package host

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// APILookup resolves sessions against the host's local HTTP API.
type APILookup struct {
	BaseURL string
	Client  *http.Client
}

func NewAPILookup(baseURL string) *APILookup {
	return &APILookup{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *APILookup) Lookup(ctx context.Context, sessionID string) (Session, error) {
	u := fmt.Sprintf("%s/sessions/%s", a.BaseURL, url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Session{}, err
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("session lookup: unexpected status %d", resp.StatusCode)
	}
	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Session{}, fmt.Errorf("session lookup: %w", err)
	}
	return s, nil
}
