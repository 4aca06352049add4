package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"autistnet/internal/domain"
)

// Client posts moderation notices to a relay.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a Client for base. A nil hc means http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Endpoint returns the path a notice of kind is posted to.
func Endpoint(kind domain.ModerationKind) (string, error) {
	switch kind {
	case domain.ModerationReport:
		return "/reports", nil
	case domain.ModerationBlock:
		return "/blocks", nil
	case domain.ModerationVerification:
		return "/verifications", nil
	}
	return "", fmt.Errorf("unknown moderation kind %q", kind)
}

// Notify posts notice to the endpoint matching its kind.
func (c *Client) Notify(ctx context.Context, notice domain.ModerationNotice) error {
	path, err := Endpoint(notice.Kind)
	if err != nil {
		return err
	}
	if err := c.post(ctx, path, notice); err != nil {
		return domain.NewServiceError("relay", err)
	}
	return nil
}

// FetchReports returns up to limit of the most recent reports. limit <= 0
// returns all of them.
func (c *Client) FetchReports(ctx context.Context, limit int) ([]domain.ModerationNotice, error) {
	path := "/reports"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []domain.ModerationNotice
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, domain.NewServiceError("relay", err)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay post %s: %s", path, resp.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.ModerationNotifier = (*Client)(nil)
