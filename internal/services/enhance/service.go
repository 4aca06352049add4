package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"autistnet/internal/domain"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"
	// DefaultBaseURL is the public Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	maxResponseSize = 1 << 20
)

// Config selects the Gemini endpoint and credential.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

// Service is a domain.TextEnhancer backed by Gemini generateContent.
type Service struct {
	cfg    Config
	logger *slog.Logger
}

// New returns an enhancement service. An empty APIKey disables it.
func New(cfg Config, logger *slog.Logger) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTP == nil {
		cfg.HTTP = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Enabled reports whether a credential is configured.
func (s *Service) Enabled() bool { return strings.TrimSpace(s.cfg.APIKey) != "" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Enhance rewrites raw with the prompt for variant. It returns enabled=false
// and no error when the service has no credential.
func (s *Service) Enhance(ctx context.Context, variant domain.EnhanceVariant, raw string) (string, bool, error) {
	if !s.Enabled() {
		return "", false, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", true, domain.Validationf("nothing to enhance")
	}
	prompt, err := Prompt(variant, raw)
	if err != nil {
		return "", true, err
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("Enhancement failed", slog.String("variant", string(variant)), slog.String("error", err.Error()))
		return "", true, domain.NewServiceError("gemini", err)
	}
	return text, true, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.cfg.BaseURL, s.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.APIKey)

	s.logger.Debug("Sending enhancement request", slog.String("model", s.cfg.Model))
	resp, err := s.cfg.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	var b strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

var _ domain.TextEnhancer = (*Service)(nil)

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
