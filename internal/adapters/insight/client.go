// Package insight wraps the external text-insight generator: a black box
// that consumes a summarized view and returns natural-language commentary.
// The client validates shape only; failures are classified so callers can
// surface a distinct message per failure class without touching the rest of
// the computed metrics.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/praxislabs/compass/pkg/logger"
	"github.com/praxislabs/compass/pkg/metrics"
)

// Client defaults.
const (
	defaultTimeout     = 20 * time.Second
	maxResponseBytes   = 1 << 20
	requestIDHeader    = "X-Request-ID"
	authorizationLabel = "Bearer "
)

// Summary is the serializable per-view rollup sent to the generator.
type Summary struct {
	View         string             `json:"view"` // overview, sessions, impact, baseline
	Filter       string             `json:"filter,omitempty"`
	Phase        string             `json:"phase,omitempty"`
	RosterCount  int                `json:"roster_count"`
	Completed    int                `json:"completed_sessions"`
	NoShows      int                `json:"no_shows"`
	Utilization  int                `json:"utilization_pct"`
	Progress     int                `json:"progress_pct"`
	NPS          *int               `json:"nps,omitempty"`
	CSAT         *float64           `json:"csat,omitempty"`
	GrowthByComp map[string]float64 `json:"growth_by_competency,omitempty"`
	SampleQuotes []string           `json:"sample_quotes,omitempty"`
	ContextNotes string             `json:"context_notes,omitempty"`
	Baseline     *BaselineSummary   `json:"baseline,omitempty"`
}

// BaselineSummary aggregates the onboarding survey for the baseline view.
type BaselineSummary struct {
	Count         int            `json:"count"`
	AvgStress     float64        `json:"avg_stress"`
	AvgEnergy     float64        `json:"avg_energy"`
	AvgEngagement float64        `json:"avg_engagement"`
	FocusAreas    map[string]int `json:"focus_areas,omitempty"`
}

// Insight is the generator's well-formed response shape.
type Insight struct {
	Headline        string   `json:"headline"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithTimeout bounds each generation request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// Client posts view summaries to the generator endpoint.
type Client struct {
	endpoint string
	apiKey   string
	hc       *http.Client
	logger   logger.Logger
}

// New creates a Client. An empty endpoint is allowed; Generate then reports
// ErrBadConfig without issuing a request.
func New(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		hc:       &http.Client{Timeout: defaultTimeout},
		logger:   logger.Get().Named("insight"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate posts the summary and decodes the commentary. Errors wrap one of
// the package sentinels so callers can map failure classes to user-facing
// messages via errors.Is.
func (c *Client) Generate(ctx context.Context, s Summary) (*Insight, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: generator endpoint not configured", ErrBadConfig)
	}

	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encode summary: %w", ErrGenerate, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", authorizationLabel+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.RecordInsightFailure("network")
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		metrics.RecordInsightFailure(failureClass(err))
		c.logger.Warn(ctx, "insight generation failed",
			logger.String("view", s.View),
			logger.Int("status", resp.StatusCode),
		)
		return nil, err
	}

	var out Insight
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := dec.Decode(&out); err != nil {
		metrics.RecordInsightFailure("malformed")
		return nil, fmt.Errorf("%w: decode response: %w", ErrGenerate, err)
	}
	if strings.TrimSpace(out.Headline) == "" {
		metrics.RecordInsightFailure("malformed")
		return nil, fmt.Errorf("%w: response missing headline", ErrGenerate)
	}

	metrics.RecordInsightSuccess()
	return &out, nil
}

// classifyStatus maps HTTP status codes onto the failure taxonomy.
func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, code)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrBadConfig, code)
	case code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrModelUnavailable, code)
	default:
		return fmt.Errorf("%w: status %d", ErrGenerate, code)
	}
}
