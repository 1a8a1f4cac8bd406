// Package api is the HTTP client for the remote reporting service. Failures
// are returned verbatim: the engine performs no retries, and callers surface
// errors to the user.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/dayhive/dayhive/internal/models"
)

// Error is a service-level failure reported inside a well-formed response
// envelope.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Status is the envelope every service response carries.
type Status struct {
	Status    int    `json:"status"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type envelope struct {
	Status Status `json:"status"`
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
	log     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource enables bearer-token authentication.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger attaches a logger for request debugging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("fetch auth token: %w", err)
		}
		tok.SetAuthHeader(req)
	}

	c.log.Debug().Str("path", path).Msg("api request")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	dec := json.NewDecoder(resp.Body)
	raw := json.RawMessage{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if env.Status.Status != http.StatusOK {
		c.log.Debug().Int("status", env.Status.Status).Str("path", path).Msg("api error response")
		return &Error{StatusCode: env.Status.Status, Message: env.Status.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// FetchProjects returns the projects assigned to the identity.
func (c *Client) FetchProjects(ctx context.Context, identity string) ([]models.Project, error) {
	var out struct {
		Projects []models.Project `json:"projects"`
	}
	req := map[string]string{"identity": identity}
	if err := c.post(ctx, "/getUserProjects", req, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// CompareReports fetches per-day reported-vs-agreement rows for a date range.
func (c *Client) CompareReports(ctx context.Context, fromDate, toDate, identity string) ([]models.CompareReport, error) {
	var out struct {
		Reports []models.CompareReport `json:"reports"`
	}
	req := map[string]string{"fromDate": fromDate, "toDate": toDate, "identity": identity}
	if err := c.post(ctx, "/getCompareReports", req, &out); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// DailyReports fetches individual reported lines for a date range.
func (c *Client) DailyReports(ctx context.Context, fromDate, toDate, identity string) ([]models.DailyReport, error) {
	var out struct {
		Reports []models.DailyReport `json:"reports"`
	}
	req := map[string]string{"fromDate": fromDate, "toDate": toDate, "identity": identity}
	if err := c.post(ctx, "/getDailyReports", req, &out); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// SendReport submits a batch of report lines and returns the service's
// line-by-line verdict.
func (c *Client) SendReport(ctx context.Context, payload models.SubmissionPayload) (*models.SendResult, error) {
	var out models.SendResult
	if err := c.post(ctx, "/sendReport", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveCredentials registers the reporting-service credentials for the
// identity behind the current auth token.
func (c *Client) SaveCredentials(ctx context.Context, employeeCode, employeePass string) error {
	req := map[string]string{"employeeCode": employeeCode, "employeePass": employeePass}
	return c.post(ctx, "/saveUserCredentials", req, nil)
}
