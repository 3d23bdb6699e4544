// Package workapi implements the mail and calendar providers for the Work API,
// a JSON:API service reached over bearer-token HTTP.
package workapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/provider"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
	defaultMaxElapsed      = 20 * time.Second
	defaultMaxTries        = 3

	// maxErrorBody caps how much of an error response is kept in APIError.
	maxErrorBody = 4 << 10
)

// APIError is returned for any non-2xx response from the Work API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("work api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("work api returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed if retried.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to the Work API. It implements provider.MailProvider and
// provider.CalendarProvider.
type Client struct {
	baseURL         *url.URL
	http            *http.Client
	logger          *zap.Logger
	initialInterval time.Duration
	maxElapsed      time.Duration
	maxTries        uint

	authenticated bool
}

var (
	_ provider.MailProvider     = (*Client)(nil)
	_ provider.CalendarProvider = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request retries.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRetry overrides the retry schedule.
func WithRetry(initialInterval, maxElapsed time.Duration, maxTries uint) Option {
	return func(c *Client) {
		c.initialInterval = initialInterval
		c.maxElapsed = maxElapsed
		c.maxTries = maxTries
	}
}

// New creates a Client for baseURL that authorizes requests with tokens from
// ts. A zero timeout uses the default of 30s.
func New(baseURL string, ts oauth2.TokenSource, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: ts,
				Base:   otelhttp.NewTransport(http.DefaultTransport),
			},
		},
		logger:          zap.NewNop(),
		initialInterval: defaultInitialInterval,
		maxElapsed:      defaultMaxElapsed,
		maxTries:        defaultMaxTries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewWithToken is a convenience for a static bearer token.
func NewWithToken(baseURL, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	return New(baseURL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), timeout, opts...)
}

// Authenticate verifies the bearer token against the profile endpoint.
func (c *Client) Authenticate(ctx context.Context) error {
	var profile struct {
		Data resource `json:"data"`
	}
	if err := c.get(ctx, "/me", nil, &profile); err != nil {
		return fmt.Errorf("failed to authenticate with work api: %w", err)
	}
	c.authenticated = true
	return nil
}

// IsAuthenticated returns true once Authenticate has succeeded.
func (c *Client) IsAuthenticated() bool {
	return c.authenticated
}

// ListMessages returns a page of emails and the cursor for the next page.
func (c *Client) ListMessages(ctx context.Context, opts provider.ListOptions) ([]domain.Email, string, error) {
	q := url.Values{}
	if opts.MaxResults > 0 {
		q.Set("page[size]", strconv.Itoa(opts.MaxResults))
	}
	if opts.PageToken != "" {
		q.Set("page[cursor]", opts.PageToken)
	}
	if len(opts.LabelIDs) > 0 {
		q.Set("filter[label]", strings.Join(opts.LabelIDs, ","))
	}
	if opts.Query != "" {
		q.Set("filter[q]", opts.Query)
	}

	var doc collectionDocument
	if err := c.get(ctx, "/emails", q, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to list emails: %w", err)
	}

	emails := make([]domain.Email, 0, len(doc.Data))
	for i := range doc.Data {
		e, err := decodeEmail(&doc.Data[i])
		if err != nil {
			return nil, "", err
		}
		emails = append(emails, *e)
	}

	next, err := nextCursor(doc.Links.Next)
	if err != nil {
		return nil, "", err
	}
	return emails, next, nil
}

// GetMessage returns a single email by ID.
func (c *Client) GetMessage(ctx context.Context, id string) (*domain.Email, error) {
	var doc singleDocument
	if err := c.get(ctx, "/emails/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, fmt.Errorf("failed to get email %s: %w", id, err)
	}
	return decodeEmail(&doc.Data)
}

// ListAttendees returns the attendees of a calendar event.
func (c *Client) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	var attendees []domain.Attendee
	if err := c.get(ctx, "/events/"+url.PathEscape(eventID)+"/attendees", nil, &attendees); err != nil {
		return nil, fmt.Errorf("failed to list attendees for event %s: %w", eventID, err)
	}
	return attendees, nil
}

// get issues a GET with retries and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()
	target := u.String()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	exp.MaxInterval = defaultMaxInterval
	exp.Reset()

	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		body, err := c.do(ctx, target)
		if err == nil {
			return body, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return nil, backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		c.logger.Debug("work api request failed, retrying",
			zap.String("url", target),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return nil, err
	}

	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(c.maxElapsed),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", mediaType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
