package helpcenter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestsPerSecond throttles proactively; the service rate-limits
	// per account and a sync run fires one request per node.
	requestsPerSecond = 2

	// perPage is the page size for list endpoints.
	perPage = 100
)

// Client is a thin JSON client for the help-center API. All requests
// carry basic auth and go through a shared rate limiter.
type Client struct {
	http    *http.Client
	baseURL string
	user    string
	token   string
	limiter *rate.Limiter
}

// NewClient creates a client for the given account subdomain.
func NewClient(subdomain, user, token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: fmt.Sprintf("https://%s.zendesk.com/api/v2/help_center", subdomain),
		user:    user,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// NewClientWithBaseURL creates a client against an explicit endpoint.
// Used by tests to point at a local server.
func NewClientWithBaseURL(baseURL, user, token string) *Client {
	c := NewClient("", user, token)
	c.baseURL = baseURL
	return c
}

// do performs one API request. path is relative to the API root unless
// it is already absolute (pagination links come back absolute). A
// non-nil body is sent as JSON; a non-nil out receives the decoded
// response. POST requests carry an idempotency key so a retried create
// cannot duplicate the node remotely.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	url := path
	if len(path) > 0 && path[0] == '/' {
		url = c.baseURL + path
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.user, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteOperation, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			domain.ErrRemoteOperation, method, path, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s %s: decode response: %v",
				domain.ErrRemoteOperation, method, path, err)
		}
	}
	return nil
}
