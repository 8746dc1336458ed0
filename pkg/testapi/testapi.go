// Package testapi is a client of the Leggera testing API, the backend endpoints that seed and
// tamper with test accounts: create users and mock pages, expire cookies and trials.
package testapi

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

	"golang.org/x/time/rate"
)

// ErrNoDeployURL is returned by New without a deployment to talk to.
var ErrNoDeployURL = errors.New("deploy url is required")

// Error is returned when the testing api answers with ok=false.
type Error struct {
	Endpoint string
	Response string // raw response body
}

func (e *Error) Error() string {
	return fmt.Sprintf("testing api %s failed, response: %s", e.Endpoint, e.Response)
}

// response is the envelope every testing endpoint answers with.
type response struct {
	OK   bool     `json:"ok"`
	Data []string `json:"data,omitempty"`
}

// Params configures the Client.
type Params struct {
	DeployURL   string        // deployment root, e.g. https://qa.leggera.dev
	BuildNumber string        // build path segment, empty means 0
	Timeout     time.Duration // per request, zero means 30s
	RPS         float64       // request rate limit, zero means unlimited
	HTTPClient  *http.Client  // optional, for tests
}

// Client calls the testing endpoints under <deploy_url>/<build_number>/lg2api/tests/.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a Client.
func New(p Params) (*Client, error) {
	if p.DeployURL == "" {
		return nil, ErrNoDeployURL
	}
	if _, err := url.Parse(p.DeployURL); err != nil {
		return nil, fmt.Errorf("parse deploy url: %w", err)
	}
	build := p.BuildNumber
	if build == "" {
		build = "0"
	}
	hc := p.HTTPClient
	if hc == nil {
		timeout := p.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.RPS), 1)
	}
	return &Client{
		base:    fmt.Sprintf("%s/%s/lg2api/tests", strings.TrimRight(p.DeployURL, "/"), build),
		http:    hc,
		limiter: limiter,
	}, nil
}

// CreateTestUsers creates n test users and returns their usernames.
func (c *Client) CreateTestUsers(ctx context.Context, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid number of users %d", n)
	}
	q := url.Values{"users": {strconv.Itoa(n)}, "echo": {"true"}}
	resp, err := c.call(ctx, "createTestUsers.php", q)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != n {
		return nil, fmt.Errorf("requested %d test users, got %d", n, len(resp.Data))
	}
	return resp.Data, nil
}

// CreateMockPages creates pages mock pages authored by user.
func (c *Client) CreateMockPages(ctx context.Context, user string, pages int) error {
	if pages < 1 {
		pages = 1
	}
	_, err := c.call(ctx, "createMockPage.php", url.Values{"user": {user}, "pages": {strconv.Itoa(pages)}})
	return err
}

// ExpireCookie expires the login cookie of user.
func (c *Client) ExpireCookie(ctx context.Context, user string) error {
	_, err := c.call(ctx, "expireCookie.php", url.Values{"user": {user}})
	return err
}

// ExpireTrial expires the trial of an anonymous user, identified by its generated id.
func (c *Client) ExpireTrial(ctx context.Context, user string) error {
	_, err := c.call(ctx, "expireTrial.php", url.Values{"user": {user}})
	return err
}

// URL returns the full url of endpoint with query q.
func (c *Client) URL(endpoint string, q url.Values) string {
	u := c.base + "/" + endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) call(ctx context.Context, endpoint string, q url.Values) (response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return response{}, fmt.Errorf("wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint, q), http.NoBody)
	if err != nil {
		return response{}, fmt.Errorf("make %s request: %w", endpoint, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return response{}, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	var res response
	if err := json.Unmarshal(body, &res); err != nil {
		return response{}, &Error{Endpoint: endpoint, Response: string(body)}
	}
	if !res.OK {
		return response{}, &Error{Endpoint: endpoint, Response: string(body)}
	}
	return res, nil
}
