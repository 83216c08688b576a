// Package storefront is the catalog side of the store: a typed client for the
// gateway and the in-memory session a shopper browses and fills a cart with.
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/irsalhamdi/hotwheels-store/core/hotwheel"
)

var (
	// ErrUnreachable covers every failure to talk to the gateway at all,
	// request timeouts included.
	ErrUnreachable = errors.New("gateway unreachable")

	// ErrRequestFailed is a gateway answer other than success.
	ErrRequestFailed = errors.New("gateway request failed")
)

const DefaultFetchTimeout = 5 * time.Second

type Client struct {
	baseURL      *url.URL
	http         *http.Client
	fetchTimeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithFetchTimeout bounds each catalog request.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Client) { c.fetchTimeout = d }
}

// NewClient returns a client for the gateway at baseURL, e.g.
// "http://localhost:5000".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing gateway url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:      u,
		http:         &http.Client{},
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health calls the reachability check. It carries no timeout of its own.
func (c *Client) Health(ctx context.Context) (hotwheel.Health, error) {
	var h hotwheel.Health
	if err := c.get(ctx, "/api/test", nil, &h); err != nil {
		return hotwheel.Health{}, err
	}
	return h, nil
}

func (c *Client) List(ctx context.Context, q hotwheel.Query) ([]hotwheel.Hotwheel, error) {
	ctx, cancel := c.withFetchTimeout(ctx)
	defer cancel()

	var hws []hotwheel.Hotwheel
	if err := c.get(ctx, "/api/hotwheels", q.Values(), &hws); err != nil {
		return nil, err
	}
	return hws, nil
}

func (c *Client) Get(ctx context.Context, id string) (hotwheel.Hotwheel, error) {
	ctx, cancel := c.withFetchTimeout(ctx)
	defer cancel()

	var hw hotwheel.Hotwheel
	if err := c.get(ctx, "/api/hotwheels/"+url.PathEscape(id), nil, &hw); err != nil {
		return hotwheel.Hotwheel{}, err
	}
	return hw, nil
}

func (c *Client) withFetchTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.fetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.fetchTimeout)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("%w: GET %s: status %d: %s", ErrRequestFailed, path, resp.StatusCode, body.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: reading %s: %v", ErrUnreachable, path, err)
		}
		return fmt.Errorf("%w: decoding %s: %v", ErrRequestFailed, path, err)
	}
	return nil
}
