package pve

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostfission/dnset/pkg/log"
)

const (
	// apiPrefix is the JSON flavor of the Proxmox REST API
	apiPrefix = "/api2/json"

	// DefaultTimeout bounds a single API call
	DefaultTimeout = 30 * time.Second
)

// Config holds everything needed to talk to one Proxmox cluster
type Config struct {
	// Endpoint is the API base URL, e.g. https://pve1:8006
	Endpoint string

	// TokenID is the API token identifier, e.g. root@pam!dnset
	TokenID string

	// TokenSecret is the token's secret value
	TokenSecret string

	// InsecureSkipVerify disables TLS verification. Proxmox ships
	// with a self-signed certificate, so most standalone clusters
	// need this.
	InsecureSkipVerify bool

	// Timeout bounds each HTTP request
	Timeout time.Duration
}

// Client is a thin gateway over the Proxmox REST API. Read results are
// normalized through Value; write failures are returned to the caller
// for logging, never escalated.
type Client struct {
	base   string
	auth   string
	http   *http.Client
	logger zerolog.Logger
}

// NewClient validates the configuration and builds a client
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.TokenID == "" || cfg.TokenSecret == "" {
		return nil, fmt.Errorf("API token ID and secret are required")
	}

	base, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be http or https", cfg.Endpoint)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		base: strings.TrimSuffix(base.String(), "/"),
		auth: fmt.Sprintf("PVEAPIToken=%s=%s", cfg.TokenID, cfg.TokenSecret),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: log.WithComponent("pve"),
	}, nil
}

// Get reads a resource. The {"data": ...} envelope is unwrapped and
// the payload returned as a Value. Transport failures, non-2xx status
// codes, and bodies that do not decode as JSON all normalize to a nil
// Value with the underlying reason in the error; callers treat that as
// "resource absent" and at most log the reason.
func (c *Client) Get(ctx context.Context, path string) (Value, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Value{}, err
	}

	var envelope struct {
		Data any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Value{}, fmt.Errorf("malformed response for %s: %w", path, err)
	}

	return Value{raw: envelope.Data}, nil
}

// CreateMember adds one address to an ipset, recording the originating
// domain in the member comment
func (c *Client) CreateMember(ctx context.Context, setPath, cidr, comment string) error {
	form := url.Values{}
	form.Set("cidr", cidr)
	form.Set("comment", comment)

	if _, err := c.do(ctx, http.MethodPost, setPath, form); err != nil {
		return fmt.Errorf("create member %s in %s: %w", cidr, setPath, err)
	}
	return nil
}

// DeleteMember removes one address from an ipset
func (c *Client) DeleteMember(ctx context.Context, setPath, cidr string) error {
	path := setPath + "/" + url.PathEscape(cidr)
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete member %s from %s: %w", cidr, setPath, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+apiPrefix+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.auth)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("api call")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	return body, nil
}
