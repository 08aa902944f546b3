// Package client implements the HTTP surface of an Anubis server that the
// discussion view talks to: the JSON detail fetch, the raw markdown
// endpoints, and the operation POSTs the mutation flow submits.
package client

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

	"github.com/rs/zerolog/log"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
)

// ErrNotFound is returned when the server reports a missing document.
var ErrNotFound = errors.New("document not found")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.Code)
}

// Client talks to one Anubis server.
type Client struct {
	base  *url.URL
	http  *http.Client
	token string
}

// New creates a client for the given base URL. token is the csrf/session
// token attached to mutations; it may be empty for read-only use.
func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL %q is not absolute", baseURL)
	}

	return &Client{
		base:  base,
		http:  &http.Client{Timeout: timeout},
		token: token,
	}, nil
}

// Host returns the server host the client is bound to.
func (c *Client) Host() string { return c.base.Host }

// PageURL returns the discussion detail page address. Mutations are posted
// to this same address, exactly as the browser client does.
func (c *Client) PageURL(did string) string {
	return c.base.JoinPath("discuss", did).String()
}

// Discussion fetches one discussion with a page of its replies.
func (c *Client) Discussion(ctx context.Context, did string, page int) (*discussion.Discussion, error) {
	addr := c.PageURL(did)
	if page > 1 {
		addr += "?page=" + strconv.Itoa(page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch discussion %s: %w", did, err)
	}

	var doc discussion.Discussion
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode discussion %s: %w", did, err)
	}
	if doc.ID == "" {
		doc.ID = did
	}
	if doc.Page == 0 {
		doc.Page = page
	}
	// Older servers omit page_count; a full page of replies means at
	// least one more page follows.
	if doc.Pages == 0 {
		doc.Pages = doc.Page
		if len(doc.Replies) >= discussion.RepliesPerPage {
			doc.Pages++
		}
	}
	return &doc, nil
}

// Raw fetches the raw markdown source of a document from the address the
// displayed content node carries. The server serves these as text/markdown.
func (c *Client) Raw(ctx context.Context, rawURL string) (string, error) {
	addr, err := c.resolve(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch raw source: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("fetch raw source: %w", err)
	}
	return string(body), nil
}

// Submit posts a form descriptor to the discussion page address. The
// response body is not inspected beyond the status code: the caller
// reconciles by re-fetching regardless of outcome.
func (c *Client) Submit(ctx context.Context, did string, form discussion.FormDescriptor) error {
	values := form.Values()
	if c.token != "" && values.Get("csrf_token") == "" {
		values.Set("csrf_token", c.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.PageURL(did),
		strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("submit %s: %w", form.Operation(), err)
	}
	return nil
}

// SetStar stars or unstars a discussion.
func (c *Client) SetStar(ctx context.Context, did string, star bool) error {
	op := discussion.OpStar
	if !star {
		op = discussion.OpUnstar
	}
	return c.Submit(ctx, did, discussion.FormDescriptor{"operation": op, "did": did})
}

// resolve turns a possibly relative document address into an absolute URL on
// the client's server. Absolute addresses pointing elsewhere are rejected.
func (c *Client) resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse address %q: %w", raw, err)
	}
	resolved := c.base.ResolveReference(u)
	if resolved.Host != c.base.Host {
		return "", fmt.Errorf("address %q leaves server %s", raw, c.base.Host)
	}
	return resolved.String(), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Str("url", req.URL.String()).Msg("close response body")
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
