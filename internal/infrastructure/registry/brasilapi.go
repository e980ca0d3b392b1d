// Package registry talks to the public CNPJ registry.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config captures the registry endpoint and request timeout.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.CNPJRegistry against BrasilAPI-compatible
// endpoints: GET {BaseURL}/{cnpj} returning a JSON document.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch returns the registry document for cnpj. Transport failures, non-2xx
// answers and bodies that are not a JSON object all wrap
// domain.ErrRegistryUnavailable.
func (c *Client) Fetch(ctx context.Context, cnpj string) ([]byte, error) {
	start := time.Now()
	defer func() { metrics.CNPJRegistryDuration.Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+cnpj, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrRegistryUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRegistryUnavailable, resp.StatusCode)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: response is not a JSON object", domain.ErrRegistryUnavailable)
	}
	return body, nil
}
