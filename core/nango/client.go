package nango

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxRetries caps the per-request retry budget regardless of what a caller
// asks for.
const MaxRetries = 10

// Client defines the operations our backend needs from the platform.
type Client interface {
	// ListRecords fetches one page of synced records.
	ListRecords(ctx context.Context, params ListRecordsParams) (*RecordsPage, error)
	// Proxy performs an authenticated passthrough call to a provider API.
	Proxy(ctx context.Context, req ProxyRequest) (*ProxyResponse, error)
	// DeleteConnection revokes a connection on the platform.
	DeleteConnection(ctx context.Context, providerConfigKey, connectionID string) error
	// TriggerAction runs a platform-hosted action and returns its output.
	TriggerAction(ctx context.Context, providerConfigKey, connectionID, action string, input any) (json.RawMessage, error)
	// VerifyWebhookSignature checks an inbound webhook payload.
	VerifyWebhookSignature(signature string, payload []byte) bool
}

// Proxier is the subset of Client the paginator and walkers depend on.
type Proxier interface {
	Proxy(ctx context.Context, req ProxyRequest) (*ProxyResponse, error)
}

type httpClient struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a platform client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) (Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("nango: secret key is required")
	}
	if cfg.Host == "" {
		cfg.Host = "https://api.nango.dev"
	}
	cfg.Host = strings.TrimSuffix(cfg.Host, "/")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &httpClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}, nil
}

func (c *httpClient) ListRecords(ctx context.Context, params ListRecordsParams) (*RecordsPage, error) {
	q := url.Values{}
	q.Set("model", params.Model)
	if params.ModifiedAfter != "" {
		q.Set("modified_after", params.ModifiedAfter)
	}
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = c.cfg.FetchLimit
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	headers := map[string]string{
		"Connection-Id":       params.ConnectionID,
		"Provider-Config-Key": params.ProviderConfigKey,
	}

	body, _, err := c.do(ctx, http.MethodGet, c.cfg.Host+"/records?"+q.Encode(), headers, nil, c.cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("list records for model %s: %w", params.Model, err)
	}

	var page RecordsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode records page: %w", err)
	}
	return &page, nil
}

func (c *httpClient) Proxy(ctx context.Context, req ProxyRequest) (*ProxyResponse, error) {
	endpoint := req.Endpoint
	// Link-style pagination hands back absolute next links (e.g. the Graph
	// API's @odata.nextLink); only the path and query go through the proxy.
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		if u, err := url.Parse(endpoint); err == nil {
			endpoint = u.Path
			if u.RawQuery != "" {
				endpoint += "?" + u.RawQuery
			}
		}
	}
	endpoint = strings.TrimPrefix(endpoint, "/")
	target := c.cfg.Host + "/proxy/" + endpoint
	if len(req.Params) > 0 {
		q := url.Values{}
		for k, v := range req.Params {
			q.Set(k, v)
		}
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target = target + sep + q.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	retries := req.Retries
	if retries <= 0 {
		retries = c.cfg.Retries
	}

	headers := map[string]string{
		"Connection-Id":       req.ConnectionID,
		"Provider-Config-Key": req.ProviderConfigKey,
	}

	body, resp, err := c.do(ctx, method, target, headers, nil, retries)
	if err != nil {
		return nil, fmt.Errorf("proxy %s: %w", req.Endpoint, err)
	}

	return &ProxyResponse{Status: resp.StatusCode, Data: body, Header: resp.Header}, nil
}

func (c *httpClient) DeleteConnection(ctx context.Context, providerConfigKey, connectionID string) error {
	q := url.Values{}
	q.Set("provider_config_key", providerConfigKey)
	target := c.cfg.Host + "/connection/" + url.PathEscape(connectionID) + "?" + q.Encode()

	if _, _, err := c.do(ctx, http.MethodDelete, target, nil, nil, c.cfg.Retries); err != nil {
		return fmt.Errorf("delete connection %s: %w", connectionID, err)
	}
	return nil
}

func (c *httpClient) TriggerAction(ctx context.Context, providerConfigKey, connectionID, action string, input any) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]any{
		"action_name": action,
		"input":       input,
	})
	if err != nil {
		return nil, fmt.Errorf("encode action input: %w", err)
	}

	headers := map[string]string{
		"Connection-Id":       connectionID,
		"Provider-Config-Key": providerConfigKey,
		"Content-Type":        "application/json",
	}

	body, _, err := c.do(ctx, http.MethodPost, c.cfg.Host+"/action/trigger", headers, payload, c.cfg.Retries)
	if err != nil {
		return nil, fmt.Errorf("trigger action %s: %w", action, err)
	}
	return json.RawMessage(body), nil
}

// do executes a request with a bounded retry loop. Transport errors and 5xx
// responses are retried; 4xx responses fail immediately since retrying them
// cannot succeed. The last error is returned once the budget is exhausted.
func (c *httpClient) do(ctx context.Context, method, target string, headers map[string]string, body []byte, retries int) ([]byte, *http.Response, error) {
	if retries <= 0 {
		retries = 1
	}
	if retries > MaxRetries {
		retries = MaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if attempt > 1 {
			// Linear backoff between attempts; the platform handles
			// provider-side rate limits itself.
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * 250 * time.Millisecond):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
		for k, v := range headers {
			if v != "" {
				req.Header.Set(k, v)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, truncate(data, 200))
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(data, 200))
		}

		return data, resp, nil
	}

	return nil, nil, fmt.Errorf("exhausted %d attempts: %w", retries, lastErr)
}

func truncate(data []byte, n int) string {
	if len(data) > n {
		return string(data[:n]) + "..."
	}
	return string(data)
}
