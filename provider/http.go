package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZaguanLabs/medlai"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxResponseBytes   = 1 << 20
)

// httpTransport posts JSON to a provider endpoint. Network errors and HTTP 429
// are retried with linear backoff; every other non-2xx status fails at once.
type httpTransport struct {
	name   string
	client *http.Client
	retry  medlai.RetryConfig
}

func newHTTPTransport(name string, client *http.Client, retry *medlai.RetryConfig) *httpTransport {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	cfg := medlai.DefaultRetryConfig()
	if retry != nil {
		cfg = *retry
	}
	return &httpTransport{name: name, client: client, retry: cfg}
}

// postJSON sends payload to url and decodes the 2xx response body into dst.
func (t *httpTransport) postJSON(ctx context.Context, url string, header http.Header, payload, dst any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &medlai.ProviderError{Provider: t.name, Message: "encode request", Cause: err}
	}

	_, err = medlai.WithRetry(ctx, t.retry, func() (struct{}, error) {
		return struct{}{}, t.do(ctx, url, header, body, dst)
	})
	return err
}

func (t *httpTransport) do(ctx context.Context, url string, header http.Header, body []byte, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &medlai.ProviderError{Provider: t.name, Message: "create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", medlai.UserAgent())
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return &medlai.ProviderError{
			Provider:  t.name,
			Message:   "request failed",
			Cause:     err,
			Retryable: ctx.Err() == nil,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &medlai.ProviderError{Provider: t.name, Message: "read body", Cause: err, Retryable: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &medlai.ProviderError{
			Provider:   t.name,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, snippet(data)),
			StatusCode: resp.StatusCode,
			Retryable:  resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return &medlai.ProviderError{Provider: t.name, Message: "decode response", StatusCode: resp.StatusCode, Cause: err}
	}
	return nil
}

func snippet(data []byte) string {
	const limit = 200
	s := string(bytes.TrimSpace(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
