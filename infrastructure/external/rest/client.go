// Package rest implements the external service clients over HTTP/JSON.
// Status codes are folded into the external package sentinels: 404 becomes
// ErrNotFound, 400/422 ErrRejected, transport failures and 5xx
// ErrUnavailable.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ordersvc/domain/external"
	"ordersvc/pkg/logger"

	"go.uber.org/zap"
)

type httpClient struct {
	base    string
	client  *http.Client
	service string
}

func newHTTPClient(baseURL, service string, timeout time.Duration) httpClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return httpClient{
		base:    baseURL,
		client:  &http.Client{Timeout: timeout},
		service: service,
	}
}

// getJSON performs a GET and decodes the body into out.
func (c httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("%s service: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// postJSON performs a POST with a JSON body and decodes the response.
func (c httpClient) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s service: %w", c.service, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s service: %w", c.service, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c httpClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("External service call failed",
			zap.String("service", c.service),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%s service call failed: %w", c.service, external.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Warn("External service error response",
			zap.String("service", c.service),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return c.statusError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s service returned invalid response: %w", c.service, external.ErrUnavailable)
	}
	return nil
}

func (c httpClient) statusError(status int) error {
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%s service returned 404: %w", c.service, external.ErrNotFound)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s service rejected request with %d: %w", c.service, status, external.ErrRejected)
	default:
		return fmt.Errorf("%s service error: status=%d: %w", c.service, status, external.ErrUnavailable)
	}
}
