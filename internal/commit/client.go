package commit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client posts commit records to the task sink over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a sink client for the given endpoint URL. A zero
// timeout falls back to ten seconds.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("sink endpoint must not be empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Send posts one record and interprets the sink's reply. A transport
// failure, a non-2xx status, or a reply whose status is not "success" all
// come back as errors; the sink's message is carried through when it sent
// one.
func (c *Client) Send(ctx context.Context, req Request) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode commit record: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sink request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach task sink: %w", err)
	}
	defer httpResp.Body.Close()

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("sink returned an unreadable reply (HTTP %d): %w", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 || resp.Status != "success" {
		if resp.Message != "" {
			return fmt.Errorf("sink rejected %s: %s", req.IsoBarcode, resp.Message)
		}
		return fmt.Errorf("sink rejected %s (HTTP %d)", req.IsoBarcode, httpResp.StatusCode)
	}
	return nil
}
