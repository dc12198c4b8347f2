package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Download saves the body of a GET request to path, creating parent
// directories. The file is removed again when the transfer fails or the
// status is not 2xx; in the latter case the response is still returned.
func (c *Client) Download(ctx context.Context, rawURL, path string, opts ...RequestOption) (*Response, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(req)
	}
	req.SetOutput(path)

	resp, err := req.Get(rawURL)
	out, ferr := c.finish(http.MethodGet, rawURL, resp, err)
	if ferr != nil {
		os.Remove(path)
		return nil, fmt.Errorf("download failed: %w", ferr)
	}

	if !out.Successful() {
		os.Remove(path)
		c.logger.Warn("download rejected",
			zap.String("url", rawURL),
			zap.Int("status", out.Status()))
	}
	return out, nil
}
