package untappd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"utscraper/pkg/errors"
	"utscraper/pkg/logger"
)

// Client retrieves image assets over plain HTTP. Gallery pages are not
// fetched through it; those need a rendering session.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates an asset client with the given timeout
func NewClient(timeout time.Duration, userAgent string, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "image/avif,image/webp,image/apng,*/*;q=0.8",
		},
		logger: log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// Download issues a streamed GET for the image at url. The caller owns the
// returned body and must close it. A non-2xx status is an error.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeDownload, err, "failed to create request")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.WithField("url", url).Debug("sending HTTP request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": time.Since(start),
		}).Error("HTTP request failed")
		return nil, errors.Wrap(errors.ErrorTypeDownload, err, "network error")
	}

	c.logger.WithFields(map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("HTTP request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &errors.Error{
			Type:    errors.ErrorTypeDownload,
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
			Code:    resp.StatusCode,
		}
	}

	return resp.Body, nil
}
