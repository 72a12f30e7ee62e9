// Package inmet downloads yearly historical archives from the INMET portal.
package inmet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Client fetches yearly station archives over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an archive download client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ArchiveURL returns the portal URL for one year's archive.
func (c *Client) ArchiveURL(year int) string {
	return fmt.Sprintf("%s/%d.zip", c.baseURL, year)
}

// FetchYear downloads the archive for year into dir and returns the local
// path. An existing file is reused unless overwrite is set. The download
// goes through a temp file so a partial transfer never masquerades as a
// complete archive.
func (c *Client) FetchYear(ctx context.Context, year int, dir string, overwrite bool) (string, error) {
	dest := filepath.Join(dir, fmt.Sprintf("%d.zip", year))

	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			c.logger.Info("reusing cached archive", "path", dest)
			return dest, nil
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	u := c.ArchiveURL(year)
	c.logger.Info("downloading archive", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("portal error: status %d: %s", resp.StatusCode, body)
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".%d-*.zip", year))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write archive: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("finalize archive: %w", err)
	}

	c.logger.Info("archive downloaded", "path", dest, "bytes", written)
	return dest, nil
}
