package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

const maxDownloadBytes = 200 << 20

var pdfMagic = []byte("%PDF-")

// Client downloads published Bluebook PDFs into a library directory.
type Client struct {
	dir        string
	log        *slog.Logger
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
	maxBytes   int64
}

func NewClient(dir string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		dir: dir,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		backoff:  Backoff,
		maxBytes: maxDownloadBytes,
	}
}

// Download fetches rawURL and stores it as YYYY_MM.pdf, with the date taken
// from the URL's file name. It returns the stored file name. The file is
// written to a temporary name first so a failed download never replaces
// an existing edition.
func (c *Client) Download(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	year, month, err := YearMonth(path.Base(u.Path))
	if err != nil {
		return "", err
	}
	name := CanonicalName(year, month)

	var resp *http.Response
	for attempt := range MaxRetries {
		resp, err = c.get(ctx, rawURL)
		if err == nil || !IsRetryable(err) {
			break
		}
		c.log.Warn("retryable download error", "url", rawURL, "attempt", attempt, "error", err)
		select {
		case <-time.After(c.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create library dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, name+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	head := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(resp.Body, head)
	if err != nil || !bytes.Equal(head[:n], pdfMagic) {
		tmp.Close()
		return "", fmt.Errorf("download %s: response is not a PDF", rawURL)
	}
	body := io.MultiReader(bytes.NewReader(head), resp.Body)
	written, err := io.Copy(tmp, io.LimitReader(body, c.maxBytes+1))
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if written > c.maxBytes {
		tmp.Close()
		return "", fmt.Errorf("download %s: exceeds %d bytes", rawURL, c.maxBytes)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, name)); err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}

	c.log.Info("downloaded bluebook", "url", rawURL, "file", name, "bytes", written)
	return name, nil
}

// get issues one GET request. Rate limiting and server errors come back as
// RetryableError; the caller owns the body of a successful response.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	return nil, fmt.Errorf("download %s: status %d: %s", rawURL, resp.StatusCode, string(respBody))
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
