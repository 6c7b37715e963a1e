package changelog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultFetchTimeout is the default timeout for loading records over HTTP.
const DefaultFetchTimeout = 5 * time.Second

// maxRecordsSize caps the response body read from a records URL.
const maxRecordsSize = 10 << 20

// IsURL reports whether source names an http(s) records location.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "http://")
}

// LoadSource loads records from a file path or an http(s) URL.
func LoadSource(ctx context.Context, source string, opts LoadOptions) (*Book, error) {
	if IsURL(source) {
		return FetchURL(ctx, source, opts)
	}
	return Load(source, opts)
}

// FetchURL fetches and parses a records file from url. The context controls
// timeout and cancellation; without a deadline DefaultFetchTimeout applies.
func FetchURL(ctx context.Context, url string, opts LoadOptions) (*Book, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultFetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecordsSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return LoadFromReader(bytes.NewReader(body), opts)
}
