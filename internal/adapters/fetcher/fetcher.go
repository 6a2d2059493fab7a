// Package fetcher downloads artifacts over HTTP into the local cache.
package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.Fetcher with a plain HTTP GET per artifact.
// It never retries: a failed attempt is reported immediately.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	probeTimeout time.Duration
}

// New creates a Fetcher whose client enforces the given timeouts.
// Connect bounds dialing, Read bounds waiting for response headers and
// Transfer bounds the whole request including the body.
func New(userAgent string, timeouts domain.Timeouts) *Fetcher {
	dialer := &net.Dialer{Timeout: timeouts.Connect}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeouts.Connect,
		ResponseHeaderTimeout: timeouts.Read,
		ForceAttemptHTTP2:     true,
	}

	return NewWithClient(&http.Client{
		Transport: transport,
		Timeout:   timeouts.Transfer,
	}, userAgent)
}

// NewWithClient creates a Fetcher using client as-is.
func NewWithClient(client *http.Client, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	return &Fetcher{
		client:       client,
		userAgent:    userAgent,
		probeTimeout: domain.ProbeTimeout,
	}
}

// Fetch streams the artifact at url into destination.
// The body is copied straight to the file; on a failed transfer the partially
// written file is left behind for the cache to evict on its next lookup.
func (f *Fetcher) Fetch(ctx context.Context, url, destination string) (domain.FetchResult, error) {
	req, err := f.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return domain.FetchResult{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.FetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrFetchRequestFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := zerr.With(domain.ErrFetchBadStatus, "status_code", resp.StatusCode)
		return domain.FetchResult{}, zerr.With(statusErr, "url", url)
	}

	//nolint:gosec // Destination is a cache path built from a canonical file name
	file, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return domain.FetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrFetchWriteFailed.Error()), "path", destination)
	}

	body := &trackedReader{r: resp.Body}
	digest := xxhash.New()

	n, copyErr := io.Copy(io.MultiWriter(file, digest), body)
	closeErr := file.Close()

	if copyErr != nil {
		if body.err != nil && errors.Is(copyErr, body.err) {
			readErr := zerr.With(zerr.Wrap(copyErr, domain.ErrFetchRequestFailed.Error()), "url", url)
			return domain.FetchResult{}, zerr.With(readErr, "bytes_written", n)
		}
		return domain.FetchResult{}, zerr.With(zerr.Wrap(copyErr, domain.ErrFetchWriteFailed.Error()), "path", destination)
	}
	if closeErr != nil {
		return domain.FetchResult{}, zerr.With(zerr.Wrap(closeErr, domain.ErrFetchWriteFailed.Error()), "path", destination)
	}

	return domain.FetchResult{
		Bytes:  n,
		Digest: domain.FormatDigest(digest.Sum64()),
	}, nil
}

// Probe sends a HEAD request to url and succeeds on any non-5xx answer.
// It is bounded by the health-check timeout regardless of ctx.
func (f *Fetcher) Probe(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, f.probeTimeout)
	defer cancel()

	req, err := f.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "url", url)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		probeErr := zerr.With(domain.ErrProbeFailed, "status_code", resp.StatusCode)
		return zerr.With(probeErr, "url", url)
	}
	return nil
}

func (f *Fetcher) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidURL.Error()), "url", url)
	}
	if req.URL.Host == "" || (req.URL.Scheme != "http" && req.URL.Scheme != "https") {
		return nil, zerr.With(domain.ErrInvalidURL, "url", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	return req, nil
}

// trackedReader remembers the last error returned by the underlying reader so
// that read failures can be told apart from write failures after io.Copy.
type trackedReader struct {
	r   io.Reader
	err error
}

func (t *trackedReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}

// Ensure Fetcher satisfies the interface.
var _ ports.Fetcher = (*Fetcher)(nil)
