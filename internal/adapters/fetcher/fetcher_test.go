package fetcher_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/libload/internal/adapters/fetcher"
	"go.trai.ch/libload/internal/core/domain"
)

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func newMockClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &MockRoundTripper{RoundTripFunc: handler},
	}
}

func respond(status int, body io.Reader) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(body),
		Header:     make(http.Header),
	}
}

type failingReader struct {
	prefix []byte
	sent   bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		return copy(p, f.prefix), nil
	}
	return 0, errors.New("connection reset by peer")
}

func TestFetcher_Fetch(t *testing.T) {
	payload := []byte("PK\x03\x04 artifact bytes")

	t.Run("Success", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "lib-1.0.jar")
		var gotUA, gotURL string

		client := newMockClient(func(req *http.Request) (*http.Response, error) {
			gotUA = req.Header.Get("User-Agent")
			gotURL = req.URL.String()
			return respond(http.StatusOK, bytes.NewReader(payload)), nil
		})
		f := fetcher.NewWithClient(client, "test-agent/1.0")

		result, err := f.Fetch(context.Background(), "https://repo.example.com/g/lib/1.0/lib-1.0.jar", dest)
		require.NoError(t, err)

		assert.Equal(t, "test-agent/1.0", gotUA)
		assert.Equal(t, "https://repo.example.com/g/lib/1.0/lib-1.0.jar", gotURL)
		assert.Equal(t, int64(len(payload)), result.Bytes)
		assert.Equal(t, domain.FormatDigest(xxhash.Sum64(payload)), result.Digest)

		written, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, payload, written)
	})

	t.Run("DefaultUserAgent", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "lib-1.0.jar")
		var gotUA string

		client := newMockClient(func(req *http.Request) (*http.Response, error) {
			gotUA = req.Header.Get("User-Agent")
			return respond(http.StatusOK, bytes.NewReader(payload)), nil
		})
		_, err := fetcher.NewWithClient(client, "").Fetch(context.Background(), "https://repo.example.com/x.jar", dest)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultUserAgent, gotUA)
	})

	t.Run("OverwritesPlaceholder", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "lib-1.0.jar")
		require.NoError(t, os.WriteFile(dest, []byte("stale content that is longer than the payload itself"), 0o600))

		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, bytes.NewReader(payload)), nil
		})
		_, err := fetcher.NewWithClient(client, "").Fetch(context.Background(), "https://repo.example.com/x.jar", dest)
		require.NoError(t, err)

		written, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, payload, written)
	})

	t.Run("NotFound", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "lib-1.0.jar")
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return respond(http.StatusNotFound, http.NoBody), nil
		})

		_, err := fetcher.NewWithClient(client, "").Fetch(context.Background(), "https://repo.example.com/x.jar", dest)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrFetchBadStatus.Error())
	})

	t.Run("TransportError", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "lib-1.0.jar")
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		})

		_, err := fetcher.NewWithClient(client, "").Fetch(context.Background(), "https://repo.example.com/x.jar", dest)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrFetchRequestFailed.Error())
		assert.NoFileExists(t, dest)
	})

	t.Run("InterruptedBody", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "lib-1.0.jar")
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, &failingReader{prefix: payload[:4]}), nil
		})

		_, err := fetcher.NewWithClient(client, "").Fetch(context.Background(), "https://repo.example.com/x.jar", dest)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrFetchRequestFailed.Error())

		// The partial file stays for the cache to detect.
		written, readErr := os.ReadFile(dest)
		require.NoError(t, readErr)
		assert.Equal(t, payload[:4], written)
	})

	t.Run("UnwritableDestination", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "missing", "lib-1.0.jar")
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, bytes.NewReader(payload)), nil
		})

		_, err := fetcher.NewWithClient(client, "").Fetch(context.Background(), "https://repo.example.com/x.jar", dest)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrFetchWriteFailed.Error())
	})

	t.Run("InvalidURL", func(t *testing.T) {
		called := false
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			called = true
			return respond(http.StatusOK, http.NoBody), nil
		})
		f := fetcher.NewWithClient(client, "")

		for _, url := range []string{"", "://broken", "ftp://repo.example.com/x.jar", "/relative/x.jar"} {
			_, err := f.Fetch(context.Background(), url, filepath.Join(t.TempDir(), "x.jar"))
			require.Error(t, err, url)
			assert.ErrorContains(t, err, domain.ErrInvalidURL.Error(), url)
		}
		assert.False(t, called)
	})
}

func TestFetcher_Fetch_HTTPServer(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 4096)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maven2/org/example/lib/1.0/lib-1.0.jar" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	f := fetcher.New("", domain.Timeouts{
		Connect:  time.Second,
		Read:     time.Second,
		Transfer: 5 * time.Second,
	})
	dest := filepath.Join(t.TempDir(), "lib-1.0.jar")

	result, err := f.Fetch(context.Background(), server.URL+"/maven2/org/example/lib/1.0/lib-1.0.jar", dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), result.Bytes)

	_, err = f.Fetch(context.Background(), server.URL+"/maven2/org/example/lib/2.0/lib-2.0.jar", dest)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchBadStatus.Error())
}

func TestFetcher_Fetch_ReadTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	f := fetcher.New("", domain.Timeouts{
		Connect:  time.Second,
		Read:     50 * time.Millisecond,
		Transfer: 5 * time.Second,
	})

	_, err := f.Fetch(context.Background(), server.URL+"/slow.jar", filepath.Join(t.TempDir(), "slow.jar"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchRequestFailed.Error())
}

func TestFetcher_Probe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		err     error
		wantErr bool
	}{
		{name: "OK", status: http.StatusOK},
		{name: "NotFoundIsReachable", status: http.StatusNotFound},
		{name: "ServerError", status: http.StatusBadGateway, wantErr: true},
		{name: "Unreachable", err: errors.New("no route to host"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var method string
			client := newMockClient(func(req *http.Request) (*http.Response, error) {
				method = req.Method
				if tt.err != nil {
					return nil, tt.err
				}
				return respond(tt.status, http.NoBody), nil
			})

			err := fetcher.NewWithClient(client, "").Probe(context.Background(), "https://repo.example.com/maven2")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorContains(t, err, domain.ErrProbeFailed.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, http.MethodHead, method)
		})
	}
}
