package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher(retries uint64) *Fetcher {
	opts := DefaultOptions()
	opts.Retries = retries
	opts.BaseDelay = time.Millisecond
	return New(opts)
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/geofeed.csv", true},
		{"HTTP://example.com/geofeed.csv", true},
		{"ftp://example.com/geofeed.csv", false},
		{"geofeed.csv", false},
		{"-", false},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURL(tt.source))
		})
	}
}

func TestOpen_HTTP(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, "8.8.8.0/24,US,,,\n")
	}))
	defer srv.Close()

	rc, err := testFetcher(0).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "8.8.8.0/24,US,,,\n", readAll(t, rc))
	assert.Equal(t, DefaultUserAgent, ua)
}

func TestOpen_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	rc, err := testFetcher(3).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", readAll(t, rc))
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpen_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testFetcher(2).Open(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpen_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testFetcher(3).Open(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpen_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testFetcher(3).Open(ctx, srv.URL)
	assert.Error(t, err)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geofeed.csv")
	require.NoError(t, os.WriteFile(path, []byte("8.8.8.0/24,US,,,"), 0o600))

	f := New(DefaultOptions())
	rc, err := f.Open(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "8.8.8.0/24,US,,,", readAll(t, rc))

	_, err = f.Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Stdin(t *testing.T) {
	opts := DefaultOptions()
	opts.Stdin = strings.NewReader("from stdin")

	rc, err := New(opts).Open(context.Background(), Stdin)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", readAll(t, rc))
}
