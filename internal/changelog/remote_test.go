package changelog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	tests := map[string]struct {
		handler http.HandlerFunc
		wantLen int
		wantErr string
	}{
		"ok": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(minimalRecords))
			},
			wantLen: 1,
		},
		"not found": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: "unexpected status code: 404",
		},
		"invalid body": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("releases: [\n"))
			},
			wantErr: "parsing records YAML",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			book, err := FetchURL(context.Background(), server.URL, LoadOptions{Links: testLinks(t)})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, book.Len())
		})
	}
}

func TestFetchURL_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := FetchURL(ctx, server.URL, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "making request")
}

func TestLoadSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(minimalRecords))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "releases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalRecords), 0o644))

	for name, source := range map[string]string{"url": server.URL, "file": path} {
		t.Run(name, func(t *testing.T) {
			book, err := LoadSource(context.Background(), source, LoadOptions{Links: testLinks(t)})
			require.NoError(t, err)
			assert.Equal(t, 1, book.Len())
		})
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/releases.yaml"))
	assert.True(t, IsURL("http://localhost:8080/releases.yaml"))
	assert.False(t, IsURL("releases.yaml"))
	assert.False(t, IsURL("ftp://example.com/releases.yaml"))
}
