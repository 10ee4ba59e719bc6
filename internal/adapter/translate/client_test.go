package translate

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

const secretKey = "SUPERSECRETKEY"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
	c.baseURL = srv.URL
	return c
}

func TestClient_Translate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NotContains(t, r.URL.RawQuery, "Isolate")

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Isolate affected animals", r.PostForm.Get("q"))
		assert.Equal(t, "hi", r.PostForm.Get("target"))
		assert.Equal(t, "en", r.PostForm.Get("source"))
		assert.Equal(t, "text", r.PostForm.Get("format"))
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"&quot;प्रभावित&quot; पशुओं को अलग करें"}]}}`)) //nolint:errcheck // test server
	})

	out, err := c.Translate(context.Background(), "Isolate affected animals", "hi", "en")

	require.NoError(t, err)
	assert.Equal(t, `"प्रभावित" पशुओं को अलग करें`, out)
}

func TestClient_OmitsEmptySource(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		_, ok := r.PostForm["source"]
		assert.False(t, ok)
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"x"}]}}`)) //nolint:errcheck // test server
	})

	_, err := c.Translate(context.Background(), "hello", "ta", "")
	require.NoError(t, err)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{"status", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}, "403"},
		{"no translations", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":{"translations":[]}}`)) //nolint:errcheck // test server
		}, "no translations"},
		{"malformed", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html>`)) //nolint:errcheck // test server
		}, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Translate(context.Background(), "hello", "hi", "en")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_LongTextInBody(t *testing.T) {
	long := strings.Repeat("Vaccinate healthy animals before the monsoon. ", 2000)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, long, r.PostForm.Get("q"))
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"ok"}]}}`)) //nolint:errcheck // test server
	})

	out, err := c.Translate(context.Background(), long, "hi", "en")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestClient_ErrorOmitsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	client := NewClient(secretKey, time.Second, logger, observability.NewMetricsForTesting())
	client.baseURL = srv.URL

	_, err := client.Translate(context.Background(), "hello", "hi", "en")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), secretKey)

	cached := NewCached(client, expirable.NewLRU[string, string](10, nil, time.Hour), logger, observability.NewMetricsForTesting())
	assert.Equal(t, "hello", cached.Translate(context.Background(), "hello", "hi", "en"))
	assert.Contains(t, logs.String(), "translation failed")
	assert.NotContains(t, logs.String(), secretKey)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("mr"))
	assert.True(t, Supported("en"))
	assert.False(t, Supported("fr"))
	assert.False(t, Supported(""))
}
