package redact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretKey = "SUPERSECRETKEY"

func TestURLError_DropsQuery(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/v1?key="+secretKey, nil)
	require.NoError(t, err)

	_, err = http.DefaultClient.Do(req)
	require.Error(t, err)
	require.Contains(t, err.Error(), secretKey)

	redacted := URLError(err)
	assert.NotContains(t, redacted.Error(), secretKey)
	assert.Contains(t, redacted.Error(), "Get request")
}

func TestURLError_KeepsCause(t *testing.T) {
	err := URLError(&url.Error{Op: "Post", URL: "http://x/?key=" + secretKey, Err: context.DeadlineExceeded})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, err.Error(), secretKey)
}

func TestURLError_PassesOthersThrough(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, URLError(plain))
	assert.NoError(t, URLError(nil))
}
