package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(opts Options) *Client {
	if opts.BackoffBase == 0 {
		opts.BackoffBase = time.Millisecond
	}

	return NewClient(opts)
}

func TestFetch_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	body, err := testClient(Options{}).Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(Options{MaxAttempts: 3}).Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, server.URL, fetchErr.Url)
}

func TestFetch_ClientErrorFailsImmediately(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(Options{}).Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, errors.Is(err, &FetchError{}))
}

func TestFetch_TransportErrorIsWrapped(t *testing.T) {
	client := testClient(Options{MaxAttempts: 2, Timeout: time.Second})

	_, err := client.Fetch(context.Background(), "http://127.0.0.1:1")

	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	require.NotNil(t, fetchErr.Unwrap())
}

func TestFetch_EnforcesDelayBetweenRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := testClient(Options{Delay: 50 * time.Millisecond})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}

	// burst of one, so the second and third requests each wait
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestFetch_SendsIdentifyingHeaders(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := testClient(Options{UserAgent: "SubastasParserBot/1.0"})

	_, err := client.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "SubastasParserBot/1.0", gotAgent)
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(Options{}).Fetch(ctx, "http://example.com")

	require.Error(t, err)
}
