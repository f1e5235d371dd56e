package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarvinen/libris/internal/ratelimit"
)

func TestSearchHitsVolumesEndpoint(t *testing.T) {
	var capturedPath string
	var capturedQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponseBody))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("test-api-key"))

	query := ByISBN("9780553804577").WithMaxResults(5)
	response, err := client.Search(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "/books/v1/volumes", capturedPath)
	assert.Equal(t, "isbn:9780553804577", capturedQuery.Get("q"))
	assert.Equal(t, "5", capturedQuery.Get("maxResults"))
	assert.Equal(t, "test-api-key", capturedQuery.Get("key"))

	assert.Equal(t, 2, response.TotalItems)
	require.Len(t, response.Items, 2)
	assert.Equal(t, "The Google story", response.Items[0].VolumeInfo.Title)
}

func TestSearchSurfacesRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Search(context.Background(), ByTitle("anything"))
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
}

func TestSearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Search(context.Background(), ByTitle("anything"))
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.NotNil(t, reqErr.Unwrap())
}

func TestSearchInvalidBaseURLFailsBeforeTransport(t *testing.T) {
	client := NewClient(WithBaseURL("not-a-url"))

	_, err := client.Search(context.Background(), ByTitle("anything"))
	require.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestSearchWaitsForRateLimiter(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRateLimiter(ratelimit.New("GoogleBooks", 100)))

	_, err := client.Search(context.Background(), ByTitle("first"))
	require.NoError(t, err)
	_, err = client.Search(context.Background(), ByTitle("second"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSearchRateLimiterHonoursCancelledContext(t *testing.T) {
	client := NewClient(WithRateLimiter(ratelimit.New("GoogleBooks", 1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Burn the initial token so the second call has to wait.
	_ = client.rateLimiter.Allow()
	_, err := client.Search(ctx, ByTitle("anything"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchVolume(t *testing.T) {
	var capturedPath string
	var capturedQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"books#volume"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("test-api-key"))

	response, err := client.FetchVolume(context.Background(), "zyTCAlFPjgYC")
	require.NoError(t, err)

	assert.Equal(t, "/books/v1/volumes/zyTCAlFPjgYC", capturedPath)
	assert.Equal(t, "test-api-key", capturedQuery.Get("key"))
	assert.Equal(t, "books#volume", response.Kind)
	assert.Empty(t, response.Items)
}

func TestFetchVolumeEscapesID(t *testing.T) {
	var capturedURI string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedURI = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"books#volume"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.FetchVolume(context.Background(), "weird/id?x")
	require.NoError(t, err)
	assert.Equal(t, "/books/v1/volumes/weird%2Fid%3Fx", capturedURI)
}

func TestFetchVolumeEmptyID(t *testing.T) {
	client := NewClient()

	_, err := client.FetchVolume(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyVolumeID)
}

func TestFetchVolumeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"The volume ID could not be found."}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.FetchVolume(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}
