package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhodgson/phone-catalog-tracker/internal/scrape"
)

func TestClientFetchPage(t *testing.T) {
	t.Parallel()

	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.RequestURI())
		_, _ = w.Write([]byte("<html>page</html>"))
	}))
	defer srv.Close()

	c := scrape.NewClient(srv.URL, scrape.WithRateLimit(100, 100))

	body, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", body)

	_, err = c.FetchPage(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, gotPaths, 2)
	assert.Equal(t, "/", gotPaths[0])
	assert.Equal(t, "/?page=3", gotPaths[1])
}

func TestClientFetchPageStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := scrape.NewClient(srv.URL, scrape.WithRateLimit(100, 100))

	_, err := c.FetchPage(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
