package sources

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinkominfo-jombang/pantau-berita/pkg/httpclient"
)

// fakeResponse satisfies httpclient.Response with canned data.
type fakeResponse struct {
	status int
	body   string
}

func (r fakeResponse) StatusCode() int { return r.status }
func (r fakeResponse) Body() []byte    { return []byte(r.body) }

// fakeClient serves canned pages keyed by url. Unknown urls 404.
type fakeClient struct {
	pages    map[string]string
	err      error
	requests []string
}

func (c *fakeClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	c.requests = append(c.requests, url)
	if c.err != nil {
		return nil, c.err
	}
	body, ok := c.pages[url]
	if !ok {
		return fakeResponse{status: http.StatusNotFound, body: "not found"}, nil
	}
	return fakeResponse{status: http.StatusOK, body: body}, nil
}

func testConfig(client *fakeClient) Config {
	return Config{Client: client, UserAgent: "test-agent"}
}

func TestDefaultFetchersRegistersAllSites(t *testing.T) {
	fetchers := DefaultFetchers(testConfig(&fakeClient{}))
	require.Len(t, fetchers, 6)

	ids := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		ids = append(ids, f.ID())
	}
	assert.Equal(t, []string{
		"beritajombang", "kabarjombang", "jombangkab",
		"detik", "tribunjatim", "wartajombang",
	}, ids)
}

func TestFetchListingFailure(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("connection refused")}
	for _, f := range DefaultFetchers(testConfig(client)) {
		_, err := f.Fetch(context.Background(), 5)
		assert.Error(t, err, f.ID())
	}
}

func TestFetchNon200IsError(t *testing.T) {
	// Empty page map means every request gets a 404.
	client := &fakeClient{pages: map[string]string{}}
	f := NewBeritaJombangFetcher(testConfig(client))
	_, err := f.Fetch(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
