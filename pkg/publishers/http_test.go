package publishers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() Event {
	return Event{
		ID:          7,
		Title:       "Bupati resmikan jalan baru",
		URL:         "https://beritajombang.com/jalan-baru",
		Source:      "beritajombang.com",
		Category:    "Pemerintahan",
		PublishedAt: time.Date(2025, time.August, 20, 10, 30, 0, 0, time.UTC),
		IngestedAt:  time.Date(2025, time.August, 25, 9, 0, 0, 0, time.UTC),
	}
}

func httpConfig(url string) PublisherConfig {
	return sanitizeConfig(PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{
			URL:     url,
			Headers: map[string]string{"X-Token": "s3cret"},
		},
	})
}

func TestHTTPPublisherDelivers(t *testing.T) {
	var got Event
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), httpConfig(srv.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, "hook", pub.ID())
	assert.Equal(t, TypeHTTP, pub.Type())

	require.NoError(t, pub.Publish(context.Background(), testEvent()))
	assert.Equal(t, testEvent().URL, got.URL)
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "s3cret", header.Get("X-Token"))
}

func TestHTTPPublisherNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), httpConfig(srv.URL), nil)
	require.NoError(t, err)

	err = pub.Publish(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPPublisherUnreachableSink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	pub, err := newHTTPPublisher(context.Background(), httpConfig(srv.URL), nil)
	require.NoError(t, err)

	assert.Error(t, pub.Publish(context.Background(), testEvent()))
}

func TestHTTPPublisherRequiresConfig(t *testing.T) {
	_, err := newHTTPPublisher(context.Background(), PublisherConfig{ID: "hook", Type: TypeHTTP}, nil)
	assert.Error(t, err)
}

func TestBuildAllFromRegistry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	cfgs := []PublisherConfig{httpConfig(srv.URL)}
	pubs, err := BuildAll(context.Background(), DefaultRegistry(), cfgs, nil)
	require.NoError(t, err)
	require.Len(t, pubs, 1)
	assert.Equal(t, "hook", pubs[0].ID())
}

func TestBuildAllUnknownType(t *testing.T) {
	cfgs := []PublisherConfig{{ID: "p", Type: "carrier-pigeon"}}
	_, err := BuildAll(context.Background(), DefaultRegistry(), cfgs, nil)
	assert.Error(t, err)
}

func TestBuildAllEmpty(t *testing.T) {
	pubs, err := BuildAll(context.Background(), DefaultRegistry(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, pubs)
}
