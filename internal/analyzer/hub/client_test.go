package hub

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/logging"
	"github.com/z1z0v1c/dockerhub-analyzer/pkg/http"
)

func newTestClient(t *testing.T, handler nethttp.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.DockerHubConfig{BaseURL: srv.URL + "/v2/"}, http.NewHttpClient(time.Second, "test"), logging.Discard())
}

func TestRepositoryInfo(t *testing.T) {
	c := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/v2/repositories/library/nginx/", r.URL.Path)
		w.Write([]byte(`{
			"user": "library",
			"name": "nginx",
			"namespace": "library",
			"repository_type": "image",
			"status": 1,
			"description": "Official build of Nginx.",
			"is_private": false,
			"star_count": 20000,
			"pull_count": 1000000000,
			"last_updated": "2024-05-01T10:00:00.000000Z"
		}`))
	})

	info, err := c.RepositoryInfo(context.Background(), "library/nginx")
	require.NoError(t, err)

	assert.Equal(t, "nginx", info.Name)
	assert.Equal(t, "library", info.Namespace)
	assert.Equal(t, "Official build of Nginx.", info.Description)
	assert.Equal(t, int64(20000), info.StarCount)
	assert.Equal(t, int64(1000000000), info.PullCount)
	assert.Equal(t, "2024-05-01T10:00:00.000000Z", info.LastUpdated)
	assert.Empty(t, info.DateRegistered)
}

func TestRepositoryInfoNotFound(t *testing.T) {
	c := newTestClient(t, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
	})

	_, err := c.RepositoryInfo(context.Background(), "someone/missing")
	require.Error(t, err)

	var notFound *RepositoryNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "someone/missing", notFound.Repository)
	assert.Contains(t, err.Error(), "someone/missing")
}

func TestRepositoryInfoFetchError(t *testing.T) {
	tests := []struct {
		name    string
		handler nethttp.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(nethttp.StatusBadGateway)
			},
		},
		{
			name: "invalid json",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.Write([]byte(`<html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			_, err := c.RepositoryInfo(context.Background(), "library/nginx")

			var fetchErr *RepositoryFetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, "library/nginx", fetchErr.Repository)
			assert.NotNil(t, fetchErr.Unwrap())
		})
	}
}
