// Package hub reads repository metadata from the Docker Hub API.
package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/logging"
	"github.com/z1z0v1c/dockerhub-analyzer/pkg/http"
)

// RepositoryNotFoundError is returned when Docker Hub answers 404.
type RepositoryNotFoundError struct {
	Repository string
}

func (e *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository '%s' not found on Docker Hub", e.Repository)
}

// RepositoryFetchError wraps any other failure while reading repository metadata.
type RepositoryFetchError struct {
	Repository string
	Err        error
}

func (e *RepositoryFetchError) Error() string {
	return fmt.Sprintf("failed to get repository info for %s: %v", e.Repository, e.Err)
}

func (e *RepositoryFetchError) Unwrap() error { return e.Err }

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
}

func NewClient(cfg config.DockerHubConfig, httpClient *http.Client, logger *logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		log:        logger,
	}
}

// RepositoryInfo fetches the metadata of repository, e.g. "library/nginx".
func (c *Client) RepositoryInfo(ctx context.Context, repository string) (*RepositoryInfo, error) {
	url := fmt.Sprintf("%s/repositories/%s/", c.baseURL, repository)

	c.log.Debug("Fetching repository info", "url", url)

	var info RepositoryInfo
	if err := c.httpClient.SendRequestAndDecode(ctx, &info, http.MethodGet, url, nil); err != nil {
		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return nil, &RepositoryNotFoundError{Repository: repository}
		}

		return nil, &RepositoryFetchError{Repository: repository, Err: err}
	}

	return &info, nil
}
