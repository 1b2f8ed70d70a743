package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	nethttp "net/http"
	"net/url"
	"runtime"
	"strings"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/logging"
	"github.com/z1z0v1c/dockerhub-analyzer/pkg/http"
)

var acceptedManifestTypes = strings.Join([]string{
	MediaTypeManifestV2,
	MediaTypeManifestList,
	ocispec.MediaTypeImageManifest,
	ocispec.MediaTypeImageIndex,
}, ", ")

// Client talks to a Docker Registry v2 API using anonymous pull tokens.
type Client struct {
	// Platform picks the manifest when the registry answers with an index.
	Platform Platform

	baseURL    string
	authURL    string
	httpClient *http.Client
	log        *logging.Logger
}

// NewClient creates a registry client for the configured endpoints.
func NewClient(cfg config.RegistryConfig, httpClient *http.Client, logger *logging.Logger) *Client {
	return &Client{
		Platform:   Platform{OS: "linux", Architecture: runtime.GOARCH},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		authURL:    cfg.AuthURL,
		httpClient: httpClient,
		log:        logger,
	}
}

// AuthToken retrieves an anonymous pull token for repository.
// Failures are reported as *AuthTokenError.
func (c *Client) AuthToken(ctx context.Context, repository string) (string, error) {
	query := url.Values{}
	query.Set("service", Service)
	query.Set("scope", fmt.Sprintf("repository:%s:pull", repository))

	var authResp TokenResponse
	if err := c.httpClient.SendRequestAndDecode(ctx, &authResp, http.MethodGet, c.authURL+"?"+query.Encode(), nil); err != nil {
		return "", &AuthTokenError{Repository: repository, Err: err}
	}

	token := authResp.Token
	if token == "" {
		token = authResp.AccessToken
	}

	if token == "" {
		return "", &AuthTokenError{Repository: repository, Err: errors.New("response carried no token")}
	}

	c.log.Debug("Authentication successful", "token_length", len(token))

	return token, nil
}

// Manifest fetches the manifest of repository:tag. A missing token is logged
// and the request is sent unauthenticated.
func (c *Client) Manifest(ctx context.Context, repository, tag string) (*Manifest, error) {
	token, err := c.AuthToken(ctx, repository)
	if err != nil {
		c.log.Warn("Failed to get auth token", "err", err)
	}

	headers := map[string]string{
		"Accept": acceptedManifestTypes,
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	c.log.Info(fmt.Sprintf("Fetching manifest for %s:%s", repository, tag))

	resp, err := c.httpClient.SendRequest(ctx, http.MethodGet, c.manifestURL(repository, tag), headers)
	if err != nil {
		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return nil, &TagNotFoundError{Repository: repository, Tag: tag}
		}

		return nil, &ManifestFetchError{Repository: repository, Tag: tag, Err: err}
	}
	defer resp.Body.Close()

	manifest, err := c.decodeManifest(ctx, resp, repository, headers)
	if err != nil {
		return nil, &ManifestFetchError{Repository: repository, Tag: tag, Err: err}
	}

	return manifest, nil
}

// manifestDocument decodes both single manifests and indexes.
type manifestDocument struct {
	ocispec.Manifest
	Manifests []ocispec.Descriptor `json:"manifests"`
}

func (d *manifestDocument) isIndex(contentType string) bool {
	if isIndexMediaType(contentType) || isIndexMediaType(d.MediaType) {
		return true
	}

	return d.Layers == nil && len(d.Manifests) > 0
}

// decodeManifest reads a manifest, resolving an index to the manifest of c.Platform.
func (c *Client) decodeManifest(ctx context.Context, resp *nethttp.Response, repository string, headers map[string]string) (*Manifest, error) {
	var doc manifestDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding manifest: %w", err)
	}

	if !doc.isIndex(resp.Header.Get("Content-Type")) {
		return &doc.Manifest, nil
	}

	c.log.Debug("Received index", "manifests", len(doc.Manifests))

	for _, m := range doc.Manifests {
		if c.Platform.matches(m.Platform) {
			c.log.Debug("Selected platform manifest", "platform", c.Platform.String(), "digest", m.Digest)

			return c.fetchManifestByDigest(ctx, repository, m.Digest, headers)
		}
	}

	return nil, fmt.Errorf("no matching platform %s found in manifest index", c.Platform)
}

// fetchManifestByDigest fetches a platform-specific manifest by its digest.
func (c *Client) fetchManifestByDigest(ctx context.Context, repository string, dgst digest.Digest, headers map[string]string) (*Manifest, error) {
	var manifest Manifest
	if err := c.httpClient.SendRequestAndDecode(ctx, &manifest, http.MethodGet, c.manifestURL(repository, dgst.String()), headers); err != nil {
		return nil, fmt.Errorf("failed to fetch platform manifest %s: %w", dgst, err)
	}

	return &manifest, nil
}

func (c *Client) manifestURL(repository, reference string) string {
	return fmt.Sprintf("%s/%s/manifests/%s", c.baseURL, repository, reference)
}

func isIndexMediaType(value string) bool {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}

	return mediaType == MediaTypeManifestList || mediaType == ocispec.MediaTypeImageIndex
}
