package registry

import (
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Media types the registry may answer a manifest request with.
const (
	MediaTypeManifestV2   = "application/vnd.docker.distribution.manifest.v2+json"
	MediaTypeManifestList = "application/vnd.docker.distribution.manifest.list.v2+json"
)

// Service is the token service name for Docker Hub.
const Service = "registry.docker.io"

// TokenResponse represents the token response from the Docker Registry auth API.
type TokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	IssuedAt    string `json:"issued_at"`
}

// Manifest is a platform-specific image manifest (Docker schema 2 or OCI).
// Layers is nil when the document carries no layers field at all.
type Manifest = ocispec.Manifest

// Layer is one entry of a LayerReport.
type Layer struct {
	// Index is the 1-based position of the layer in the manifest.
	Index     int           `json:"index" yaml:"index"`
	Digest    digest.Digest `json:"digest" yaml:"digest"`
	Size      int64         `json:"size" yaml:"size"`
	MediaType string        `json:"mediaType" yaml:"mediaType"`
}

// LayerReport summarizes the layers of a manifest.
type LayerReport struct {
	Layers     []Layer `json:"layers" yaml:"layers"`
	TotalSize  int64   `json:"totalSize" yaml:"totalSize"`
	LayerCount int     `json:"layerCount" yaml:"layerCount"`
}

// Platform selects a manifest out of an index.
type Platform struct {
	OS           string
	Architecture string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Architecture
}

func (p Platform) matches(candidate *ocispec.Platform) bool {
	return candidate != nil && candidate.OS == p.OS && candidate.Architecture == p.Architecture
}
