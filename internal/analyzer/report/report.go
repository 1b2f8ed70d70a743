// Package report renders analysis results as console text, JSON or YAML.
package report

import (
	_ "crypto/sha256"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/hub"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/registry"
)

const (
	RepositoryHeader = "=== Repository Information ==="
	LayersHeader     = "=== Layer Analysis ==="

	NoDescription     = "No description"
	UnknownUpdate     = "Unknown"
	LayersUnavailable = "Layer analysis unavailable"

	shortDigestLen = 12
)

// Result is everything one analysis produced.
type Result struct {
	Image      string                `json:"image" yaml:"image"`
	Repository string                `json:"repository" yaml:"repository"`
	Tag        string                `json:"tag" yaml:"tag"`
	Info       *hub.RepositoryInfo   `json:"info" yaml:"info"`
	Layers     *registry.LayerReport `json:"layers,omitempty" yaml:"layers,omitempty"`
	// LayersUnavailable explains why Layers is nil.
	LayersUnavailable string `json:"layersUnavailable,omitempty" yaml:"layersUnavailable,omitempty"`
}

// Options controls the console rendering.
type Options struct {
	// MaxLayers caps the listed layers; zero lists all of them.
	MaxLayers int
	// Details lists individual layers below the totals.
	Details bool
}

// Lines renders res as console text, one entry per line.
func Lines(res *Result, opts Options) []string {
	lines := []string{RepositoryHeader}
	lines = append(lines, repositoryLines(res.Info)...)
	lines = append(lines, "", LayersHeader)

	if res.Layers == nil {
		lines = append(lines, LayersUnavailable)
		if res.LayersUnavailable != "" {
			lines = append(lines, "Reason: "+res.LayersUnavailable)
		}

		return lines
	}

	return append(lines, layerLines(res, opts)...)
}

func repositoryLines(info *hub.RepositoryInfo) []string {
	if info == nil {
		info = &hub.RepositoryInfo{}
	}

	description := info.Description
	if description == "" {
		description = NoDescription
	}

	lastUpdated := info.LastUpdated
	if lastUpdated == "" {
		lastUpdated = UnknownUpdate
	}

	return []string{
		"Name: " + info.Name,
		"Description: " + description,
		"Stars: " + humanize.Comma(info.StarCount),
		"Pulls: " + humanize.Comma(info.PullCount),
		"Last Updated: " + lastUpdated,
	}
}

func layerLines(res *Result, opts Options) []string {
	layers := res.Layers

	lines := []string{
		fmt.Sprintf("Image: %s:%s", res.Repository, res.Tag),
		fmt.Sprintf("Total Layers: %d", layers.LayerCount),
		"Total Size: " + registry.FormatSize(layers.TotalSize),
	}

	if !opts.Details || len(layers.Layers) == 0 {
		return lines
	}

	shown := layers.Layers
	if opts.MaxLayers > 0 && len(shown) > opts.MaxLayers {
		shown = shown[:opts.MaxLayers]
	}

	lines = append(lines, "Layers:")
	for _, l := range shown {
		lines = append(lines, fmt.Sprintf("  %d. %s  %s  %s", l.Index, shortDigest(l.Digest), registry.FormatSize(l.Size), l.MediaType))
	}

	if remaining := len(layers.Layers) - len(shown); remaining > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more layers", remaining))
	}

	return lines
}

func shortDigest(d digest.Digest) string {
	if d.Validate() != nil {
		return d.String()
	}

	encoded := d.Encoded()
	if len(encoded) > shortDigestLen {
		encoded = encoded[:shortDigestLen]
	}

	return d.Algorithm().String() + ":" + encoded
}
