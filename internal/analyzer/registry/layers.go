package registry

import (
	"context"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// AnalyzeImageLayers fetches the manifest of repository:tag and summarizes its
// layers. A manifest without a layers field yields an empty report.
func (c *Client) AnalyzeImageLayers(ctx context.Context, repository, tag string) (*LayerReport, error) {
	manifest, err := c.Manifest(ctx, repository, tag)
	if err != nil {
		c.log.Error("Layer analysis failed", "err", err)
		return nil, err
	}

	if manifest.Layers == nil {
		c.log.Warn("No layers found in manifest")
		return NewLayerReport(nil), nil
	}

	report := NewLayerReport(manifest.Layers)
	c.log.Debug("Analyzed layers", "count", report.LayerCount, "total_size", report.TotalSize)

	return report, nil
}

// NewLayerReport numbers the descriptors from 1 and sums their sizes.
func NewLayerReport(descriptors []ocispec.Descriptor) *LayerReport {
	report := &LayerReport{
		Layers: make([]Layer, 0, len(descriptors)),
	}

	for i, d := range descriptors {
		report.Layers = append(report.Layers, Layer{
			Index:     i + 1,
			Digest:    d.Digest,
			Size:      d.Size,
			MediaType: d.MediaType,
		})
		report.TotalSize += d.Size
	}

	report.LayerCount = len(report.Layers)

	return report
}
