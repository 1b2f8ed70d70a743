package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/hub"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/registry"
)

func testResult(layerSizes ...int64) *Result {
	res := &Result{
		Image:      "nginx",
		Repository: "library/nginx",
		Tag:        "latest",
		Info: &hub.RepositoryInfo{
			Name:        "nginx",
			Description: "Official build of Nginx.",
			StarCount:   20512,
			PullCount:   1234567,
			LastUpdated: "2024-05-01T10:00:00Z",
		},
	}

	if layerSizes != nil {
		report := &registry.LayerReport{}
		for i, size := range layerSizes {
			report.Layers = append(report.Layers, registry.Layer{
				Index:     i + 1,
				Digest:    digest.FromString(fmt.Sprint(i)),
				Size:      size,
				MediaType: "application/vnd.docker.image.rootfs.diff.tar.gzip",
			})
			report.TotalSize += size
		}
		report.LayerCount = len(report.Layers)
		res.Layers = report
	}

	return res
}

func TestLinesRepositorySection(t *testing.T) {
	lines := Lines(testResult(100), Options{})

	assert.Equal(t, []string{
		RepositoryHeader,
		"Name: nginx",
		"Description: Official build of Nginx.",
		"Stars: 20,512",
		"Pulls: 1,234,567",
		"Last Updated: 2024-05-01T10:00:00Z",
		"",
		LayersHeader,
		"Image: library/nginx:latest",
		"Total Layers: 1",
		"Total Size: 100 B",
	}, lines)
}

func TestLinesFallbacks(t *testing.T) {
	res := testResult()
	res.Info.Description = ""
	res.Info.LastUpdated = ""

	lines := Lines(res, Options{})

	assert.Contains(t, lines, "Description: No description")
	assert.Contains(t, lines, "Last Updated: Unknown")
}

func TestLinesLayersUnavailable(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		lines := Lines(testResult(), Options{Details: true})

		assert.Equal(t, LayersUnavailable, lines[len(lines)-1])
	})

	t.Run("failed with reason", func(t *testing.T) {
		res := testResult()
		res.LayersUnavailable = "registry unreachable"

		lines := Lines(res, Options{Details: true})

		assert.Equal(t, []string{LayersHeader, LayersUnavailable, "Reason: registry unreachable"}, lines[len(lines)-3:])
	})
}

func TestLinesLayerDetails(t *testing.T) {
	res := testResult(1024, 2048, 5*1024*1024)

	lines := Lines(res, Options{Details: true})

	assert.Contains(t, lines, "Total Layers: 3")
	assert.Contains(t, lines, "Total Size: 5.00 MB")
	assert.Contains(t, lines, "Layers:")

	first := fmt.Sprintf("  1. %s  1.00 KB  application/vnd.docker.image.rootfs.diff.tar.gzip",
		"sha256:"+digest.FromString("0").Encoded()[:12])
	assert.Contains(t, lines, first)

	for _, line := range lines {
		assert.NotContains(t, line, "more layers")
	}
}

func TestLinesDisplayCap(t *testing.T) {
	res := testResult(1, 2, 3, 4, 5)

	lines := Lines(res, Options{Details: true, MaxLayers: 2})

	var listed int
	for _, line := range lines {
		if strings.HasPrefix(line, "  ") {
			listed++
		}
	}
	assert.Equal(t, 2, listed)
	assert.Equal(t, "... and 3 more layers", lines[len(lines)-1])
}

func TestLinesWithoutDetails(t *testing.T) {
	lines := Lines(testResult(1, 2, 3), Options{Details: false, MaxLayers: 1})

	assert.NotContains(t, lines, "Layers:")
	assert.Equal(t, "Total Size: 6 B", lines[len(lines)-1])
}

func TestLinesIdempotent(t *testing.T) {
	res := testResult(10, 20, 30)
	opts := Options{Details: true, MaxLayers: 2}

	assert.Equal(t, Lines(res, opts), Lines(res, opts))

	var first, second bytes.Buffer
	require.NoError(t, Write(&first, config.FormatConsole, res, opts))
	require.NoError(t, Write(&second, config.FormatConsole, res, opts))
	assert.Equal(t, first.String(), second.String())
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, config.FormatConsole, testResult(100, 200), Options{Details: true}))

	out := buf.String()
	assert.Contains(t, out, RepositoryHeader)
	assert.Contains(t, out, "Pulls: 1,234,567")
	assert.Contains(t, out, "Total Size: 300 B")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, config.FormatJSON, testResult(100, 200), Options{}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "library/nginx", decoded["repository"])

	layers := decoded["layers"].(map[string]any)
	assert.Equal(t, float64(300), layers["totalSize"])
	assert.Equal(t, float64(2), layers["layerCount"])

	info := decoded["info"].(map[string]any)
	assert.Equal(t, float64(20512), info["star_count"])
}

func TestWriteYAML(t *testing.T) {
	res := testResult()
	res.LayersUnavailable = "disabled"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, config.FormatYAML, res, Options{}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "latest", decoded["tag"])
	assert.Equal(t, "disabled", decoded["layersUnavailable"])
	assert.NotContains(t, decoded, "layers")
}

func TestWriteUnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", testResult(), Options{})
	assert.ErrorContains(t, err, "unsupported output format")
}
