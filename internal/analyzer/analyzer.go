// Package analyzer ties the reference validator, the Docker Hub client and
// the registry client into one analysis of an image.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/hub"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/logging"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/reference"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/registry"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/report"
	"github.com/z1z0v1c/dockerhub-analyzer/pkg/http"
)

// LayersDisabled is recorded when layer analysis was switched off.
const LayersDisabled = "disabled by --no-layers"

// RepositoryInfoClient fetches Docker Hub repository metadata.
type RepositoryInfoClient interface {
	RepositoryInfo(ctx context.Context, repository string) (*hub.RepositoryInfo, error)
}

// LayerAnalyzer summarizes the layers of an image.
type LayerAnalyzer interface {
	AnalyzeImageLayers(ctx context.Context, repository, tag string) (*registry.LayerReport, error)
}

// Analyzer runs the analysis pipeline.
type Analyzer struct {
	hub      RepositoryInfoClient
	registry LayerAnalyzer
	log      *logging.Logger
	cfg      config.AnalysisConfig
}

// Options adjusts a single run.
type Options struct {
	SkipLayers bool
}

// New wires an Analyzer with the clients described by cfg.
func New(cfg *config.Config, userAgent string, logger *logging.Logger) *Analyzer {
	hubClient := hub.NewClient(cfg.DockerHub, http.NewHttpClient(cfg.DockerHub.RequestTimeout(), userAgent), logger)
	registryClient := registry.NewClient(cfg.Registry, http.NewHttpClient(cfg.Registry.RequestTimeout(), userAgent), logger)

	return NewWithClients(hubClient, registryClient, cfg.Analysis, logger)
}

// NewWithClients builds an Analyzer on top of the given clients.
func NewWithClients(hubClient RepositoryInfoClient, layerAnalyzer LayerAnalyzer, cfg config.AnalysisConfig, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		hub:      hubClient,
		registry: layerAnalyzer,
		log:      logger,
		cfg:      cfg,
	}
}

// Analyze validates raw, fetches the repository metadata and, unless skipped,
// the layer report. Validation errors, repository errors and a missing tag
// abort; other layer failures are recorded in the result.
func (a *Analyzer) Analyze(ctx context.Context, raw string, opts Options) (*report.Result, error) {
	ref, err := reference.Parse(raw)
	if err != nil {
		return nil, err
	}

	if timeout := a.cfg.RunTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	a.log.Info(fmt.Sprintf("Analyzing Docker image: %s", ref.Original))

	repository := reference.SanitizeRepositoryName(ref.Repository)

	info, err := a.hub.RepositoryInfo(ctx, repository)
	if err != nil {
		return nil, err
	}

	res := &report.Result{
		Image:      ref.Original,
		Repository: repository,
		Tag:        ref.Tag,
		Info:       info,
	}

	if opts.SkipLayers {
		res.LayersUnavailable = LayersDisabled
		return res, nil
	}

	layers, err := a.registry.AnalyzeImageLayers(ctx, repository, ref.Tag)
	if err != nil {
		var notFound *registry.TagNotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}

		res.LayersUnavailable = err.Error()
		return res, nil
	}

	res.Layers = layers

	return res, nil
}
