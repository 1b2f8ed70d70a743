package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/hub"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/registry"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/report"
)

type analyzeOptions struct {
	image    string
	format   string
	verbose  bool
	noLayers bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	c := &cobra.Command{
		Use:   "analyze -i image",
		Short: "Analyze a Docker Hub image",
		Long:  "Fetch repository statistics from Docker Hub and layer details from the registry",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runAnalyze(c, opts)
		},
	}

	addAnalyzeFlags(c, opts)

	return c
}

func addAnalyzeFlags(c *cobra.Command, opts *analyzeOptions) {
	c.Flags().StringVarP(&opts.image, "image", "i", "", "Docker image to analyze, e.g. nginx:latest")
	c.Flags().StringVarP(&opts.format, "output", "o", "", "Output format: console, json or yaml (overrides output.format)")
	c.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	c.Flags().BoolVar(&opts.noLayers, "no-layers", false, "Skip the layer analysis")
}

// runAnalyze is the command handler shared by analyze and the deprecated root -i flag.
func runAnalyze(c *cobra.Command, opts *analyzeOptions) error {
	if opts.image == "" {
		return errors.New("please specify an image with --image option")
	}

	cfg, logger, err := setup(c, opts.verbose)
	if err != nil {
		return err
	}

	if opts.format != "" {
		cfg.Output.Format = opts.format
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a := analyzer.New(cfg, fmt.Sprintf("%s/%s", Name, Version), logger)

	res, err := a.Analyze(c.Context(), opts.image, analyzer.Options{SkipLayers: opts.noLayers})
	if err != nil {
		logger.Error(fmt.Sprintf("Error analyzing image: %v", err))
		return describe(err)
	}

	return report.Write(c.OutOrStdout(), cfg.Output.Format, res, report.Options{
		MaxLayers: cfg.Analysis.MaxLayers,
		Details:   cfg.Analysis.IncludeLayerDetails,
	})
}

// describe turns remote 404s into "does not exist" messages.
func describe(err error) error {
	var repoNotFound *hub.RepositoryNotFoundError
	if errors.As(err, &repoNotFound) {
		return fmt.Errorf("repository %s does not exist: %w", repoNotFound.Repository, err)
	}

	var tagNotFound *registry.TagNotFoundError
	if errors.As(err, &tagNotFound) {
		return fmt.Errorf("image %s:%s does not exist: %w", tagNotFound.Repository, tagNotFound.Tag, err)
	}

	return err
}
