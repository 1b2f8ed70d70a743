package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/logging"
)

const Name = "dockerhub-analyzer"

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates the dockerhub-analyzer command tree.
func NewRootCmd() *cobra.Command {
	opts := &analyzeOptions{}

	root := &cobra.Command{
		Use:           Name + " [command]",
		Short:         "Analyze Docker Hub repositories",
		Long:          "Print Docker Hub repository statistics and image layer details for a named image",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			// -i on the root command predates the analyze subcommand
			if opts.image == "" {
				return c.Help()
			}
			return runAnalyze(c, opts)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to config file (default is ./"+config.DefaultPath+")")

	addAnalyzeFlags(root, opts)
	root.Flags().MarkDeprecated("image", "use 'analyze -i <image>' instead")

	root.AddCommand(newAnalyzeCmd(), newConfigCmd(), newInfoCmd())

	return root
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath returns the --config flag or the default path.
func configPath(c *cobra.Command) string {
	path, _ := c.Flags().GetString("config")
	if path == "" {
		return config.DefaultPath
	}

	return path
}

// setup loads the configuration and builds the logger every command shares.
// A config file that cannot be read is reported and the defaults are used.
func setup(c *cobra.Command, verbose bool) (*config.Config, *logging.Logger, error) {
	path := configPath(c)
	if err := config.ValidatePath(path); err != nil {
		return nil, nil, err
	}

	cfg, loadErr := config.Load(path)

	logger := logging.New(logging.Options{
		Console: c.ErrOrStderr(),
		File:    cfg.Output.LogFile,
		Verbose: verbose || cfg.Output.Verbose,
	})

	if loadErr != nil {
		logger.Warn("Could not load config file, using defaults", "err", loadErr)
	}

	return cfg, logger, nil
}
