package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show tool information and configured endpoints",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, _, err := setup(c, false)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", Name, Version)
			fmt.Fprintln(out, "Analyze Docker Hub repositories: stars, pulls and image layers.")
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Docker Hub API:\t%s\n", cfg.DockerHub.BaseURL)
			fmt.Fprintf(w, "Registry API:\t%s\n", cfg.Registry.BaseURL)
			fmt.Fprintf(w, "Auth endpoint:\t%s\n", cfg.Registry.AuthURL)
			fmt.Fprintf(w, "Config file:\t%s\n", configPath(c))
			fmt.Fprintf(w, "Log file:\t%s\n", cfg.Output.LogFile)
			fmt.Fprintf(w, "Output format:\t%s\n", cfg.Output.Format)

			return w.Flush()
		},
	}
}
