package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var save bool

	c := &cobra.Command{
		Use:                   "config [-c config]",
		Short:                 "Show the effective configuration",
		Long:                  "Print the configuration after merging the config file and environment over the defaults",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, logger, err := setup(c, false)
			if err != nil {
				return err
			}

			if save {
				path := configPath(c)
				if err := cfg.Save(path); err != nil {
					return err
				}
				logger.Info("Configuration saved", "path", path)
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Fprintln(c.OutOrStdout(), string(data))

			return nil
		},
	}

	c.Flags().BoolVar(&save, "save", false, "Write the effective configuration to the config file")

	return c
}
