package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(rt *runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write .rndocs/config.yaml with the current settings",
		Long: `Write .rndocs/config.yaml in the working directory.

The file records the settings in effect, so flags passed to init become the
project defaults:

  rndocs init --catalog-dir ./docs/catalog --cache-size 512`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath()
			if rt.cfgFile != "" {
				path = rt.cfgFile
			}
			if err := writeConfig(path, rt.cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rndocs %s\n", version)
		},
	}
}
