package main

import (
	"fmt"

	"texture-packer/internal/config"
	"texture-packer/internal/logging"

	"github.com/spf13/cobra"
)

func newConfigCmd(fv *flagValues) *cobra.Command {
	var writePath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration in config-file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), fv.verbose)
			cfg, err := resolveConfig(cmd, fv, logger)
			if err != nil {
				return err
			}
			if writePath == "" {
				fmt.Fprint(cmd.OutOrStdout(), config.Serialize(cfg))
				return nil
			}
			if err := config.Save(cfg, writePath); err != nil {
				return err
			}
			logger.Info("Config written", "path", writePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&writePath, "write", "", "write the config to this file instead of stdout")
	return cmd
}
