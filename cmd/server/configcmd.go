package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"prize-portal-service/internal/config"
)

// newConfigCmd prints the effective configuration, useful for checking what
// a deployment environment actually resolves to.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}
