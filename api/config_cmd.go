package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimiolaniyan/microboard/internal/config"
)

func newConfigCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var system bool
	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd.Flags(), *cfgFile)
			if err != nil {
				return err
			}
			path, err := config.Write(c, out, system)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "write the system-wide file instead of the user file")
	initCmd.Flags().StringVarP(&out, "output", "o", "", "write to this path")
	addConfigFlags(initCmd.Flags())

	cmd.AddCommand(initCmd)
	return cmd
}
