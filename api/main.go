// Command microboard serves the account and message HTTP API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "microboard",
		Short:        "microboard is a minimal social posting backend.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: microboard.yaml in . or the user config dir)")

	cmd.AddCommand(newServeCmd(&cfgFile), newConfigCmd(&cfgFile))
	return cmd
}
