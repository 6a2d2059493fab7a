package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate [group:name:version...]",
		Short: "Print the download URL and cache path of libraries",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Locate(cmd.Context(), args, configPath(cmd))
		},
	}
}
