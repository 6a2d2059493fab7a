package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the artifact repository is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Ping(cmd.Context(), configPath(cmd))
		},
	}
}
