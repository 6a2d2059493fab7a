package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/libload/internal/app"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [group:name:version...]",
		Short: "Resolve, cache and activate the declared libraries",
		Long: "Resolve, cache and activate the libraries declared in libload.yaml.\n" +
			"Libraries given as arguments replace the declared ones.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			trace, _ := cmd.Flags().GetBool("trace")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")
			eval, _ := cmd.Flags().GetString("eval")
			resolve, _ := cmd.Flags().GetStringSlice("resolve")

			return c.app.Sync(cmd.Context(), args, app.SyncOptions{
				ConfigPath:  configPath(cmd),
				JSON:        jsonOut,
				Trace:       trace,
				MetricsFile: metricsFile,
				Eval:        eval,
				Resolve:     resolve,
			})
		},
	}
	cmd.Flags().Bool("json", false, "Write log output as JSON")
	cmd.Flags().Bool("trace", false, "Log a line for every finished resolution span")
	cmd.Flags().String("metrics-file", "", "Write resolution metrics to a node-exporter textfile")
	cmd.Flags().StringP("eval", "e", "", "Evaluate an expression against the activated sources (interp activator)")
	cmd.Flags().StringSliceP("resolve", "r", nil, "Print the archive providing each class or resource name")
	return cmd
}
