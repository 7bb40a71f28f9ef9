package cmd

import (
	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/health"

	"github.com/spf13/cobra"
)

var statusServerMode bool

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a one-pass system status snapshot",
	Long: `Probe the system once and render the result as a table, without
offering any fixes. Use 'tes3mpctl doctor' for the guided remediation.

With --server the hosting-side checks run instead: server binary, ESM
files, port, public IP and mesh network.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusServerMode, "server", false, "Check hosting readiness instead of play readiness")
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if statusServerMode {
		a.doctor().RunServer(ctx)
		return nil
	}

	snap := health.Collect(ctx, a.env, a.cfg.Network.Port)
	a.console.Headerf("System Status Check")
	cli.RenderStatusTable(a.console.Out(), "Action Needed", health.ClientRows(snap))
	return nil
}
