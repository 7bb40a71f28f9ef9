package cmd

import (
	"tes3mpctl/internal/netdiag"

	"github.com/spf13/cobra"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping <target-ip>",
	Short: "Diagnose the connection to another player",
	Long: `Run the connection doctor against a peer address: one standard ping,
plus a Tailscale tunnel test when the target is a mesh IP (100.x or fd7a:),
followed by a verdict on what to fix.

Example:
  tes3mpctl ping 100.101.50.5`,
	Args: cobra.ExactArgs(1),
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	// The diagnosis itself never fails; the verdict is the output.
	netdiag.NewDoctor(a.runner, a.console, a.mesh).Diagnose(cmd.Context(), args[0], a.cfg.Network.Port)
	return nil
}
