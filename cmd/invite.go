package cmd

import (
	"github.com/spf13/cobra"
)

// inviteCmd represents the invite command
var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Show how to invite friends onto your Tailscale network",
	Long: `Print the invite walkthrough for your Tailscale network: this node's
mesh IP and name, the admin-console invite path, and the commands friends
run on their side. Requires the mesh to be reachable; you are offered a
start when it is not.`,
	Args: cobra.NoArgs,
	RunE: runInvite,
}

func init() {
	rootCmd.AddCommand(inviteCmd)
}

func runInvite(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.mesh.InviteGuide(cmd.Context(), a.cfg.Network.Port)
}
