package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// meshCmd represents the mesh command group
var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Manage the Tailscale mesh network",
	Long: `Inspect and start the Tailscale mesh network used for private
hosting. Tailscale is optional throughout; these commands exist so the
setup does not require reading Tailscale's own docs.`,
}

var meshUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Install and/or start Tailscale",
	Long: `Make the mesh reachable: offer the official install script when the
CLI is missing, then start the daemon (via systemd where available) and
bring the network up.`,
	Args: cobra.NoArgs,
	RunE: runMeshUp,
}

var meshStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the mesh network state",
	Args:  cobra.NoArgs,
	RunE:  runMeshStatus,
}

func init() {
	rootCmd.AddCommand(meshCmd)
	meshCmd.AddCommand(meshUpCmd)
	meshCmd.AddCommand(meshStatusCmd)
}

func runMeshUp(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !a.mesh.EnsureRunning(ctx) {
		return fmt.Errorf("mesh network is not up")
	}
	if ip := a.mesh.IP(ctx); ip != "" {
		a.console.Successf("Mesh is up. This node: %s", ip)
	}
	return nil
}

func runMeshStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !a.mesh.Installed() {
		a.console.Warnf("Tailscale is not installed.")
		a.console.Printf("Install it with: tes3mpctl mesh up\n")
		return nil
	}
	if !a.mesh.Running(ctx) {
		a.console.Warnf("Tailscale is installed but not running.")
		a.console.Printf("Start it with: tes3mpctl mesh up\n")
		return nil
	}

	a.console.Successf("Tailscale is running.")
	if ip := a.mesh.IP(ctx); ip != "" {
		a.console.Printf("This node: %s\n", ip)
	}
	if status, err := a.mesh.StatusJSON(ctx); err == nil {
		if status.Self.HostName != "" {
			a.console.Printf("Machine name: %s\n", status.Self.HostName)
		}
		if status.MagicDNSSuffix != "" {
			a.console.Printf("Tailnet: %s\n", status.MagicDNSSuffix)
		}
	}
	return nil
}
