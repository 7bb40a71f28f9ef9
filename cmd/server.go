package cmd

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"tes3mpctl/internal/release"
	"tes3mpctl/internal/server"
	"tes3mpctl/internal/syslibs"
	"tes3mpctl/internal/systemd"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	serverName        string
	serverPassword    string
	serverGenPassword bool
	serverService     bool
	serverYes         bool
)

// serverCmd represents the server command group
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Install and manage a dedicated TES3MP server",
	Long: `Manage the dedicated TES3MP server: install the prebuilt release,
set the server name and password, run it in the foreground, or install it
as a systemd service so it survives reboots.

Examples:
  tes3mpctl server install --yes               # Headless install
  tes3mpctl server install --name "My Server" --gen-password --service
  tes3mpctl server configure --name "My Server"
  tes3mpctl server run                         # Foreground, Ctrl+C to stop
  tes3mpctl server service                     # Install the systemd unit
  tes3mpctl server info                        # What players need to connect
  tes3mpctl server check                       # Hosting readiness snapshot`,
}

var serverInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download and unpack the dedicated server",
	Long: `Download the pinned TES3MP server release, unpack it, and check the
binary for missing system libraries.

With --name/--password/--gen-password the server config is rewritten right
after the install; with --service the systemd unit is installed too, giving
a complete headless server bring-up in one command.`,
	Args: cobra.NoArgs,
	RunE: runServerInstall,
}

var serverConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set the server name and password",
	Long: `Rewrite hostname and password in tes3mp-server-default.cfg, leaving
every other line untouched. Values not given as flags are prompted for; an
empty password disables the password check.`,
	Args: cobra.NoArgs,
	RunE: runServerConfigure,
}

var serverRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the server in the foreground",
	Long: `Run the dedicated server wired to this terminal, with the bundled
lib/ directory on LD_LIBRARY_PATH. Press Ctrl+C to stop it.`,
	Args: cobra.NoArgs,
	RunE: runServerRun,
}

var serverServiceCmd = &cobra.Command{
	Use:   "service",
	Short: "Install the server as a systemd service",
	Long: `Generate a systemd unit for the server and install it via sudo:
the unit file is written, the daemon reloaded, the service enabled and
restarted. Requires systemctl.`,
	Args: cobra.NoArgs,
	RunE: runServerService,
}

var serverInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what players need to connect",
	Args:  cobra.NoArgs,
	RunE:  runServerInfo,
}

var serverCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show a hosting readiness snapshot",
	Args:  cobra.NoArgs,
	RunE:  runServerCheck,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.AddCommand(serverInstallCmd)
	serverCmd.AddCommand(serverConfigureCmd)
	serverCmd.AddCommand(serverRunCmd)
	serverCmd.AddCommand(serverServiceCmd)
	serverCmd.AddCommand(serverInfoCmd)
	serverCmd.AddCommand(serverCheckCmd)

	serverInstallCmd.Flags().StringVar(&serverName, "name", "", "Server name to write into the config")
	serverInstallCmd.Flags().StringVar(&serverPassword, "password", "", "Server password (empty disables the password check)")
	serverInstallCmd.Flags().BoolVar(&serverGenPassword, "gen-password", false, "Generate a random server password")
	serverInstallCmd.Flags().BoolVar(&serverService, "service", false, "Install the systemd unit after installing")
	serverInstallCmd.Flags().BoolVarP(&serverYes, "yes", "y", false, "Skip the confirmation prompt")
	serverInstallCmd.MarkFlagsMutuallyExclusive("password", "gen-password")

	serverConfigureCmd.Flags().StringVar(&serverName, "name", "", "Server name to write into the config")
	serverConfigureCmd.Flags().StringVar(&serverPassword, "password", "", "Server password (empty disables the password check)")
	serverConfigureCmd.Flags().BoolVar(&serverGenPassword, "gen-password", false, "Generate a random server password")
	serverConfigureCmd.MarkFlagsMutuallyExclusive("password", "gen-password")
}

func runServerInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !serverYes {
		if !a.prompter.Confirm(fmt.Sprintf("Install server to %s?", a.cfg.Server.InstallDir), true) {
			return nil
		}
	}

	if _, err := release.InstallServer(ctx, a.console, a.cfg.Server.ReleaseURL, a.cfg.Server.InstallDir); err != nil {
		return err
	}
	root, ok := server.Root(a.cfg.Server.InstallDir)
	if !ok {
		return fmt.Errorf("no server folder found under %s after install", a.cfg.Server.InstallDir)
	}

	// ldd only works on the unpacked binary, so this has to come after.
	a.libs.EnsureFor(ctx, root, syslibs.ServerBinaries...)

	if serverName != "" || serverGenPassword || cmd.Flags().Changed("password") {
		name := serverName
		if name == "" {
			name = server.ReadHostname(root)
		}
		if err := server.WriteSettings(root, name, resolvePassword(a)); err != nil {
			return err
		}
		a.console.Successf("Server configured!")
	}

	if serverService {
		return installServerUnit(ctx, a, root)
	}
	return nil
}

func runServerConfigure(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	root, err := requireServerRoot(a)
	if err != nil {
		return err
	}

	// Flag-driven values win; anything missing is prompted for.
	if serverName == "" {
		serverName = a.prompter.Ask("Server name", server.ReadHostname(root))
	}
	if !serverGenPassword && !cmd.Flags().Changed("password") {
		serverPassword = a.prompter.Ask("Server password (leave empty for none)", "")
	}

	if err := server.WriteSettings(root, serverName, resolvePassword(a)); err != nil {
		return err
	}
	a.console.Successf("Server configured!")
	return nil
}

func runServerRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	root, err := requireServerRoot(a)
	if err != nil {
		return err
	}
	startServerInteractive(cmd.Context(), a, root)
	return nil
}

func runServerService(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	root, err := requireServerRoot(a)
	if err != nil {
		return err
	}
	return installServerUnit(cmd.Context(), a, root)
}

func runServerInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	server.ConnectionInfo(ctx, a.console, a.mesh, a.cfg.Network.Port)
	if publicIP := server.PublicIP(ctx); publicIP != "" {
		a.console.Printf("\nPublic IP: %s:%d\n", publicIP, a.cfg.Network.Port)
		a.console.Printf("Use this if hosting on a VPS/cloud server\n")
	}
	return nil
}

func runServerCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.doctor().RunServer(cmd.Context())
	return nil
}

// resolvePassword returns the effective password: generated, explicitly
// given (possibly empty, which clears it), or the prompted value already
// stored in serverPassword.
func resolvePassword(a *app) string {
	if !serverGenPassword {
		return serverPassword
	}
	password := uuid.NewString()
	a.console.Printf("Generated password: %s\n", password)
	return password
}

// requireServerRoot resolves the unpacked server folder, telling the user
// how to get one when it is missing.
func requireServerRoot(a *app) (string, error) {
	root, ok := server.Root(a.cfg.Server.InstallDir)
	if !ok {
		return "", fmt.Errorf("no server installed under %s (run 'tes3mpctl server install' first)", a.cfg.Server.InstallDir)
	}
	return root, nil
}

// installServerUnit renders and installs the systemd unit for root.
func installServerUnit(ctx context.Context, a *app, root string) error {
	a.console.Headerf("Install Systemd Service")

	spec := systemd.UnitSpec{
		Description:      "TES3MP Server",
		User:             currentUsername(),
		WorkingDirectory: root,
		ExecStart:        filepath.Join(root, server.BinaryName),
	}
	unitText, err := spec.Render()
	if err != nil {
		return fmt.Errorf("rendering unit: %w", err)
	}

	svc := systemd.NewService(a.runner, a.console, a.cfg.Server.UnitName)
	return svc.Install(ctx, unitText)
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// installServerInteractive is the menu path: confirm, install, dependency
// check. ok is false when the user declined or the install failed.
func installServerInteractive(ctx context.Context, a *app) (string, bool) {
	if !a.prompter.Confirm(fmt.Sprintf("Install server to %s?", a.cfg.Server.InstallDir), true) {
		return "", false
	}
	if _, err := release.InstallServer(ctx, a.console, a.cfg.Server.ReleaseURL, a.cfg.Server.InstallDir); err != nil {
		a.console.Errorf("install failed: %v", err)
		return "", false
	}
	root, ok := server.Root(a.cfg.Server.InstallDir)
	if !ok {
		a.console.Errorf("no server folder found under %s after install", a.cfg.Server.InstallDir)
		return "", false
	}
	a.libs.EnsureFor(ctx, root, syslibs.ServerBinaries...)
	return root, true
}

// configureServerInteractive is the menu path for name/password changes.
func configureServerInteractive(a *app, root string) error {
	a.console.Headerf("Configure Server")
	name := a.prompter.Ask("Server name", server.ReadHostname(root))
	password := a.prompter.Ask("Server password (leave empty for none)", "")
	if err := server.WriteSettings(root, name, password); err != nil {
		return err
	}
	a.console.Successf("Server configured!")
	return nil
}

// startServerInteractive mirrors the hosting flow: make sure the mesh is
// up, show players how to connect, then hand the terminal to the server.
func startServerInteractive(ctx context.Context, a *app, root string) {
	// Mesh is optional for hosting; a public IP works without it.
	if !a.mesh.EnsureRunning(ctx) {
		a.console.Warnf("Continuing without Tailscale.")
	}

	server.ConnectionInfo(ctx, a.console, a.mesh, a.cfg.Network.Port)

	if err := server.Run(a.console, root); err != nil {
		a.console.Errorf("%v", err)
	}
}
