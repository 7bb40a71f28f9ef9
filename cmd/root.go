package cmd

import (
	"errors"
	"os"

	"tes3mpctl/internal/cli"
	"tes3mpctl/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. These follow common conventions so scripts
// can distinguish "something went wrong" from "a prerequisite is missing".
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodePrereq indicates a required prerequisite (flatpak, systemctl)
	// is missing from the system.
	ExitCodePrereq = 2
)

// rootDebug enables verbose logging across the application.
var rootDebug bool

// rootCmd represents the base command for the tes3mpctl application.
// Called without a subcommand it runs the interactive flow: a pre-flight
// health check followed by the main menu.
var rootCmd = &cobra.Command{
	Use:   "tes3mpctl",
	Short: "Install, configure and play TES3MP without the manual steps",
	Long: `tes3mpctl stands up a TES3MP (Morrowind multiplayer) client or
dedicated server: it downloads the prebuilt release, links your Morrowind
data files into the engine configs, checks for missing system libraries,
and wraps Tailscale and systemd so friends can connect without
port-forwarding.

Run it without arguments for the guided interactive mode; every step is
also available as a subcommand for scripting.`,
	Args: cobra.NoArgs,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitFromFlags(rootDebug)
	},
	RunE: runInteractive,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tes3mpctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var prereq *cli.PrereqError
	if errors.As(err, &prereq) {
		return ExitCodePrereq
	}
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
