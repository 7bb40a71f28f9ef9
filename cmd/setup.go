package cmd

import (
	"github.com/spf13/cobra"
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the client and link your Morrowind data files",
	Long: `Run the client setup: download and unpack the TES3MP release if it
is missing, resolve the Morrowind "Data Files" location (remembered across
runs), rewrite both openmw.cfg files to point at it, and mark the shipped
binaries executable.

Safe to re-run; an existing install is left alone and the configs are
relinked.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.setupClient(cmd.Context())
}
