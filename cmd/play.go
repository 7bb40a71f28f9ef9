package cmd

import (
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Launch the TES3MP client",
	Long: `Launch the TES3MP client through flatpak and wait for it to exit.
No health check runs first; use 'tes3mpctl doctor' when the game refuses
to start.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.launchGame(cmd.Context())
}
