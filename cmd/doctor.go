package cmd

import (
	"github.com/spf13/cobra"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the system and fix what it can",
	Long: `Run the pre-flight health check with remediation: missing system
libraries, the engine install and unlinked data files are offered as
fixes, re-checking after each one. A missing flatpak is fatal since the
client cannot run without it (exit code 2).`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.doctor().Run(cmd.Context(), false)
}
