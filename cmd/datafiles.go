package cmd

import (
	"fmt"

	"tes3mpctl/internal/datafiles"

	"github.com/spf13/cobra"
)

var datafilesWatch bool

// datafilesCmd represents the datafiles command
var datafilesCmd = &cobra.Command{
	Use:   "datafiles",
	Short: "Tell tes3mpctl where your Morrowind Data Files live",
	Long: `Set or change the stored Morrowind "Data Files" location. The folder
must contain Morrowind.esm; once validated it is remembered and both engine
configs are relinked to it.

With --watch the command waits for Morrowind.esm to appear in the folder,
so you can start it first and copy the game files in afterwards.`,
	Args: cobra.NoArgs,
	RunE: runDatafiles,
}

func init() {
	rootCmd.AddCommand(datafilesCmd)

	datafilesCmd.Flags().BoolVar(&datafilesWatch, "watch", false, "Wait for Morrowind.esm to appear in the folder")
}

func runDatafiles(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if datafilesWatch {
		return watchDatafiles(cmd, a)
	}

	path, err := datafiles.ConfigureInteractive(a.store, a.console, a.prompter, a.relinkConfigs)
	if err != nil {
		return err
	}
	if path == "" {
		a.console.Warnf("Data files not configured.")
	}
	return nil
}

// watchDatafiles blocks until the marker file shows up in the stored (or
// freshly asked-for) folder, then persists and relinks it.
func watchDatafiles(cmd *cobra.Command, a *app) error {
	dir, ok := a.store.Load()
	if !ok {
		answer := a.prompter.Ask("Folder to watch for Morrowind.esm", "")
		if answer == "" {
			return fmt.Errorf("no folder to watch")
		}
		dir = datafiles.ExpandPath(answer)
	}

	a.console.Stepf("Waiting for %s to appear in %s ...", datafiles.MarkerFile, dir)
	a.console.Printf("Copy your Morrowind files in now. Ctrl+C cancels.\n")
	if err := datafiles.WaitForMarker(cmd.Context(), dir); err != nil {
		return err
	}

	a.console.Successf("Found %s!", datafiles.MarkerFile)
	if err := a.store.Save(dir); err != nil {
		return err
	}
	return a.relinkConfigs(dir)
}
