package datafiles

import (
	"os"
	"path/filepath"
	"strings"

	"tes3mpctl/internal/cli"
)

// ConfigureInteractive prompts the user for the Data Files location, keeps
// asking until a folder containing Morrowind.esm is given (or the user gives
// up), persists the choice, and invokes onSaved so the engine configs get
// relinked immediately.
//
// Returns the chosen path, or "" when the user bailed out.
func ConfigureInteractive(store *Store, console *cli.Console, prompter cli.Prompter, onSaved func(dataPath string) error) (string, error) {
	console.Headerf("Configure Data Files")

	if current, ok := store.Load(); ok {
		console.Printf("Current path: %s\n", current)
		if !prompter.Confirm("Do you want to change it?", false) {
			return current, nil
		}
	}

	console.Warnf("We need to know where your Morrowind Data Files are located.")
	console.Println("Common paths: ~/Games/Morrowind/Data Files")

	for {
		answer := prompter.Ask("Enter full path to 'Data Files'", "")
		if answer == "" {
			return "", nil
		}
		dataPath := ExpandPath(answer)

		if !Validate(dataPath) {
			console.Errorf("could not find %s in that folder", MarkerFile)
			if !prompter.Confirm("Try again?", true) {
				return "", nil
			}
			continue
		}

		if err := store.Save(dataPath); err != nil {
			return "", err
		}
		console.Successf("Path saved: %s", dataPath)

		if onSaved != nil {
			if err := onSaved(dataPath); err != nil {
				return "", err
			}
		}
		return dataPath, nil
	}
}

// ExpandPath resolves a leading ~ and relative segments the way a shell
// user expects.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
