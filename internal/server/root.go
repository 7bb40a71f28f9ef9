// Package server manages the dedicated TES3MP server: locating the
// unpacked install, rewriting its config, foreground runs and the
// connection info players need.
package server

import (
	"path/filepath"
)

// rootPatterns covers the casing variants the release wrapper folder has
// shipped with over the years.
var rootPatterns = []string{"TES3MP-Server*", "TES3MP-server*", "tes3mp-server*"}

// Root locates the unpacked server folder under baseDir. ok is false when
// nothing matching is installed.
func Root(baseDir string) (string, bool) {
	for _, pattern := range rootPatterns {
		matches, err := filepath.Glob(filepath.Join(baseDir, pattern))
		if err == nil && len(matches) > 0 {
			return matches[0], true
		}
	}
	return "", false
}
