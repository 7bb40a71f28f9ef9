// Package openmw rewrites OpenMW engine configuration files so they point at
// the user's Morrowind data. The rewrite is a reconcile: managed directives
// are owned by the tool and replaced wholesale, everything else in the file
// is passed through untouched.
package openmw

import (
	"os"
	"path/filepath"
	"strings"

	"tes3mpctl/internal/cli"
	"tes3mpctl/pkg/logging"
)

// managedContent and managedArchives are the base-game directives this tool
// owns inside openmw.cfg. Anything else is passthrough.
var (
	managedContent  = []string{"Morrowind.esm", "Tribunal.esm", "Bloodmoon.esm"}
	managedArchives = []string{"Morrowind.bsa", "Tribunal.bsa", "Bloodmoon.bsa"}
)

// Reconcile rewrites the config at path to hold exactly one authoritative
// data= entry plus, when includeContent is set, the fixed base content and
// archive block, while preserving every unmanaged line in original order.
//
// An unreadable or missing file is treated as empty. A second run with the
// same inputs is byte-identical to the first.
func Reconcile(console *cli.Console, path, dataPath string, includeContent bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var passthrough []string
	if data, err := os.ReadFile(path); err == nil {
		for _, line := range splitLines(string(data)) {
			if isManaged(line) {
				continue
			}
			passthrough = append(passthrough, line)
		}
	}

	header := []string{`data="` + dataPath + `"`}
	if includeContent {
		for _, c := range managedContent {
			header = append(header, "content="+c)
		}
		for _, a := range managedArchives {
			header = append(header, "fallback-archive="+a)
		}
	}

	out := strings.Join(append(header, passthrough...), "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return err
	}

	logging.Debug("openmw", "reconciled %s (content=%t, %d passthrough lines)", path, includeContent, len(passthrough))
	console.Successf("Updated %s (content: %t)", filepath.Base(path), includeContent)
	return nil
}

// UpdateAll relinks both engine configs: the global one carries the full
// content block, the install-local one only the data path. Listing the base
// content files in both would trip the engine's "content file specified more
// than once" error.
func UpdateAll(console *cli.Console, globalCfg, localCfg, dataPath string) error {
	if err := Reconcile(console, globalCfg, dataPath, true); err != nil {
		return err
	}
	return Reconcile(console, localCfg, dataPath, false)
}

// splitLines cuts s into lines without end-of-line markers. A single
// trailing newline does not produce an empty final line, keeping
// rewrites stable.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isManaged reports whether line belongs to the managed directive set:
// any data= line, or a content=/fallback-archive= line naming one of the
// base game files. Matching is case-insensitive and tolerates whitespace
// around the key, the separator and the value.
func isManaged(line string) bool {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return false
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "data":
		return true
	case "content":
		return matchesAny(value, managedContent)
	case "fallback-archive":
		return matchesAny(value, managedArchives)
	}
	return false
}

func matchesAny(value string, managed []string) bool {
	for _, m := range managed {
		if strings.EqualFold(value, m) {
			return true
		}
	}
	return false
}
