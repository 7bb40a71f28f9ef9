// Package syslibs finds shared libraries the game binaries need but the
// system lacks, and knows which distro packages provide them.
package syslibs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tes3mpctl/internal/execx"
	"tes3mpctl/pkg/logging"
)

// Binaries probed for unresolved libraries, in preference order. The
// .x86_64 files are the real ELF binaries; tes3mp-browser and tes3mp-server
// without suffix are launcher scripts.
var (
	ClientBinaries = []string{"tes3mp.x86_64", "tes3mp"}
	ServerBinaries = []string{"tes3mp-server.x86_64"}
)

// MissingLibraries runs ldd against the first candidate binary present in
// installDir and returns the libraries the loader could not resolve. The
// release's bundled lib/ directory is put on LD_LIBRARY_PATH first, so only
// genuinely missing libraries are reported.
//
// Best effort: a missing binary or a failing ldd yields an empty list.
func MissingLibraries(ctx context.Context, runner execx.Runner, installDir string, candidates ...string) []string {
	var target string
	for _, c := range candidates {
		p := filepath.Join(installDir, c)
		if _, err := os.Stat(p); err == nil {
			target = p
			break
		}
	}
	if target == "" {
		return nil
	}

	var extraEnv []string
	libDir := filepath.Join(installDir, "lib")
	if _, err := os.Stat(libDir); err == nil {
		ldPath := libDir
		if existing := os.Getenv("LD_LIBRARY_PATH"); existing != "" {
			ldPath = libDir + ":" + existing
		}
		extraEnv = append(extraEnv, "LD_LIBRARY_PATH="+ldPath)
	}

	stdout, _, err := runner.RunWithEnv(ctx, extraEnv, "ldd", target)
	if err != nil {
		logging.Debug("syslibs", "ldd failed for %s: %v", target, err)
		return nil
	}
	return ParseMissing(stdout)
}

// ParseMissing extracts library names from ldd output lines of the form
// "libzvbi.so.0 => not found".
func ParseMissing(lddOutput string) []string {
	var missing []string
	for _, line := range strings.Split(lddOutput, "\n") {
		if !strings.Contains(line, "not found") {
			continue
		}
		name, _, _ := strings.Cut(line, "=>")
		name = strings.TrimSpace(name)
		if name != "" {
			missing = append(missing, name)
		}
	}
	return missing
}
