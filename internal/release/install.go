package release

import (
	"context"
	"os"
	"path/filepath"

	"tes3mpctl/internal/cli"
)

// ClientMarker is the file whose presence means the engine is installed.
const ClientMarker = "tes3mp-browser"

// Binaries shipped without a reliable exec bit.
var clientExecutables = []string{"tes3mp-browser", "tes3mp-server", "tes3mp"}

// ClientInstalled reports whether installDir holds an unpacked engine.
func ClientInstalled(installDir string) bool {
	_, err := os.Stat(filepath.Join(installDir, ClientMarker))
	return err == nil
}

// InstallClient downloads and unpacks the engine release into installDir.
// The wrapper folder inside the tarball is flattened away so the binaries
// land directly in installDir. Existing installs are left alone.
func InstallClient(ctx context.Context, console *cli.Console, url, installDir string) error {
	if ClientInstalled(installDir) {
		console.Stepf("TES3MP is already installed.")
		return nil
	}
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return err
	}

	console.Warnf("Downloading TES3MP release...")
	archive := filepath.Join(installDir, "tes3mp.tar.gz")
	if err := Download(ctx, url, archive); err != nil {
		return err
	}

	console.Successf("Download complete. Extracting...")
	if err := Extract(archive, installDir); err != nil {
		return err
	}
	os.Remove(archive)

	if err := Flatten(installDir); err != nil {
		return err
	}
	MarkExecutable(installDir)

	console.Successf("Installed successfully.")
	return nil
}

// InstallServer downloads and unpacks the dedicated server release into
// serverDir. The versioned folder inside the tarball is kept; discovery
// globs for it later. An existing serverDir is treated as installed.
func InstallServer(ctx context.Context, console *cli.Console, url, serverDir string) (bool, error) {
	if _, err := os.Stat(serverDir); err == nil {
		console.Warnf("Server already installed at %s", serverDir)
		return false, nil
	}
	if err := os.MkdirAll(serverDir, 0o755); err != nil {
		return false, err
	}

	console.Stepf("Downloading Server binaries...")
	archive := filepath.Join(serverDir, "server.tar.gz")
	if err := Download(ctx, url, archive); err != nil {
		return false, err
	}

	console.Stepf("Extracting...")
	if err := Extract(archive, serverDir); err != nil {
		return false, err
	}
	os.Remove(archive)

	console.Successf("Server installed!")
	return true, nil
}

// MarkExecutable sets the exec bits on the shipped binaries. Missing
// binaries are skipped, the browser-only layout has no tes3mp-server.
func MarkExecutable(installDir string) {
	for _, name := range clientExecutables {
		p := filepath.Join(installDir, name)
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		os.Chmod(p, info.Mode()|0o111)
	}
}
