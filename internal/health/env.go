// Package health probes the machine's readiness to play or host TES3MP
// and drives the interactive remediation loop around those probes.
package health

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"tes3mpctl/internal/datafiles"
	"tes3mpctl/internal/execx"
	"tes3mpctl/internal/release"
	"tes3mpctl/internal/server"
	"tes3mpctl/internal/syslibs"
	"tes3mpctl/internal/tailscale"
)

// DataFilesStatus carries the two independent data signals: the stored
// folder exists, and an engine config actually points at a data folder.
type DataFilesStatus struct {
	StoredPresent bool
	ConfigLinked  bool
}

// Environment answers the individual probes. Implementations must be free
// of side effects; the doctor re-probes after every remediation.
type Environment interface {
	FlatpakInstalled() bool
	EngineInstalled() bool
	MissingLibraries(ctx context.Context) []string
	DataFiles() DataFilesStatus
	MeshInstalled() bool
	MeshRunning(ctx context.Context) bool
	PortFree(port int) bool
	// ServerInstall reports the discovered server root and whether the
	// launcher binary is inside it.
	ServerInstall() (root string, binaryPresent bool)
	// StoredESM reports the stored data path when it holds Morrowind.esm.
	StoredESM() (path string, ok bool)
	PublicIP(ctx context.Context) string
}

// SystemEnv probes the live system.
type SystemEnv struct {
	Runner execx.Runner
	// Which probes PATH; left nil it defaults to execx.CommandExists.
	Which func(string) bool
	// InstallDir is the client engine folder.
	InstallDir string
	// ServerBaseDir is where server releases get unpacked.
	ServerBaseDir string
	Store         *datafiles.Store
	Mesh          *tailscale.Client
	// ConfigCandidates are the engine configs scanned for a data line,
	// flatpak location first.
	ConfigCandidates []string
}

func (e *SystemEnv) which(tool string) bool {
	if e.Which == nil {
		return execx.CommandExists(tool)
	}
	return e.Which(tool)
}

func (e *SystemEnv) FlatpakInstalled() bool {
	return e.which("flatpak")
}

func (e *SystemEnv) EngineInstalled() bool {
	return release.ClientInstalled(e.InstallDir)
}

func (e *SystemEnv) MissingLibraries(ctx context.Context) []string {
	return syslibs.MissingLibraries(ctx, e.Runner, e.InstallDir, syslibs.ClientBinaries...)
}

func (e *SystemEnv) DataFiles() DataFilesStatus {
	var status DataFilesStatus
	if path, ok := e.Store.Load(); ok {
		if _, err := os.Stat(path); err == nil {
			status.StoredPresent = true
		}
	}
	for _, cfg := range e.ConfigCandidates {
		body, err := os.ReadFile(cfg)
		if err != nil {
			continue
		}
		if strings.Contains(string(body), `data="`) {
			status.ConfigLinked = true
			break
		}
	}
	return status
}

func (e *SystemEnv) MeshInstalled() bool {
	return e.Mesh.Installed()
}

func (e *SystemEnv) MeshRunning(ctx context.Context) bool {
	return e.Mesh.Running(ctx)
}

// PortFree reports whether the UDP game port can still be bound, meaning
// no server occupies it yet.
func (e *SystemEnv) PortFree(port int) bool {
	conn, err := net.ListenPacket("udp4", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (e *SystemEnv) ServerInstall() (string, bool) {
	root, ok := server.Root(e.ServerBaseDir)
	if !ok {
		return "", false
	}
	_, err := os.Stat(filepath.Join(root, server.BinaryName))
	return root, err == nil
}

func (e *SystemEnv) StoredESM() (string, bool) {
	path, ok := e.Store.Load()
	if !ok {
		return "", false
	}
	return path, datafiles.Validate(path)
}

func (e *SystemEnv) PublicIP(ctx context.Context) string {
	return server.PublicIP(ctx)
}
