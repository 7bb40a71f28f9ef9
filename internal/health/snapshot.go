package health

import (
	"context"

	"tes3mpctl/pkg/logging"
)

// Snapshot is one pass of client-mode probes. Nothing is cached: the
// doctor collects a fresh snapshot after every remediation.
type Snapshot struct {
	FlatpakInstalled bool
	EngineInstalled  bool
	MissingLibs      []string
	Data             DataFilesStatus
	MeshInstalled    bool
	MeshRunning      bool
	PortFree         bool
	Port             int
}

// Healthy reports play readiness: engine present (which presumes flatpak)
// and data files linked into the engine config.
func (s Snapshot) Healthy() bool {
	return s.FlatpakInstalled && s.EngineInstalled && s.Data.ConfigLinked
}

// Collect runs every client-mode probe once.
func Collect(ctx context.Context, env Environment, port int) Snapshot {
	snap := Snapshot{Port: port}
	snap.FlatpakInstalled = env.FlatpakInstalled()
	snap.EngineInstalled = env.EngineInstalled()
	snap.MissingLibs = env.MissingLibraries(ctx)
	snap.Data = env.DataFiles()
	snap.MeshInstalled = env.MeshInstalled()
	if snap.MeshInstalled {
		snap.MeshRunning = env.MeshRunning(ctx)
	}
	snap.PortFree = env.PortFree(port)

	logging.Debug("health", "snapshot flatpak=%t engine=%t libs=%d linked=%t mesh=%t/%t portfree=%t",
		snap.FlatpakInstalled, snap.EngineInstalled, len(snap.MissingLibs),
		snap.Data.ConfigLinked, snap.MeshInstalled, snap.MeshRunning, snap.PortFree)
	return snap
}

// ServerSnapshot is one pass of server-mode probes.
type ServerSnapshot struct {
	Root          string
	BinaryPresent bool
	ESMPath       string
	ESMPresent    bool
	PortFree      bool
	Port          int
	PublicIP      string
	MeshInstalled bool
	MeshRunning   bool
}

// CollectServer runs every server-mode probe once.
func CollectServer(ctx context.Context, env Environment, port int) ServerSnapshot {
	snap := ServerSnapshot{Port: port}
	snap.Root, snap.BinaryPresent = env.ServerInstall()
	snap.ESMPath, snap.ESMPresent = env.StoredESM()
	snap.PortFree = env.PortFree(port)
	snap.PublicIP = env.PublicIP(ctx)
	snap.MeshInstalled = env.MeshInstalled()
	if snap.MeshInstalled {
		snap.MeshRunning = env.MeshRunning(ctx)
	}
	return snap
}
