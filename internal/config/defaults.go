package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultPort is the UDP port TES3MP servers listen on.
	DefaultPort = 25565

	// FlatpakAppID is the client flatpak application.
	FlatpakAppID = "org.tes3mp.TES3MP"

	// DefaultUnitName is the systemd unit managing the dedicated server.
	DefaultUnitName = "tes3mp.service"

	releaseBase = "https://github.com/TES3MP/TES3MP/releases/download/tes3mp-0.8.1/"

	// DefaultClientReleaseURL is the pinned client build.
	DefaultClientReleaseURL = releaseBase + "tes3mp-GNU+Linux-x86_64-release-0.8.1-68954091c5-6da3fdea59.tar.gz"

	// DefaultServerReleaseURL is the pinned dedicated server build.
	DefaultServerReleaseURL = releaseBase + "tes3mp-server-GNU+Linux-x86_64-release-0.8.1-68954091c5-6da3fdea59.tar.gz"
)

// DefaultClientInstallDir is where the client release unpacks.
func DefaultClientInstallDir() string {
	return filepath.Join(homeDirOrPanic(), ".local", "share", "tes3mp")
}

// DefaultServerInstallDir is where the dedicated server release unpacks.
func DefaultServerInstallDir() string {
	return filepath.Join(homeDirOrPanic(), "Games", "TES3MP_Server")
}

// GlobalOpenMWConfigPath is the engine configuration read by native installs.
func GlobalOpenMWConfigPath() string {
	return filepath.Join(homeDirOrPanic(), ".config", "openmw", "openmw.cfg")
}

// FlatpakOpenMWConfigPath is the engine configuration inside the flatpak
// sandbox, probed when checking data-file linkage.
func FlatpakOpenMWConfigPath() string {
	return filepath.Join(homeDirOrPanic(), ".var", "app", FlatpakAppID, "config", "openmw", "openmw.cfg")
}

// GetDefaultConfig returns the default configuration for tes3mpctl.
func GetDefaultConfig() Config {
	return Config{
		Client: ClientConfig{
			InstallDir: DefaultClientInstallDir(),
			ReleaseURL: DefaultClientReleaseURL,
		},
		Server: ServerConfig{
			InstallDir: DefaultServerInstallDir(),
			ReleaseURL: DefaultServerReleaseURL,
			UnitName:   DefaultUnitName,
		},
		Network: NetworkConfig{
			Port: DefaultPort,
		},
	}
}

func homeDirOrPanic() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
