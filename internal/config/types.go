package config

// Config is the top-level tool configuration for tes3mpctl.
//
// Everything has a working default; the config file exists for the few
// people running a nonstandard port or install location.
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Server  ServerConfig  `yaml:"server"`
	Network NetworkConfig `yaml:"network"`
}

// ClientConfig configures the game client installation.
type ClientConfig struct {
	InstallDir string `yaml:"installDir,omitempty"` // default: ~/.local/share/tes3mp
	ReleaseURL string `yaml:"releaseURL,omitempty"` // default: the pinned 0.8.1 build
}

// ServerConfig configures the dedicated server installation.
type ServerConfig struct {
	InstallDir string `yaml:"installDir,omitempty"` // default: ~/Games/TES3MP_Server
	ReleaseURL string `yaml:"releaseURL,omitempty"` // default: the pinned 0.8.1 build
	UnitName   string `yaml:"unitName,omitempty"`   // default: tes3mp.service
}

// NetworkConfig configures networking for hosting and diagnostics.
type NetworkConfig struct {
	Port int `yaml:"port,omitempty"` // UDP game port, default: 25565
}
