package health

import "context"

// FakeEnv is a canned Environment for tests. Fields are read on every
// probe, so a test can mutate them between doctor passes to simulate a
// remediation taking effect.
type FakeEnv struct {
	Flatpak  bool
	Engine   bool
	Missing  []string
	Data     DataFilesStatus
	Mesh     bool
	MeshUp   bool
	FreePort bool
	Root     string
	Binary   bool
	ESMPath  string
	ESMOK    bool
	IP       string
}

func (f *FakeEnv) FlatpakInstalled() bool                    { return f.Flatpak }
func (f *FakeEnv) EngineInstalled() bool                     { return f.Engine }
func (f *FakeEnv) MissingLibraries(context.Context) []string { return f.Missing }
func (f *FakeEnv) DataFiles() DataFilesStatus                { return f.Data }
func (f *FakeEnv) MeshInstalled() bool                       { return f.Mesh }
func (f *FakeEnv) MeshRunning(context.Context) bool          { return f.MeshUp }
func (f *FakeEnv) PortFree(int) bool                         { return f.FreePort }
func (f *FakeEnv) ServerInstall() (string, bool)             { return f.Root, f.Binary }
func (f *FakeEnv) StoredESM() (string, bool)                 { return f.ESMPath, f.ESMOK }
func (f *FakeEnv) PublicIP(context.Context) string           { return f.IP }
