package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tes3mpctl/internal/cli"
)

func TestClientRows_AllHealthy(t *testing.T) {
	rows := ClientRows(Snapshot{
		FlatpakInstalled: true,
		EngineInstalled:  true,
		Data:             DataFilesStatus{StoredPresent: true, ConfigLinked: true},
		MeshInstalled:    true,
		MeshRunning:      true,
		PortFree:         true,
		Port:             25565,
	})

	assert.Len(t, rows, 6)
	assert.Equal(t, cli.StatusRow{Component: "Flatpak System", State: cli.StateOK, Status: "✓ Installed"}, rows[0])
	assert.Equal(t, cli.StatusRow{Component: "TES3MP Engine", State: cli.StateOK, Status: "✓ Installed"}, rows[1])
	assert.Equal(t, cli.StatusRow{Component: "System Deps", State: cli.StateOK, Status: "✓ Ready"}, rows[2])
	assert.Equal(t, cli.StatusRow{Component: "Morrowind Data", State: cli.StateOK, Status: "✓ Linked"}, rows[3])
	assert.Equal(t, cli.StatusRow{Component: "Tailscale Network", State: cli.StateOK, Status: "✓ Installed (Running)"}, rows[4])
	assert.Equal(t, cli.StatusRow{Component: "UDP Port 25565", State: cli.StateOK, Status: "✓ Free", Action: "Ready to Host"}, rows[5])
}

func TestClientRows_EngineGatedOnFlatpak(t *testing.T) {
	// Engine files on disk count for nothing without flatpak underneath.
	rows := ClientRows(Snapshot{EngineInstalled: true, Port: 25565})

	assert.Equal(t, cli.StateBad, rows[0].State)
	assert.Equal(t, "✗ Missing", rows[0].Status)
	assert.Equal(t, "Install Flatpak", rows[0].Action)

	assert.Equal(t, cli.StateBad, rows[1].State)
	assert.Equal(t, "✗ Missing", rows[1].Status)
	assert.Equal(t, "Fix Flatpak First", rows[1].Action)
}

func TestClientRows_EngineMissing(t *testing.T) {
	rows := ClientRows(Snapshot{FlatpakInstalled: true, Port: 25565})

	assert.Equal(t, "✗ Missing", rows[1].Status)
	assert.Equal(t, "Run Client Setup", rows[1].Action)
}

func TestClientRows_MissingLibsListed(t *testing.T) {
	rows := ClientRows(Snapshot{
		FlatpakInstalled: true,
		MissingLibs:      []string{"libzvbi.so.0", "libluajit-5.1.so.2"},
		Port:             25565,
	})

	assert.Equal(t, cli.StateBad, rows[2].State)
	assert.Equal(t, "✗ Missing: libzvbi.so.0, libluajit-5.1.so.2", rows[2].Status)
	assert.Equal(t, "Install System Libs", rows[2].Action)
}

func TestClientRows_DataStates(t *testing.T) {
	tests := []struct {
		name   string
		data   DataFilesStatus
		state  cli.State
		status string
		action string
	}{
		{
			name:   "linked",
			data:   DataFilesStatus{StoredPresent: true, ConfigLinked: true},
			state:  cli.StateOK,
			status: "✓ Linked",
		},
		{
			name:   "found but not linked",
			data:   DataFilesStatus{StoredPresent: true},
			state:  cli.StateWarn,
			status: "⚠ Found (Not Linked)",
			action: "Run Client Setup",
		},
		{
			name:   "missing",
			state:  cli.StateBad,
			status: "✗ Missing",
			action: "Drop files in folder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ClientRows(Snapshot{Data: tt.data, Port: 25565})
			assert.Equal(t, tt.state, rows[3].State)
			assert.Equal(t, tt.status, rows[3].Status)
			assert.Equal(t, tt.action, rows[3].Action)
		})
	}
}

func TestClientRows_MeshStates(t *testing.T) {
	tests := []struct {
		name      string
		installed bool
		running   bool
		state     cli.State
		status    string
		action    string
	}{
		{
			name:      "running",
			installed: true,
			running:   true,
			state:     cli.StateOK,
			status:    "✓ Installed (Running)",
		},
		{
			name:      "stopped",
			installed: true,
			state:     cli.StateWarn,
			status:    "✓ Installed (Stopped)",
			action:    "Start Service",
		},
		{
			name:   "missing",
			state:  cli.StateBad,
			status: "✗ Missing",
			action: "Install Tailscale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ClientRows(Snapshot{MeshInstalled: tt.installed, MeshRunning: tt.running, Port: 25565})
			assert.Equal(t, tt.state, rows[4].State)
			assert.Equal(t, tt.status, rows[4].Status)
			assert.Equal(t, tt.action, rows[4].Action)
		})
	}
}

func TestClientRows_PortInUse(t *testing.T) {
	rows := ClientRows(Snapshot{Port: 25565})

	assert.Equal(t, cli.StateWarn, rows[5].State)
	assert.Equal(t, "⚠ In Use", rows[5].Status)
	assert.Equal(t, "Server Running?", rows[5].Action)
}

func TestServerRows_FullHouse(t *testing.T) {
	rows := ServerRows(ServerSnapshot{
		Root:          "/opt/TES3MP-Server-linux-0.8.1",
		BinaryPresent: true,
		ESMPath:       "/home/p/morrowind/Data Files",
		ESMPresent:    true,
		PortFree:      true,
		Port:          25565,
		PublicIP:      "203.0.113.9",
		MeshInstalled: true,
		MeshRunning:   true,
	})

	assert.Len(t, rows, 5)
	assert.Equal(t, cli.StatusRow{Component: "Server Binary", State: cli.StateOK, Status: "✓ Installed", Action: "/opt/TES3MP-Server-linux-0.8.1"}, rows[0])
	assert.Equal(t, cli.StatusRow{Component: "ESM Files", State: cli.StateOK, Status: "✓ Found", Action: "/home/p/morrowind/Data Files"}, rows[1])
	assert.Equal(t, cli.StatusRow{Component: "UDP Port 25565", State: cli.StateOK, Status: "✓ Free", Action: "Ready to host"}, rows[2])
	assert.Equal(t, cli.StatusRow{Component: "Public IP", State: cli.StateOK, Status: "203.0.113.9", Action: "Share this with players"}, rows[3])
	assert.Equal(t, cli.StatusRow{Component: "Tailscale", State: cli.StateOK, Status: "✓ Running", Action: "Private network available"}, rows[4])
}

func TestServerRows_BareMachine(t *testing.T) {
	rows := ServerRows(ServerSnapshot{Port: 25565})

	assert.Equal(t, cli.StatusRow{Component: "Server Binary", State: cli.StateWarn, Status: "⚠ Not Installed", Action: "Will install on first run"}, rows[0])
	assert.Equal(t, cli.StatusRow{Component: "ESM Files", State: cli.StateWarn, Status: "⚠ Not Set", Action: "Configure in Server Menu"}, rows[1])
	assert.Equal(t, cli.StatusRow{Component: "UDP Port 25565", State: cli.StateWarn, Status: "⚠ In Use", Action: "Another server running?"}, rows[2])
	assert.Equal(t, cli.StatusRow{Component: "Public IP", State: cli.StateWarn, Status: "Unknown", Action: "Could not detect"}, rows[3])
	assert.Equal(t, cli.StatusRow{Component: "Tailscale", State: cli.StateNone, Status: "Not Installed", Action: "Optional for private hosting"}, rows[4])
}

func TestServerRows_MeshStopped(t *testing.T) {
	rows := ServerRows(ServerSnapshot{Port: 25565, MeshInstalled: true})

	assert.Equal(t, cli.StateWarn, rows[4].State)
	assert.Equal(t, "Stopped", rows[4].Status)
	assert.Equal(t, "Run: sudo tailscale up", rows[4].Action)
}
