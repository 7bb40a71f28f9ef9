package health

import (
	"fmt"
	"strings"

	"tes3mpctl/internal/cli"
)

// ClientRows converts a snapshot into the pre-flight status table. Row
// order mirrors the dependency chain: platform, engine, libraries, data,
// network, port.
func ClientRows(s Snapshot) []cli.StatusRow {
	rows := make([]cli.StatusRow, 0, 6)

	flatpak := cli.StatusRow{Component: "Flatpak System", State: cli.StateOK, Status: "✓ Installed"}
	if !s.FlatpakInstalled {
		flatpak = cli.StatusRow{Component: "Flatpak System", State: cli.StateBad, Status: "✗ Missing", Action: "Install Flatpak"}
	}
	rows = append(rows, flatpak)

	// The engine row only counts when flatpak is usable underneath it.
	engine := cli.StatusRow{Component: "TES3MP Engine", State: cli.StateOK, Status: "✓ Installed"}
	if !s.FlatpakInstalled || !s.EngineInstalled {
		action := "Run Client Setup"
		if !s.FlatpakInstalled {
			action = "Fix Flatpak First"
		}
		engine = cli.StatusRow{Component: "TES3MP Engine", State: cli.StateBad, Status: "✗ Missing", Action: action}
	}
	rows = append(rows, engine)

	deps := cli.StatusRow{Component: "System Deps", State: cli.StateOK, Status: "✓ Ready"}
	if len(s.MissingLibs) > 0 {
		deps = cli.StatusRow{
			Component: "System Deps",
			State:     cli.StateBad,
			Status:    "✗ Missing: " + strings.Join(s.MissingLibs, ", "),
			Action:    "Install System Libs",
		}
	}
	rows = append(rows, deps)

	data := cli.StatusRow{Component: "Morrowind Data"}
	switch {
	case s.Data.ConfigLinked:
		data.State, data.Status = cli.StateOK, "✓ Linked"
	case s.Data.StoredPresent:
		data.State, data.Status, data.Action = cli.StateWarn, "⚠ Found (Not Linked)", "Run Client Setup"
	default:
		data.State, data.Status, data.Action = cli.StateBad, "✗ Missing", "Drop files in folder"
	}
	rows = append(rows, data)

	mesh := cli.StatusRow{Component: "Tailscale Network"}
	switch {
	case s.MeshInstalled && s.MeshRunning:
		mesh.State, mesh.Status = cli.StateOK, "✓ Installed (Running)"
	case s.MeshInstalled:
		mesh.State, mesh.Status, mesh.Action = cli.StateWarn, "✓ Installed (Stopped)", "Start Service"
	default:
		mesh.State, mesh.Status, mesh.Action = cli.StateBad, "✗ Missing", "Install Tailscale"
	}
	rows = append(rows, mesh)

	port := cli.StatusRow{Component: fmt.Sprintf("UDP Port %d", s.Port)}
	if s.PortFree {
		port.State, port.Status, port.Action = cli.StateOK, "✓ Free", "Ready to Host"
	} else {
		port.State, port.Status, port.Action = cli.StateWarn, "⚠ In Use", "Server Running?"
	}
	rows = append(rows, port)

	return rows
}

// ServerRows converts a server snapshot into its status table. Hosting has
// no hard requirements, so everything below renders as notes, not actions.
func ServerRows(s ServerSnapshot) []cli.StatusRow {
	rows := make([]cli.StatusRow, 0, 5)

	bin := cli.StatusRow{Component: "Server Binary", State: cli.StateWarn, Status: "⚠ Not Installed", Action: "Will install on first run"}
	if s.BinaryPresent {
		bin = cli.StatusRow{Component: "Server Binary", State: cli.StateOK, Status: "✓ Installed", Action: s.Root}
	}
	rows = append(rows, bin)

	esm := cli.StatusRow{Component: "ESM Files", State: cli.StateWarn, Status: "⚠ Not Set", Action: "Configure in Server Menu"}
	if s.ESMPresent {
		esm = cli.StatusRow{Component: "ESM Files", State: cli.StateOK, Status: "✓ Found", Action: s.ESMPath}
	}
	rows = append(rows, esm)

	port := cli.StatusRow{Component: fmt.Sprintf("UDP Port %d", s.Port)}
	if s.PortFree {
		port.State, port.Status, port.Action = cli.StateOK, "✓ Free", "Ready to host"
	} else {
		port.State, port.Status, port.Action = cli.StateWarn, "⚠ In Use", "Another server running?"
	}
	rows = append(rows, port)

	ip := cli.StatusRow{Component: "Public IP", State: cli.StateWarn, Status: "Unknown", Action: "Could not detect"}
	if s.PublicIP != "" {
		ip = cli.StatusRow{Component: "Public IP", State: cli.StateOK, Status: s.PublicIP, Action: "Share this with players"}
	}
	rows = append(rows, ip)

	mesh := cli.StatusRow{Component: "Tailscale", State: cli.StateNone, Status: "Not Installed", Action: "Optional for private hosting"}
	switch {
	case s.MeshInstalled && s.MeshRunning:
		mesh = cli.StatusRow{Component: "Tailscale", State: cli.StateOK, Status: "✓ Running", Action: "Private network available"}
	case s.MeshInstalled:
		mesh = cli.StatusRow{Component: "Tailscale", State: cli.StateWarn, Status: "Stopped", Action: "Run: sudo tailscale up"}
	}
	rows = append(rows, mesh)

	return rows
}
