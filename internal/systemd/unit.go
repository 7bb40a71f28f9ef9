// Package systemd generates the server's systemd unit and manages it
// through systemctl, with dbus for state queries where available.
package systemd

import (
	"io"

	"github.com/coreos/go-systemd/v22/unit"
)

// UnitSpec describes a long-running foreground service unit.
type UnitSpec struct {
	Description      string
	User             string
	WorkingDirectory string
	ExecStart        string
}

// Render serializes the unit file text. The service restarts on failure
// with a 5 second backoff and starts after the network is up.
func (s UnitSpec) Render() (string, error) {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", s.Description),
		unit.NewUnitOption("Unit", "After", "network.target"),
		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "User", s.User),
		unit.NewUnitOption("Service", "WorkingDirectory", s.WorkingDirectory),
		unit.NewUnitOption("Service", "ExecStart", s.ExecStart),
		unit.NewUnitOption("Service", "Restart", "always"),
		unit.NewUnitOption("Service", "RestartSec", "5"),
		unit.NewUnitOption("Install", "WantedBy", "multi-user.target"),
	}
	text, err := io.ReadAll(unit.Serialize(opts))
	if err != nil {
		return "", err
	}
	return string(text), nil
}
