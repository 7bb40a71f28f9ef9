package systemd

import (
	"context"
	"fmt"
	"strings"

	sddbus "github.com/coreos/go-systemd/v22/dbus"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
	"tes3mpctl/pkg/logging"
)

const unitDir = "/etc/systemd/system/"

// Service manages one systemd unit. Mutations go through sudo systemctl;
// state queries prefer the system dbus and degrade to systemctl.
type Service struct {
	Runner  execx.Runner
	Console *cli.Console
	// Which probes PATH; left nil it defaults to execx.CommandExists.
	Which func(string) bool
	// Unit is the full unit name, e.g. "tes3mp.service".
	Unit string

	dbusState func(ctx context.Context, unit string) (string, error)
}

// NewService returns a Service with production defaults.
func NewService(runner execx.Runner, console *cli.Console, unitName string) *Service {
	return &Service{
		Runner:    runner,
		Console:   console,
		Which:     execx.CommandExists,
		Unit:      unitName,
		dbusState: queryActiveState,
	}
}

// Available reports whether systemctl exists on PATH.
func (s *Service) Available() bool {
	which := s.Which
	if which == nil {
		which = execx.CommandExists
	}
	return which("systemctl")
}

// Install writes the unit file via sudo tee, then reloads the daemon,
// enables and restarts the unit. Each step runs exactly once; the first
// failure aborts.
func (s *Service) Install(ctx context.Context, unitText string) error {
	if !s.Available() {
		return &cli.PrereqError{Tool: "systemctl", Hint: "systemd is required to install the service"}
	}

	path := unitDir + s.Unit
	s.Console.Stepf("Creating %s...", path)
	if _, _, err := s.Runner.RunWithInput(ctx, unitText, "sudo", "tee", path); err != nil {
		return fmt.Errorf("writing unit file: %w", err)
	}

	s.Console.Stepf("Reloading systemd daemon...")
	if err := s.Runner.RunInteractive(ctx, "sudo", "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("reloading systemd: %w", err)
	}

	s.Console.Stepf("Enabling %s...", s.Unit)
	if err := s.Runner.RunInteractive(ctx, "sudo", "systemctl", "enable", s.Unit); err != nil {
		return fmt.Errorf("enabling %s: %w", s.Unit, err)
	}

	s.Console.Stepf("Starting %s...", s.Unit)
	if err := s.Runner.RunInteractive(ctx, "sudo", "systemctl", "restart", s.Unit); err != nil {
		return fmt.Errorf("starting %s: %w", s.Unit, err)
	}

	s.Console.Successf("Service installed and running!")
	s.Console.Printf("Use 'sudo systemctl status %s' to check status.\n", strings.TrimSuffix(s.Unit, ".service"))
	return nil
}

// ActiveState reports the unit's state ("active", "inactive", "failed").
// Environments without a system dbus fall back to systemctl; when neither
// answers the state is "unknown".
func (s *Service) ActiveState(ctx context.Context) string {
	if state, err := s.dbusState(ctx, s.Unit); err == nil {
		return state
	} else {
		logging.Debug("server", "dbus state query failed, falling back to systemctl: %v", err)
	}

	// is-active exits non-zero for inactive units but still prints the
	// state, so stdout wins over the exit code.
	stdout, _, _ := s.Runner.Run(ctx, "systemctl", "is-active", s.Unit)
	if state := strings.TrimSpace(stdout); state != "" {
		return state
	}
	return "unknown"
}

func queryActiveState(ctx context.Context, unitName string) (string, error) {
	conn, err := sddbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	prop, err := conn.GetUnitPropertyContext(ctx, unitName, "ActiveState")
	if err != nil {
		return "", err
	}
	state, ok := prop.Value.Value().(string)
	if !ok {
		return "", fmt.Errorf("unexpected ActiveState payload %v", prop.Value)
	}
	return state, nil
}
