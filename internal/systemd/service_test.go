package systemd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
)

func newTestService(runner *execx.FakeRunner, hasSystemctl bool) (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Service{
		Runner:  runner,
		Console: cli.NewConsole(&buf),
		Which:   func(string) bool { return hasSystemctl },
		Unit:    "tes3mp.service",
		dbusState: func(context.Context, string) (string, error) {
			return "", errors.New("no system bus")
		},
	}, &buf
}

func TestInstall(t *testing.T) {
	runner := execx.NewFakeRunner().
		Script("sudo tee /etc/systemd/system/tes3mp.service", execx.FakeResult{}).
		Script("sudo systemctl daemon-reload", execx.FakeResult{}).
		Script("sudo systemctl enable tes3mp.service", execx.FakeResult{}).
		Script("sudo systemctl restart tes3mp.service", execx.FakeResult{})
	svc, out := newTestService(runner, true)

	require.NoError(t, svc.Install(context.Background(), "[Unit]\nDescription=TES3MP Server\n"))

	require.Len(t, runner.Calls, 4)
	assert.Equal(t, []string{
		"sudo tee /etc/systemd/system/tes3mp.service",
		"sudo systemctl daemon-reload",
		"sudo systemctl enable tes3mp.service",
		"sudo systemctl restart tes3mp.service",
	}, runner.Calls)
	assert.Equal(t, "[Unit]\nDescription=TES3MP Server\n", runner.Inputs["sudo tee /etc/systemd/system/tes3mp.service"])
	assert.Contains(t, out.String(), "Service installed and running!")
	assert.Contains(t, out.String(), "systemctl status tes3mp")
}

func TestInstall_NoSystemctl(t *testing.T) {
	runner := execx.NewFakeRunner()
	svc, _ := newTestService(runner, false)

	err := svc.Install(context.Background(), "[Unit]\n")

	var prereq *cli.PrereqError
	require.ErrorAs(t, err, &prereq)
	assert.Equal(t, "systemctl", prereq.Tool)
	assert.Empty(t, runner.Calls)
}

func TestInstall_StopsAtFirstFailure(t *testing.T) {
	runner := execx.NewFakeRunner().
		Script("sudo tee /etc/systemd/system/tes3mp.service", execx.FakeResult{}).
		Script("sudo systemctl daemon-reload", execx.FakeResult{Err: errors.New("exit status 1")})
	svc, _ := newTestService(runner, true)

	err := svc.Install(context.Background(), "[Unit]\n")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reloading systemd")
	assert.Len(t, runner.Calls, 2, "enable and restart must not run")
}

func TestActiveState_DBus(t *testing.T) {
	runner := execx.NewFakeRunner()
	svc, _ := newTestService(runner, true)
	svc.dbusState = func(context.Context, string) (string, error) { return "active", nil }

	assert.Equal(t, "active", svc.ActiveState(context.Background()))
	assert.Empty(t, runner.Calls, "dbus answer skips systemctl")
}

func TestActiveState_SystemctlFallback(t *testing.T) {
	// is-active prints the state and exits non-zero for inactive units.
	runner := execx.NewFakeRunner().
		Script("systemctl is-active tes3mp.service", execx.FakeResult{Stdout: "inactive\n", Err: errors.New("exit status 3")})
	svc, _ := newTestService(runner, true)

	assert.Equal(t, "inactive", svc.ActiveState(context.Background()))
}

func TestActiveState_Unknown(t *testing.T) {
	svc, _ := newTestService(execx.NewFakeRunner(), true)

	assert.Equal(t, "unknown", svc.ActiveState(context.Background()))
}
