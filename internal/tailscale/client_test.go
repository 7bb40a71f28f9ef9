package tailscale

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
)

func newTestClient(runner *execx.FakeRunner, prompter *cli.ScriptedPrompter, home string) (*Client, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Client{
		Runner:   runner,
		Console:  cli.NewConsole(&buf),
		Prompter: prompter,
		Which:    func(tool string) bool { return tool == "tailscale" },
		Home:     home,
	}, &buf
}

// userspaceSocket plants a fake tailscaled.sock under home and returns its path.
func userspaceSocket(t *testing.T, home string) string {
	t.Helper()
	dir := filepath.Join(home, ".tailscale")
	require.NoError(t, os.MkdirAll(dir, 0755))
	sock := filepath.Join(dir, "tailscaled.sock")
	require.NoError(t, os.WriteFile(sock, nil, 0644))
	return sock
}

func TestIP(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale ip -4", execx.FakeResult{Stdout: "100.64.0.1\n"})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())

	assert.Equal(t, "100.64.0.1", client.IP(context.Background()))
}

func TestIP_PrefersUserspaceSocket(t *testing.T) {
	home := t.TempDir()
	sock := userspaceSocket(t, home)

	runner := execx.NewFakeRunner().
		Script("tailscale --socket "+sock+" ip -4", execx.FakeResult{Stdout: "100.64.0.2\n"})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, home)

	assert.Equal(t, "100.64.0.2", client.IP(context.Background()))
	require.Len(t, runner.Calls, 1)
	assert.Contains(t, runner.Calls[0], "--socket")
}

func TestIP_SocketFailureFallsBackToDefault(t *testing.T) {
	home := t.TempDir()
	sock := userspaceSocket(t, home)

	runner := execx.NewFakeRunner().
		Script("tailscale --socket "+sock+" ip -4", execx.FakeResult{Err: errors.New("no daemon")}).
		Script("tailscale ip -4", execx.FakeResult{Stdout: "100.64.0.3\n"})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, home)

	assert.Equal(t, "100.64.0.3", client.IP(context.Background()))
	require.Len(t, runner.Calls, 2)
}

func TestIP_NotInstalled(t *testing.T) {
	runner := execx.NewFakeRunner()
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())
	client.Which = func(string) bool { return false }

	assert.Empty(t, client.IP(context.Background()))
	assert.Empty(t, runner.Calls)
}

func TestRunning(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale status", execx.FakeResult{Stdout: "100.64.0.1 host ..."})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())

	assert.True(t, client.Running(context.Background()))
}

func TestRunning_DaemonDown(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale status", execx.FakeResult{Err: errors.New("failed to connect")})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())

	assert.False(t, client.Running(context.Background()))
}

func TestStatusJSON(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale status --json", execx.FakeResult{
		Stdout: `{"Self":{"HostName":"morrowind-box"},"MagicDNSSuffix":"tail1234.ts.net"}`,
	})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())

	status, err := client.StatusJSON(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "morrowind-box", status.Self.HostName)
	assert.Equal(t, "tail1234.ts.net", status.MagicDNSSuffix)
}

func TestStatusJSON_BadPayload(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale status --json", execx.FakeResult{Stdout: "not json"})
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())

	_, err := client.StatusJSON(context.Background())
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	tests := []struct {
		name string
		res  execx.FakeResult
		want PingResult
	}{
		{
			name: "direct path",
			res:  execx.FakeResult{Stdout: "pong from peer (100.64.0.9) via 192.168.1.4:41641 in 12ms\n"},
			want: PingResult{OK: true},
		},
		{
			name: "relayed path",
			res:  execx.FakeResult{Stdout: "pong from peer (100.64.0.9) via DERP(fra) in 88ms\n"},
			want: PingResult{OK: true, Relayed: true},
		},
		{
			name: "tunnel broken",
			res:  execx.FakeResult{Stderr: "no matching peer\n", Err: errors.New("exit status 1")},
			want: PingResult{Detail: "no matching peer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := execx.NewFakeRunner().Script("tailscale ping --timeout=5s --c=1 100.64.0.9", tt.res)
			client, _ := newTestClient(runner, &cli.ScriptedPrompter{}, t.TempDir())

			assert.Equal(t, tt.want, client.Ping(context.Background(), "100.64.0.9"))
		})
	}
}

func TestPing_NotInstalled(t *testing.T) {
	client, _ := newTestClient(execx.NewFakeRunner(), &cli.ScriptedPrompter{}, t.TempDir())
	client.Which = func(string) bool { return false }

	got := client.Ping(context.Background(), "100.64.0.9")
	assert.False(t, got.OK)
	assert.Contains(t, got.Detail, "not found")
}

func TestInstall_Declined(t *testing.T) {
	runner := execx.NewFakeRunner()
	client, _ := newTestClient(runner, &cli.ScriptedPrompter{Confirms: []bool{false}}, t.TempDir())

	assert.False(t, client.Install(context.Background()))
	assert.Empty(t, runner.Calls)
}

func TestInstall_RunsOfficialScript(t *testing.T) {
	runner := execx.NewFakeRunner().
		Script("sh -c "+installScript, execx.FakeResult{})
	client, out := newTestClient(runner, &cli.ScriptedPrompter{Confirms: []bool{true}}, t.TempDir())

	assert.True(t, client.Install(context.Background()))
	assert.Contains(t, out.String(), "Tailscale installed!")
	assert.Contains(t, out.String(), "sudo tailscale up")
}

func TestInstall_ScriptFailure(t *testing.T) {
	runner := execx.NewFakeRunner().
		Script("sh -c "+installScript, execx.FakeResult{Err: errors.New("exit status 1")})
	client, out := newTestClient(runner, &cli.ScriptedPrompter{Confirms: []bool{true}}, t.TempDir())

	assert.False(t, client.Install(context.Background()))
	assert.Contains(t, out.String(), "Try manually: curl -fsSL")
}

func TestEnsureRunning_AlreadyUp(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale status", execx.FakeResult{})
	prompter := &cli.ScriptedPrompter{}
	client, _ := newTestClient(runner, prompter, t.TempDir())

	assert.True(t, client.EnsureRunning(context.Background()))
	assert.Empty(t, prompter.Asked)
}

func TestEnsureRunning_NotInstalledOffersInstall(t *testing.T) {
	runner := execx.NewFakeRunner()
	prompter := &cli.ScriptedPrompter{Confirms: []bool{false}}
	client, out := newTestClient(runner, prompter, t.TempDir())
	client.Which = func(string) bool { return false }

	assert.False(t, client.EnsureRunning(context.Background()))
	assert.Contains(t, out.String(), "Tailscale is not installed")
	require.Len(t, prompter.Asked, 1)
	assert.Equal(t, "Install Tailscale now?", prompter.Asked[0])
}

func TestEnsureRunning_StartDeclined(t *testing.T) {
	runner := execx.NewFakeRunner()
	prompter := &cli.ScriptedPrompter{Confirms: []bool{false}}
	client, out := newTestClient(runner, prompter, t.TempDir())

	assert.False(t, client.EnsureRunning(context.Background()))
	assert.Contains(t, out.String(), "Tailscale is not running")
}

func TestEnsureRunning_SystemdPath(t *testing.T) {
	runner := execx.NewFakeRunner().
		Script("systemctl is-system-running", execx.FakeResult{Stdout: "running\n"}).
		Script("sudo systemctl start tailscaled", execx.FakeResult{}).
		Script("sudo tailscale up", execx.FakeResult{})
	prompter := &cli.ScriptedPrompter{Confirms: []bool{true}}
	client, out := newTestClient(runner, prompter, t.TempDir())

	assert.True(t, client.EnsureRunning(context.Background()))
	assert.True(t, runner.CalledWith("sudo systemctl start tailscaled"))
	assert.True(t, runner.CalledWith("sudo tailscale up"))
	assert.Contains(t, out.String(), "Tailscale started!")
}

func TestEnsureRunning_NoSystemdPrintsInstructions(t *testing.T) {
	// systemctl is-system-running stays unscripted, so the probe fails.
	runner := execx.NewFakeRunner()
	prompter := &cli.ScriptedPrompter{Confirms: []bool{true}}
	client, out := newTestClient(runner, prompter, t.TempDir())

	assert.False(t, client.EnsureRunning(context.Background()))
	assert.Contains(t, out.String(), "--tun=userspace-networking")
	assert.False(t, runner.CalledWith("sudo tailscaled"), "daemon must not be spawned")
}
