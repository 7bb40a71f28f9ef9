// Package tailscale wraps the tailscale CLI. All commands honor the
// userspace daemon socket (~/.tailscale/tailscaled.sock) when one exists,
// falling back to the default socket, so the wrapper works in containers
// and restricted environments where tailscaled runs without root.
package tailscale

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
	"tes3mpctl/pkg/logging"
)

const installScript = "curl -fsSL https://tailscale.com/install.sh | sh"

// Client drives the tailscale CLI for probes and interactive flows.
type Client struct {
	Runner   execx.Runner
	Console  *cli.Console
	Prompter cli.Prompter
	// Which probes PATH; left nil it defaults to execx.CommandExists.
	Which func(string) bool
	// Home anchors userspace socket discovery; tests point it elsewhere.
	Home string
}

// NewClient returns a Client with production defaults.
func NewClient(runner execx.Runner, console *cli.Console, prompter cli.Prompter) *Client {
	home, _ := os.UserHomeDir()
	return &Client{
		Runner:   runner,
		Console:  console,
		Prompter: prompter,
		Which:    execx.CommandExists,
		Home:     home,
	}
}

// Installed reports whether the tailscale CLI is on PATH.
func (c *Client) Installed() bool {
	which := c.Which
	if which == nil {
		which = execx.CommandExists
	}
	return which("tailscale")
}

// socket returns the userspace daemon socket path, or "" when absent.
func (c *Client) socket() string {
	if c.Home == "" {
		return ""
	}
	p := filepath.Join(c.Home, ".tailscale", "tailscaled.sock")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// run invokes the CLI, trying the userspace socket variant first when the
// socket exists and degrading to the default socket on failure.
func (c *Client) run(ctx context.Context, args ...string) (string, string, error) {
	if sock := c.socket(); sock != "" {
		stdout, stderr, err := c.Runner.Run(ctx, "tailscale", append([]string{"--socket", sock}, args...)...)
		if err == nil {
			return stdout, stderr, nil
		}
		logging.Debug("mesh", "userspace socket attempt failed, retrying default: %v", err)
	}
	return c.Runner.Run(ctx, "tailscale", args...)
}

// IP returns this node's IPv4 mesh address, or "" when unavailable.
func (c *Client) IP(ctx context.Context) string {
	if !c.Installed() {
		return ""
	}
	stdout, _, err := c.run(ctx, "ip", "-4")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(stdout)
}

// Running reports whether a tailscale daemon answers on either socket.
func (c *Client) Running(ctx context.Context) bool {
	if !c.Installed() {
		return false
	}
	_, _, err := c.run(ctx, "status")
	return err == nil
}

// Status is the subset of `tailscale status --json` the invite guide uses.
type Status struct {
	Self           SelfStatus `json:"Self"`
	MagicDNSSuffix string     `json:"MagicDNSSuffix"`
}

// SelfStatus describes this node.
type SelfStatus struct {
	HostName string `json:"HostName"`
}

// StatusJSON queries the daemon for machine name and tailnet suffix.
func (c *Client) StatusJSON(ctx context.Context) (Status, error) {
	var status Status
	stdout, _, err := c.run(ctx, "status", "--json")
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal([]byte(stdout), &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// PingResult is the outcome of one tunnel ping.
type PingResult struct {
	OK bool
	// Relayed is true when the path goes via a DERP relay instead of a
	// direct connection.
	Relayed bool
	// Detail carries stderr when the tunnel is broken.
	Detail string
}

// Ping tests the encrypted tunnel to target. Establishing a tunnel takes a
// moment, hence the 5 second timeout.
func (c *Client) Ping(ctx context.Context, target string) PingResult {
	if !c.Installed() {
		return PingResult{Detail: "tailscale CLI not found"}
	}
	stdout, stderr, err := c.run(ctx, "ping", "--timeout=5s", "--c=1", target)
	if err != nil {
		return PingResult{Detail: strings.TrimSpace(stderr)}
	}
	return PingResult{OK: true, Relayed: strings.Contains(stdout, "via DERP")}
}

// Install runs the official install script after confirmation. Returns true
// when the script succeeded.
func (c *Client) Install(ctx context.Context) bool {
	c.Console.Headerf("Install Tailscale")
	c.Console.Printf("Tailscale provides secure private networking for your server.\n")
	c.Console.Printf("This is optional, hosting over public IP works without it.\n\n")

	if !c.Prompter.Confirm("Install Tailscale now?", true) {
		return false
	}

	c.Console.Stepf("Installing Tailscale...")
	if err := c.Runner.RunInteractive(ctx, "sh", "-c", installScript); err != nil {
		c.Console.Errorf("installation failed: %v", err)
		c.Console.Printf("Try manually: %s\n", installScript)
		return false
	}
	c.Console.Successf("Tailscale installed!")
	c.Console.Printf("Run 'sudo tailscale up' to connect.\n")
	return true
}

// EnsureRunning checks the daemon and walks the user through install or
// startup when needed. Returns true when the mesh ended up reachable.
func (c *Client) EnsureRunning(ctx context.Context) bool {
	if c.Running(ctx) {
		return true
	}

	if !c.Installed() {
		c.Console.Warnf("Tailscale is not installed.")
		c.Install(ctx)
		// A fresh install still needs `tailscale up` by hand.
		return false
	}

	c.Console.Warnf("Tailscale is not running.")
	if !c.Prompter.Confirm("Start Tailscale now?", true) {
		return false
	}

	if !c.systemdAvailable(ctx) {
		// Containers, Cloud Shell and the like: the daemon has to be
		// started by hand with userspace networking.
		stateDir := filepath.Join(c.Home, ".tailscale")
		c.Console.Warnf("Systemd is not available. Start the daemon manually:")
		c.Console.Printf("  sudo tailscaled --state=%s/tailscaled.state --socket=%s/tailscaled.sock --tun=userspace-networking &\n", stateDir, stateDir)
		c.Console.Printf("  sudo tailscale --socket=%s/tailscaled.sock up\n", stateDir)
		return false
	}

	c.Console.Stepf("Starting Tailscale via systemd...")
	if err := c.Runner.RunInteractive(ctx, "sudo", "systemctl", "start", "tailscaled"); err != nil {
		c.Console.Errorf("failed to start tailscaled: %v", err)
		return false
	}
	if err := c.Runner.RunInteractive(ctx, "sudo", "tailscale", "up"); err != nil {
		c.Console.Errorf("failed to bring the mesh up: %v", err)
		return false
	}
	c.Console.Successf("Tailscale started!")
	return true
}

func (c *Client) systemdAvailable(ctx context.Context) bool {
	stdout, _, err := c.Runner.Run(ctx, "systemctl", "is-system-running")
	// Degraded systems exit non-zero while still answering; any output
	// containing "running" counts.
	return err == nil || strings.Contains(stdout, "running")
}
