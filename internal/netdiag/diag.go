// Package netdiag is the connection doctor: a small diagnostic battery run
// against a peer's address before blaming the game for a failed join.
package netdiag

import (
	"context"
	"runtime"
	"strings"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
	"tes3mpctl/internal/tailscale"
	"tes3mpctl/pkg/logging"
)

// Verdict classifies the battery outcome.
type Verdict int

const (
	// VerdictGreen means the encrypted tunnel answered.
	VerdictGreen Verdict = iota
	// VerdictCaution means plain ping works but the tunnel is unverified.
	VerdictCaution
	// VerdictLAN means a non-mesh target answered ping.
	VerdictLAN
	// VerdictCritical means nothing answered at all.
	VerdictCritical
)

func (v Verdict) String() string {
	switch v {
	case VerdictGreen:
		return "green"
	case VerdictCaution:
		return "caution"
	case VerdictLAN:
		return "lan"
	case VerdictCritical:
		return "critical"
	}
	return "unknown"
}

// Report is the outcome of one diagnostic run.
type Report struct {
	Target     string
	MeshTarget bool
	ICMPOK     bool
	TunnelOK   bool
	Relayed    bool
	Verdict    Verdict
}

// Doctor runs connectivity diagnostics against peer addresses.
type Doctor struct {
	Runner  execx.Runner
	Console *cli.Console
	Mesh    *tailscale.Client
}

// NewDoctor returns a Doctor sharing the given collaborators.
func NewDoctor(runner execx.Runner, console *cli.Console, mesh *tailscale.Client) *Doctor {
	return &Doctor{Runner: runner, Console: console, Mesh: mesh}
}

// IsMeshIP reports whether addr looks like a Tailscale address: the CGNAT
// 100.x range for IPv4 or the fd7a: ULA block for IPv6.
func IsMeshIP(addr string) bool {
	return strings.HasPrefix(addr, "100.") || strings.HasPrefix(addr, "fd7a:")
}

// Assess implements the verdict matrix over the two probe results.
func Assess(icmpOK, tunnelOK, meshTarget bool) Verdict {
	switch {
	case tunnelOK:
		return VerdictGreen
	case icmpOK && meshTarget:
		return VerdictCaution
	case icmpOK:
		return VerdictLAN
	default:
		return VerdictCritical
	}
}

// Diagnose runs the battery against target and renders a human verdict.
// port only feeds the advice text.
func (d *Doctor) Diagnose(ctx context.Context, target string, port int) Report {
	report := Report{Target: target, MeshTarget: IsMeshIP(target)}

	d.Console.Headerf("Diagnostic: Connecting to %s", target)

	d.Console.Printf("Step 1: Standard Ping... ")
	report.ICMPOK = d.icmpPing(ctx, target)
	if report.ICMPOK {
		d.Console.Successf("Success")
	} else {
		d.Console.Failf("Failed (request timed out)")
	}

	// The tunnel probe beats plain ping because it exercises the actual
	// encrypted path, but it only makes sense against a mesh address.
	if report.MeshTarget {
		d.Console.Printf("Step 2: Tailscale Tunnel Test... ")
		switch {
		case !d.Mesh.Installed():
			d.Console.Warnf("Tailscale CLI not found. Skipping.")
		default:
			res := d.Mesh.Ping(ctx, target)
			report.TunnelOK = res.OK
			report.Relayed = res.Relayed
			if res.OK {
				d.Console.Successf("Tunnel Active")
				if res.Relayed {
					d.Console.Warnf("Note: Connection is relayed (slower). Combat might lag.")
				} else {
					d.Console.Successf("Connection is Direct (Fast).")
				}
			} else {
				d.Console.Failf("Tunnel Broken")
				if res.Detail != "" {
					d.Console.Printf("%s\n", res.Detail)
				}
			}
		}
	} else {
		d.Console.Printf("Step 2: Skipped (Not a Tailscale IP)\n")
	}

	report.Verdict = Assess(report.ICMPOK, report.TunnelOK, report.MeshTarget)
	logging.Info("netdiag", "target=%s icmp=%t tunnel=%t verdict=%s",
		target, report.ICMPOK, report.TunnelOK, report.Verdict)

	d.renderSummary(report, port)
	return report
}

func (d *Doctor) renderSummary(r Report, port int) {
	d.Console.Printf("\nDiagnostic Results for %s\n", r.Target)

	tunnelStatus := cli.StatusRow{Component: "Tailscale Tunnel", State: cli.StateNone, Status: "N/A"}
	if r.MeshTarget {
		if r.TunnelOK {
			tunnelStatus.State, tunnelStatus.Status = cli.StateOK, "PASS"
		} else {
			tunnelStatus.State, tunnelStatus.Status = cli.StateBad, "FAIL"
		}
	}
	pingStatus := cli.StatusRow{Component: "Ping Reachability", State: cli.StateBad, Status: "FAIL"}
	if r.ICMPOK {
		pingStatus.State, pingStatus.Status = cli.StateOK, "PASS"
	}
	cli.RenderStatusTable(d.Console.Out(), "Notes", []cli.StatusRow{pingStatus, tunnelStatus})

	d.Console.Printf("\nVerdict:\n")
	switch r.Verdict {
	case VerdictGreen:
		d.Console.Successf("SYSTEM GREEN. You can connect. If the game still fails, check the Server Password or Port %d.", port)
	case VerdictCaution:
		d.Console.Warnf("CAUTION. We can see them via ping, but the Tailscale tunnel isn't verified. Check if their Tailscale is online.")
	case VerdictLAN:
		d.Console.Successf("LAN CONNECTION. Setup looks good for local play.")
	case VerdictCritical:
		d.Console.Failf("CRITICAL FAIL. Computer cannot see the target.")
		d.Console.Printf("  1. Is their computer on?\n")
		d.Console.Printf("  2. Is their Tailscale 'Last Seen' green?\n")
		d.Console.Printf("  3. Are you both connected to the internet?\n")
	}
}

// icmpPing sends a single echo request. Windows spells the count flag -n,
// everything else -c.
func (d *Doctor) icmpPing(ctx context.Context, target string) bool {
	countFlag := "-c"
	if runtime.GOOS == "windows" {
		countFlag = "-n"
	}
	_, _, err := d.Runner.Run(ctx, "ping", countFlag, "1", target)
	return err == nil
}
