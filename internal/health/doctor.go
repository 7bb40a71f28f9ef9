package health

import (
	"context"
	"fmt"
	"strings"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/syslibs"
)

// maxPasses bounds the remediation loop. Every successful fix triggers a
// fresh probe pass; a system that never converges stops here instead of
// prompting forever.
const maxPasses = 8

// Doctor renders the pre-flight table and walks the user through fixing
// what it can, in dependency order: libraries, flatpak, engine, data
// linkage.
type Doctor struct {
	Env      Environment
	Console  *cli.Console
	Prompter cli.Prompter
	Libs     *syslibs.Installer
	// SetupClient reruns the client setup flow (engine install plus data
	// linking). Left nil the doctor reports but cannot remediate those rows.
	SetupClient func(ctx context.Context) error
	Port        int
}

// Run probes, renders, and remediates until the system is healthy or the
// user declines the remaining fixes. interactive keeps the final pause even
// when everything is green, so menu-driven runs don't flash past the table.
func (d *Doctor) Run(ctx context.Context, interactive bool) error {
	for pass := 0; pass < maxPasses; pass++ {
		snap := Collect(ctx, d.Env, d.Port)

		d.Console.Headerf("System Status Check")
		cli.RenderStatusTable(d.Console.Out(), "Action Needed", ClientRows(snap))
		d.Console.Println()

		if len(snap.MissingLibs) > 0 {
			d.Console.Failf("CRITICAL: Missing system libraries!")
			d.Console.Printf("Required: %s\n", strings.Join(snap.MissingLibs, ", "))
			if d.Libs.Offer(ctx, snap.MissingLibs) {
				d.Console.Successf("Installation successful! Re-checking...")
				continue
			}
			if !d.Prompter.Confirm("Continue anyway?", false) {
				return fmt.Errorf("missing system libraries: %s", strings.Join(snap.MissingLibs, ", "))
			}
		}

		if !snap.FlatpakInstalled {
			return &cli.PrereqError{Tool: "flatpak", Hint: "Please install it with your distro's package manager."}
		}

		if !snap.EngineInstalled && d.SetupClient != nil {
			if d.Prompter.Confirm("TES3MP Engine is missing. Install it now?", true) {
				if err := d.SetupClient(ctx); err != nil {
					return err
				}
				continue
			}
			d.Console.Warnf("Warning: You cannot play without the engine.")
		}

		if !snap.Data.ConfigLinked && snap.Data.StoredPresent && d.SetupClient != nil {
			if d.Prompter.Confirm("Data files found but not linked. Link them now?", true) {
				if err := d.SetupClient(ctx); err != nil {
					return err
				}
				continue
			}
		}

		// Everything is either good or the user declined the fix.
		if interactive || !snap.Healthy() {
			d.Prompter.Ask("Press Enter to continue", "")
		}
		return nil
	}
	return fmt.Errorf("system did not become healthy after %d checks", maxPasses)
}

// RunServer renders the hosting-side table. Nothing on it is fatal, so
// there is no remediation loop.
func (d *Doctor) RunServer(ctx context.Context) ServerSnapshot {
	snap := CollectServer(ctx, d.Env, d.Port)
	d.Console.Headerf("Server Status Check")
	cli.RenderStatusTable(d.Console.Out(), "Notes", ServerRows(snap))
	d.Console.Println()
	return snap
}
