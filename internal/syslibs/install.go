package syslibs

import (
	"context"
	"strings"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
	"tes3mpctl/pkg/logging"
)

// Installer drives the library remediation flow: map missing libraries to
// packages, ask once, install once.
type Installer struct {
	Runner   execx.Runner
	Console  *cli.Console
	Prompter cli.Prompter
	// Which probes PATH; left nil it defaults to execx.CommandExists.
	Which func(string) bool
}

// NewInstaller returns an Installer with the production PATH probe.
func NewInstaller(runner execx.Runner, console *cli.Console, prompter cli.Prompter) *Installer {
	return &Installer{
		Runner:   runner,
		Console:  console,
		Prompter: prompter,
		Which:    execx.CommandExists,
	}
}

// EnsureFor checks the binaries under installDir and drives the install
// flow when libraries are missing. Returns true when the system ended up
// satisfied: nothing was missing, or the install succeeded.
func (i *Installer) EnsureFor(ctx context.Context, installDir string, candidates ...string) bool {
	i.Console.Stepf("Checking dependencies...")
	missing := MissingLibraries(ctx, i.Runner, installDir, candidates...)
	if len(missing) == 0 {
		i.Console.Successf("All dependencies satisfied")
		return true
	}
	return i.Offer(ctx, missing)
}

// Offer maps missing libraries to packages and offers to install them.
// Whenever no install can run (unknown manager, nothing mapped, user
// declined, command failed) manual instructions are printed and the result
// is false.
func (i *Installer) Offer(ctx context.Context, missing []string) bool {
	if len(missing) == 0 {
		return false
	}
	i.Console.Warnf("Missing libraries: %s", strings.Join(missing, ", "))

	which := i.Which
	if which == nil {
		which = execx.CommandExists
	}
	mgr := Detect(which)
	if mgr == nil {
		i.Console.Errorf("unknown package manager; please install these libraries manually:")
		for _, lib := range missing {
			i.Console.Printf("  - %s\n", lib)
		}
		return false
	}

	packages, unmatched := Lookup(missing, mgr.Family)
	for _, lib := range unmatched {
		i.Console.Warnf("No package mapping for %s, install it manually.", lib)
	}
	if len(packages) == 0 {
		i.Console.Warnf("Could not map the missing libraries to packages.")
		return false
	}

	i.Console.Printf("Packages to install: %s\n", strings.Join(packages, ", "))
	if !i.Prompter.Confirm("Install missing dependencies now?", true) {
		i.printManualCommand(mgr, packages)
		return false
	}

	// apt installs from a stale cache fail on fresh systems; the refresh
	// itself is allowed to fail (offline mirrors etc.).
	if mgr.Family == FamilyApt {
		i.Console.Stepf("Updating package cache...")
		if err := i.Runner.RunInteractive(ctx, "sudo", "apt-get", "update"); err != nil {
			logging.Warn("syslibs", "apt-get update failed: %v", err)
		}
	}

	cmd := mgr.InstallCommand(packages)
	i.Console.Stepf("Running: sudo %s", strings.Join(cmd, " "))
	if err := i.Runner.RunInteractive(ctx, "sudo", cmd...); err != nil {
		i.Console.Errorf("installation failed: %v", err)
		i.printManualCommand(mgr, packages)
		return false
	}

	i.Console.Successf("Dependencies installed!")
	return true
}

func (i *Installer) printManualCommand(mgr *Manager, packages []string) {
	i.Console.Printf("To install manually: sudo %s\n", strings.Join(mgr.InstallCommand(packages), " "))
}
