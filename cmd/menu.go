package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tes3mpctl/internal/datafiles"
	"tes3mpctl/internal/netdiag"
	"tes3mpctl/internal/server"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// runInteractive is the bare "tes3mpctl" flow: health check first, then the
// main menu.
func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := a.doctor().Run(ctx, false); err != nil {
		return err
	}
	return mainMenu(ctx, a)
}

// newMenuReadline builds the shared line reader for the menu loops, with
// history parked in the temp dir like any other throwaway state.
func newMenuReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "Select> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".tes3mpctl_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return rl, nil
}

// mainMenu loops over the top-level choices until the user exits. Ctrl+C
// clears the current line, Ctrl+D leaves the program like choosing Exit.
func mainMenu(ctx context.Context, a *app) error {
	rl, err := newMenuReadline()
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		a.console.Println()
		a.console.Headerf("TES3MP Manager")
		a.console.Println("1. Launch Game (Start Client)")
		a.console.Println("2. Server Settings")
		a.console.Println("3. Connection Doctor (Test Peer)")
		a.console.Println("4. Re-run Health Check")
		a.console.Println("5. Exit")

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			a.console.Successf("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "1":
			// The game replaces the menu; when it exits, so do we.
			return a.launchGame(ctx)
		case "2":
			if err := serverMenu(ctx, a, rl); err != nil {
				return err
			}
		case "3":
			a.console.Println()
			a.console.Println("Who are you trying to join?")
			a.console.Println("Enter their Tailscale IP (e.g., 100.101.50.5)")
			target := a.prompter.Ask("Target IP", "")
			if target != "" {
				netdiag.NewDoctor(a.runner, a.console, a.mesh).Diagnose(ctx, target, a.cfg.Network.Port)
			}
			a.prompter.Ask("Press Enter to return", "")
		case "4":
			if err := a.doctor().Run(ctx, true); err != nil {
				return err
			}
		case "5", "q", "exit":
			a.console.Successf("Goodbye!")
			return nil
		case "":
			continue
		default:
			a.console.Warnf("Please pick 1-5.")
		}
	}
}

// serverMenu hosts the dedicated-server actions. On entry the server gets
// installed if it is missing; declining that returns to the main menu.
func serverMenu(ctx context.Context, a *app, rl *readline.Instance) error {
	a.console.Println()
	a.console.Headerf("Host a Server")

	root, ok := server.Root(a.cfg.Server.InstallDir)
	if !ok {
		root, ok = installServerInteractive(ctx, a)
		if !ok {
			return nil
		}
	}

	for {
		a.console.Println()
		a.console.Println("Server Menu:")
		a.console.Println("1. Start Server")
		a.console.Println("2. Show Connection Info")
		a.console.Println("3. Configure (Name/Password)")
		a.console.Println("4. Setup ESM Files")
		a.console.Println("5. Invite Friends (Tailscale)")
		a.console.Println("6. Back to Main Menu")

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "1":
			startServerInteractive(ctx, a, root)
		case "2":
			server.ConnectionInfo(ctx, a.console, a.mesh, a.cfg.Network.Port)
			if publicIP := server.PublicIP(ctx); publicIP != "" {
				a.console.Printf("\nPublic IP: %s:%d\n", publicIP, a.cfg.Network.Port)
				a.console.Printf("Use this if hosting on a VPS/cloud server\n")
			}
			a.prompter.Ask("Press Enter to continue", "")
		case "3":
			if err := configureServerInteractive(a, root); err != nil {
				a.console.Errorf("%v", err)
			}
			a.prompter.Ask("Press Enter to continue", "")
		case "4":
			configureServerData(a)
			a.prompter.Ask("Press Enter to continue", "")
		case "5":
			if err := a.mesh.InviteGuide(ctx, a.cfg.Network.Port); err != nil {
				a.console.Errorf("%v", err)
			}
			a.prompter.Ask("Press Enter to continue", "")
		case "6", "b", "back":
			return nil
		case "":
			continue
		default:
			a.console.Warnf("Please pick 1-6.")
		}
	}
}

// configureServerData walks the user through the ESM path setup. The server
// only needs the three .esm files to enforce checksums, not a full install.
func configureServerData(a *app) {
	a.console.Headerf("Setup ESM Files")
	a.console.Println("The server only needs the .esm files to enforce checksums.")
	a.console.Println("You don't need the full Morrowind install, just:")
	a.console.Println("  - Morrowind.esm")
	a.console.Println("  - Tribunal.esm")
	a.console.Println("  - Bloodmoon.esm")
	a.console.Println()

	// The server reads the ESMs straight from the data folder, so no
	// config relinking happens here.
	_, _ = datafiles.ConfigureInteractive(a.store, a.console, a.prompter, nil)
}
