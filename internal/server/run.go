package server

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"

	"tes3mpctl/internal/cli"
	"tes3mpctl/pkg/logging"
)

// BinaryName is the dedicated server launcher inside the server root.
const BinaryName = "tes3mp-server"

// Run starts the server in the foreground wired to the caller's terminal,
// with the bundled lib/ prepended to LD_LIBRARY_PATH. Ctrl+C is the normal
// stop path: the interrupt reaches the child through the foreground process
// group while the wrapper survives to report a clean stop.
func Run(console *cli.Console, root string) error {
	bin := filepath.Join(root, BinaryName)
	if _, err := os.Stat(bin); err != nil {
		return fmt.Errorf("server binary not found at %s", bin)
	}

	console.Printf("\nStarting server...\n")
	console.Printf("Press Ctrl+C to stop the server\n\n")
	logging.Info("server", "starting %s", bin)

	cmd := exec.Command(bin)
	cmd.Dir = root
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = runEnv(root)

	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == -1 {
		// Killed by a signal, the expected Ctrl+C outcome.
		console.Warnf("Server stopped.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	console.Warnf("Server stopped.")
	return nil
}

// runEnv returns the child environment with the bundled library dir
// prepended, or nil (inherit untouched) when the install has no lib/.
func runEnv(root string) []string {
	libDir := filepath.Join(root, "lib")
	if _, err := os.Stat(libDir); err != nil {
		return nil
	}
	entry := "LD_LIBRARY_PATH=" + libDir
	if existing := os.Getenv("LD_LIBRARY_PATH"); existing != "" {
		entry += ":" + existing
	}
	return append(os.Environ(), entry)
}
