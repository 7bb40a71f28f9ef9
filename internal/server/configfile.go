package server

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tes3mpctl/pkg/logging"
)

// ConfigFileName is the stock config shipped inside the server folder.
const ConfigFileName = "tes3mp-server-default.cfg"

// DefaultHostname is what the stock config ships with.
const DefaultHostname = "TES3MP Server"

var (
	hostnameLine  = regexp.MustCompile(`(?m)^hostname\s*=.*$`)
	passwordLine  = regexp.MustCompile(`(?m)^password\s*=.*$`)
	hostnameValue = regexp.MustCompile(`(?m)^hostname\s*=\s*(.+)$`)
)

// ConfigPath returns the server config location under root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// ReadHostname returns the configured server name, falling back to the
// stock default when the file or the key is missing.
func ReadHostname(root string) string {
	body, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return DefaultHostname
	}
	m := hostnameValue.FindSubmatch(body)
	if m == nil {
		return DefaultHostname
	}
	return strings.TrimSpace(string(m[1]))
}

// WriteSettings substitutes hostname and password lines in place, leaving
// every other line untouched. Keys absent from the file are not appended.
// An empty password clears the value, which disables the password check.
//
// Literal substitution matters here: server names may contain $.
func WriteSettings(root, hostname, password string) error {
	path := ConfigPath(root)
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading server config: %w", err)
	}

	text := string(body)
	text = hostnameLine.ReplaceAllLiteralString(text, "hostname = "+hostname)
	text = passwordLine.ReplaceAllLiteralString(text, "password = "+password)

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing server config: %w", err)
	}
	logging.Info("server", "configured hostname=%q password set=%t", hostname, password != "")
	return nil
}
