package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/tailscale"
)

var ipifyURL = "https://api.ipify.org"

// PublicIP asks ipify for the outward-facing address. Best effort: any
// failure yields "".
func PublicIP(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ipifyURL, nil)
	if err != nil {
		return ""
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}

// ConnectionInfo renders the "How to Connect" block players need to join.
func ConnectionInfo(ctx context.Context, console *cli.Console, mesh *tailscale.Client, port int) {
	console.Headerf("How to Connect")

	tw := table.NewWriter()
	tw.SetOutputMirror(console.Out())
	style := table.StyleLight
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Options.SeparateHeader = false
	style.Options.SeparateRows = false
	tw.SetStyle(style)

	ip := mesh.IP(ctx)
	if ip == "" {
		tw.AppendRow(table.Row{"Status:", "Tailscale not running"})
		tw.Render()
		return
	}

	tw.AppendRow(table.Row{"Tailscale IP:", ip})
	tw.AppendRow(table.Row{"Port:", strconv.Itoa(port)})
	tw.AppendRow(table.Row{"Full Address:", fmt.Sprintf("%s:%d", ip, port)})
	tw.Render()

	console.Printf("\nShare this with your friends:\n")
	console.Printf("  %s:%d\n\n", ip, port)
	console.Printf("Friends need:\n")
	console.Printf("  1. TES3MP installed\n")
	console.Printf("  2. Tailscale connected to your network\n")
	console.Printf("  3. Same Morrowind game files as you\n")
}
