package tailscale

import (
	"context"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"tes3mpctl/pkg/logging"
)

var inviteTemplate = template.Must(template.New("invite").Funcs(sprig.TxtFuncMap()).Parse(`{{- $rule := repeat 60 "=" -}}
Your server's Tailscale IP: {{ .IP }}
Server name: {{ .HostName | default "your-server" }}
{{- if .Tailnet }}
Tailnet: {{ .Tailnet }}
{{- end }}

{{ $rule }}
Option 1: Invite via Tailscale Admin Console (Recommended)
{{ $rule }}

1. Go to: https://login.tailscale.com/admin/users
2. Click "Invite users"
3. Enter your friend's email address
4. They'll get an email with instructions to join your network
{{- if .ShareAvailable }}

{{ $rule }}
Option 2: Share Node (Quick Access)
{{ $rule }}

You can share this specific server with external users:

  tailscale share {{ .HostName | default "your-server" }}

This allows users outside your Tailnet to connect temporarily.
{{- end }}

{{ $rule }}
Option 3: Give Friends This Command
{{ $rule }}

Your friends should run these commands:

  # 1. Install Tailscale
  curl -fsSL https://tailscale.com/install.sh | sh

  # 2. Connect to Tailscale (they'll need to be in your network)
  sudo tailscale up

  # 3. Launch TES3MP and connect to:
  {{ .IP }}:{{ .Port }}

{{ $rule }}
One-Liner for Friends:
{{ $rule }}

  curl -fsSL https://tailscale.com/install.sh | sh && sudo tailscale up
  # Then connect to: {{ .IP }}:{{ .Port }}
`))

type inviteData struct {
	IP             string
	HostName       string
	Tailnet        string
	Port           int
	ShareAvailable bool
}

// InviteGuide renders the friend-invite walkthrough for this node. The mesh
// must be reachable; when it is not, the user is offered a start first.
func (c *Client) InviteGuide(ctx context.Context, port int) error {
	c.Console.Headerf("Invite Friends via Tailscale")

	ip := c.IP(ctx)
	if ip == "" {
		if c.EnsureRunning(ctx) {
			ip = c.IP(ctx)
		}
	}
	if ip == "" {
		return fmt.Errorf("could not get Tailscale IP, start Tailscale first")
	}

	data := inviteData{
		IP:             ip,
		Port:           port,
		ShareAvailable: c.shareAvailable(ctx),
	}
	status, err := c.StatusJSON(ctx)
	if err != nil {
		logging.Debug("mesh", "status query failed, using placeholders: %v", err)
	} else {
		data.HostName = status.Self.HostName
		data.Tailnet = status.MagicDNSSuffix
	}

	return inviteTemplate.Execute(c.Console.Out(), data)
}

// shareAvailable probes whether this tailscale build knows the share
// subcommand.
func (c *Client) shareAvailable(ctx context.Context) bool {
	_, _, err := c.Runner.Run(ctx, "tailscale", "share", "--help")
	return err == nil
}
