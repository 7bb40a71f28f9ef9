package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/execx"
	"tes3mpctl/internal/tailscale"
)

func TestPublicIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("203.0.113.7\n"))
	}))
	t.Cleanup(srv.Close)

	orig := ipifyURL
	ipifyURL = srv.URL
	t.Cleanup(func() { ipifyURL = orig })

	assert.Equal(t, "203.0.113.7", PublicIP(context.Background()))
}

func TestPublicIP_ErrorYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	orig := ipifyURL
	ipifyURL = srv.URL
	t.Cleanup(func() { ipifyURL = orig })

	assert.Empty(t, PublicIP(context.Background()))
}

func testMesh(runner *execx.FakeRunner, home string) *tailscale.Client {
	return &tailscale.Client{
		Runner: runner,
		Which:  func(tool string) bool { return tool == "tailscale" },
		Home:   home,
	}
}

func TestConnectionInfo(t *testing.T) {
	runner := execx.NewFakeRunner().Script("tailscale ip -4", execx.FakeResult{Stdout: "100.64.0.5\n"})

	var out bytes.Buffer
	ConnectionInfo(context.Background(), cli.NewConsole(&out), testMesh(runner, t.TempDir()), 25565)

	assert.Contains(t, out.String(), "How to Connect")
	assert.Contains(t, out.String(), "Tailscale IP:")
	assert.Contains(t, out.String(), "100.64.0.5:25565")
	assert.Contains(t, out.String(), "Share this with your friends:")
}

func TestConnectionInfo_MeshDown(t *testing.T) {
	var out bytes.Buffer
	ConnectionInfo(context.Background(), cli.NewConsole(&out), testMesh(execx.NewFakeRunner(), t.TempDir()), 25565)

	assert.Contains(t, out.String(), "Tailscale not running")
	assert.NotContains(t, out.String(), "Full Address:")
}
