package cmd

import (
	"context"
	"os"
	"path/filepath"

	"tes3mpctl/internal/cli"
	"tes3mpctl/internal/config"
	"tes3mpctl/internal/datafiles"
	"tes3mpctl/internal/execx"
	"tes3mpctl/internal/health"
	"tes3mpctl/internal/openmw"
	"tes3mpctl/internal/release"
	"tes3mpctl/internal/syslibs"
	"tes3mpctl/internal/tailscale"
	"tes3mpctl/pkg/logging"
)

// app bundles the collaborators the command flows share: settings, the
// console sink, the prompter and the CLI wrappers. Commands construct it
// once per invocation; tests construct it by hand with fakes.
type app struct {
	cfg      config.Config
	console  *cli.Console
	prompter cli.Prompter
	runner   execx.Runner
	store    *datafiles.Store
	mesh     *tailscale.Client
	libs     *syslibs.Installer
	env      health.Environment
}

// newApp wires up the production application: configuration from
// ~/.config/tes3mpctl, stdio prompts, real subprocess execution.
func newApp() (*app, error) {
	configDir := config.GetDefaultConfigPathOrPanic()
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}

	console := cli.DefaultConsole()
	prompter := cli.NewStdioPrompter(console, os.Stdin)
	runner := execx.ExecRunner{}
	store := datafiles.NewStore(configDir)
	mesh := tailscale.NewClient(runner, console, prompter)

	a := &app{
		cfg:      cfg,
		console:  console,
		prompter: prompter,
		runner:   runner,
		store:    store,
		mesh:     mesh,
		libs:     syslibs.NewInstaller(runner, console, prompter),
		env: &health.SystemEnv{
			Runner:        runner,
			InstallDir:    cfg.Client.InstallDir,
			ServerBaseDir: cfg.Server.InstallDir,
			Store:         store,
			Mesh:          mesh,
			ConfigCandidates: []string{
				config.FlatpakOpenMWConfigPath(),
				config.GlobalOpenMWConfigPath(),
				filepath.Join(cfg.Client.InstallDir, "openmw.cfg"),
			},
		},
	}
	logging.Debug("cmd", "app wired: installDir=%s serverDir=%s port=%d",
		cfg.Client.InstallDir, cfg.Server.InstallDir, cfg.Network.Port)
	return a, nil
}

// doctor builds the health-check driver around this app's environment.
func (a *app) doctor() *health.Doctor {
	return &health.Doctor{
		Env:         a.env,
		Console:     a.console,
		Prompter:    a.prompter,
		Libs:        a.libs,
		SetupClient: a.setupClient,
		Port:        a.cfg.Network.Port,
	}
}

// relinkConfigs points both engine configs at dataPath.
func (a *app) relinkConfigs(dataPath string) error {
	localCfg := filepath.Join(a.cfg.Client.InstallDir, "openmw.cfg")
	return openmw.UpdateAll(a.console, config.GlobalOpenMWConfigPath(), localCfg, dataPath)
}

// setupClient is the full client setup flow: install the engine when
// missing, resolve the Morrowind data location, relink the engine configs
// and make the shipped binaries executable.
func (a *app) setupClient(ctx context.Context) error {
	a.console.Headerf("Client Setup")

	installDir := a.cfg.Client.InstallDir
	if err := release.InstallClient(ctx, a.console, a.cfg.Client.ReleaseURL, installDir); err != nil {
		return err
	}

	dataPath, ok := a.store.LoadPresent()
	if !ok {
		dataPath, _ = datafiles.ConfigureInteractive(a.store, a.console, a.prompter, a.relinkConfigs)
		if dataPath == "" {
			a.console.Warnf("Setup incomplete: no data files configured.")
			return nil
		}
	} else {
		a.console.Stepf("Using remembered data path: %s", dataPath)
		// Relink every time so a hand-edited config heals itself.
		if err := a.relinkConfigs(dataPath); err != nil {
			return err
		}
	}

	release.MarkExecutable(installDir)
	a.console.Successf("Client setup complete! You can play now.")
	return nil
}

// launchGame starts the flatpak client in the foreground and waits for it
// to exit.
func (a *app) launchGame(ctx context.Context) error {
	a.console.Successf("Launching TES3MP...")
	if err := a.runner.RunInteractive(ctx, "flatpak", "run", config.FlatpakAppID); err != nil {
		a.console.Errorf("failed to launch: %v", err)
		return err
	}
	return nil
}
