package crmdeploy

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Deployer drives the full provisioning sequence for one application.
type Deployer struct {
	Config  Config
	Exec    Executor
	Confirm Confirmer

	// Out receives user-facing summary lines (defaults to stdout).
	Out io.Writer
}

func NewDeployer(cfg Config, exec Executor, confirm Confirmer) *Deployer {
	return &Deployer{Config: cfg, Exec: exec, Confirm: confirm, Out: os.Stdout}
}

func (d *Deployer) printf(format string, args ...any) {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

// Deploy runs the whole sequence. Declining the initial gate is not an
// error: nothing has been touched and the exit status is zero.
func (d *Deployer) Deploy(ctx context.Context) error {
	if err := d.Config.Validate(); err != nil {
		return err
	}

	ok, err := d.Confirm.Confirm(KeyDeploy,
		fmt.Sprintf("Deploy %s (%s) to this host?", d.Config.Project, d.Config.Domain), false)
	if err != nil {
		return err
	}
	if !ok {
		d.printf("aborted, nothing changed\n")
		return nil
	}

	if err := RunSteps(ctx, d.Steps()); err != nil {
		return err
	}

	d.printf("\n%s deployed, site enabled at http://%s\n", d.Config.Project, d.Config.Domain)
	return d.Status(ctx)
}

// Steps returns the deploy sequence in order. Exposed so the setup wizard
// can run them one at a time with progress display.
func (d *Deployer) Steps() []Step {
	return []Step{
		{Name: "prepare project layout", Run: d.ensureLayout},
		{Name: "create virtualenv", Run: d.ensureVirtualenv},
		{Name: "install dependencies", Run: d.installRequirements},
		{Name: "dump database", Run: d.dumpDatabase, Tolerated: true},
		{Name: "apply migrations", Run: d.migrate},
		{Name: "create superuser", Run: d.createSuperuser, Tolerated: true},
		{Name: "collect static assets", Run: d.collectStatic},
		{Name: "load fixtures", Run: d.loadFixtures, Tolerated: true},
		{Name: "render unit files", Run: d.writeUnitFiles},
		{Name: "install unit files", Run: d.installUnitFiles},
		{Name: "activate services", Run: d.activateServices},
		{Name: "render nginx vhost", Run: d.writeVhost},
		{Name: "install nginx vhost", Run: d.installVhost},
		{Name: "validate nginx config", Run: d.validateNginx},
		{Name: "reload nginx", Run: d.reloadNginx},
	}
}

// Render writes the generated files into the staging dir without installing
// anything or touching services.
func (d *Deployer) Render(ctx context.Context) error {
	if err := d.Config.Validate(); err != nil {
		return err
	}
	if err := d.writeUnitFiles(ctx); err != nil {
		return err
	}
	if err := d.writeVhost(ctx); err != nil {
		return err
	}
	d.printf("rendered into %s\n", d.Config.StagingDir())
	return nil
}

func (d *Deployer) ensureLayout(context.Context) error {
	dirs := []string{
		d.Config.SystemdStagingDir(),
		d.Config.NginxStagingDir(),
		d.Config.StaticRoot,
		d.Config.MediaRoot,
		d.Config.BackupDir,
	}
	for _, dir := range dirs {
		if err := ensureDir(dir, 0o750); err != nil {
			return err
		}
	}
	return nil
}
