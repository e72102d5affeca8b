package crmdeploy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// manage runs a manage.py command with the venv interpreter, from the
// project dir so the app's settings resolve.
func (d *Deployer) manage(ctx context.Context, args ...string) error {
	argv := append([]string{"manage.py"}, args...)
	return d.Exec.Stream(ctx, d.Config.ProjectDir, d.venvBin("python"), argv...)
}

func (d *Deployer) migrate(ctx context.Context) error {
	return d.manage(ctx, "migrate", "--noinput")
}

// createSuperuser is interactive and tolerated: an existing account makes
// the command fail, which is fine on re-runs.
func (d *Deployer) createSuperuser(ctx context.Context) error {
	ok, err := d.Confirm.Confirm(KeySuperuser, "Create an admin superuser now?", true)
	if err != nil {
		return err
	}
	if !ok {
		log.Info().Msg("superuser creation skipped")
		return nil
	}
	args := []string{"createsuperuser"}
	if d.Config.AdminEmail != "" {
		args = append(args, "--email", d.Config.AdminEmail)
	}
	return d.manage(ctx, args...)
}

func (d *Deployer) collectStatic(ctx context.Context) error {
	return d.manage(ctx, "collectstatic", "--noinput")
}

func (d *Deployer) loadFixtures(ctx context.Context) error {
	if len(d.Config.Fixtures) == 0 {
		return nil
	}
	ok, err := d.Confirm.Confirm(KeyFixtures,
		fmt.Sprintf("Load %d initial fixture(s)?", len(d.Config.Fixtures)), false)
	if err != nil {
		return err
	}
	if !ok {
		log.Info().Msg("fixture load skipped")
		return nil
	}
	for _, fixture := range d.Config.Fixtures {
		if err := d.manage(ctx, "loaddata", fixture); err != nil {
			return fmt.Errorf("loaddata %s: %w", fixture, err)
		}
	}
	return nil
}
