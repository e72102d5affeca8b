package crmdeploy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// writeUnitFiles renders the units into the staging dir. Staging always
// reflects the current config; installation is the gated step.
func (d *Deployer) writeUnitFiles(context.Context) error {
	targetDir := d.Config.SystemdStagingDir()
	if err := ensureDir(targetDir, 0o750); err != nil {
		return err
	}
	data := d.Config.RenderData()
	for _, unit := range d.Config.UnitFiles() {
		text, err := renderTemplate(unit.Template, data)
		if err != nil {
			return fmt.Errorf("render %s: %w", unit.Name, err)
		}
		target := filepath.Join(targetDir, unit.Name)
		if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// installUnitFiles copies staged units into the systemd dir. An installed
// unit with identical content is left alone; a differing one is only
// replaced when the operator confirms.
func (d *Deployer) installUnitFiles(context.Context) error {
	for _, unit := range d.Config.UnitFiles() {
		src := filepath.Join(d.Config.SystemdStagingDir(), unit.Name)
		dst := filepath.Join(SystemdDir(), unit.Name)
		if err := d.installFile(src, dst, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// installFile implements the overwrite gate shared by units and the vhost.
func (d *Deployer) installFile(src, dst string, mode os.FileMode) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(dst)
	if err != nil && !os.IsNotExist(err) {
		// An unreadable installed file must not be overwritten ungated.
		return err
	}
	if err == nil {
		if bytes.Equal(existing, content) {
			log.Debug().Str("path", dst).Msg("unchanged, skipping")
			return nil
		}
		ok, err := d.Confirm.Confirm(KeyOverwrite,
			fmt.Sprintf("%s exists and differs, overwrite?", dst), false)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn().Str("path", dst).Msg("kept existing file")
			return nil
		}
	}

	if err := ensureDir(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, content, mode)
}

func (d *Deployer) activateServices(ctx context.Context) error {
	if err := d.Exec.Stream(ctx, "", "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}
	for _, unit := range d.Config.UnitFiles() {
		if err := d.Exec.Stream(ctx, "", "systemctl", "enable", "--now", unit.Name); err != nil {
			return fmt.Errorf("enable %s: %w", unit.Name, err)
		}
	}
	// Restart picks up new code on re-deploys; enable --now alone would
	// leave an already-running service on the old release.
	for _, unit := range d.Config.UnitFiles() {
		if err := d.Exec.Stream(ctx, "", "systemctl", "restart", unit.Name); err != nil {
			return fmt.Errorf("restart %s: %w", unit.Name, err)
		}
	}
	return nil
}
