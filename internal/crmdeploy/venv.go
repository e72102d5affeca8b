package crmdeploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func (d *Deployer) venvBin(name string) string {
	return filepath.Join(d.Config.VenvDir, "bin", name)
}

// ensureVirtualenv creates the venv if missing. An existing venv is kept
// unless the operator confirms recreation.
func (d *Deployer) ensureVirtualenv(ctx context.Context) error {
	if DirExists(d.Config.VenvDir) {
		ok, err := d.Confirm.Confirm(KeyRecreateVenv,
			fmt.Sprintf("virtualenv exists at %s, recreate it?", d.Config.VenvDir), false)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := os.RemoveAll(d.Config.VenvDir); err != nil {
			return fmt.Errorf("remove old virtualenv: %w", err)
		}
	}
	return d.Exec.Stream(ctx, d.Config.ProjectDir, d.Config.Python, "-m", "venv", d.Config.VenvDir)
}

func (d *Deployer) installRequirements(ctx context.Context) error {
	pip := d.venvBin("pip")
	if err := d.Exec.Stream(ctx, d.Config.ProjectDir, pip, "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrade pip: %w", err)
	}
	req := d.Config.Requirements
	if !filepath.IsAbs(req) {
		req = filepath.Join(d.Config.ProjectDir, req)
	}
	return d.Exec.Stream(ctx, d.Config.ProjectDir, pip, "install", "-r", req)
}
