package crmdeploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

func (d *Deployer) writeVhost(context.Context) error {
	if err := ensureDir(d.Config.NginxStagingDir(), 0o750); err != nil {
		return err
	}
	text, err := renderTemplate("nginx/site.conf", d.Config.RenderData())
	if err != nil {
		return fmt.Errorf("render vhost: %w", err)
	}
	target := filepath.Join(d.Config.NginxStagingDir(), d.Config.VhostName())
	return os.WriteFile(target, []byte(text), 0o644)
}

// installVhost places the site file and enables it via symlink, the
// sites-available/sites-enabled convention.
func (d *Deployer) installVhost(context.Context) error {
	src := filepath.Join(d.Config.NginxStagingDir(), d.Config.VhostName())
	dst := filepath.Join(NginxAvailableDir(), d.Config.VhostName())
	if err := d.installFile(src, dst, 0o644); err != nil {
		return err
	}
	return d.enableSite(dst)
}

func (d *Deployer) enableSite(available string) error {
	link := filepath.Join(NginxEnabledDir(), d.Config.VhostName())

	if current, err := os.Readlink(link); err == nil {
		if current == available {
			return nil
		}
		ok, err := d.Confirm.Confirm(KeyOverwrite,
			fmt.Sprintf("%s points at %s, relink to %s?", link, current, available), false)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn().Str("link", link).Msg("kept existing site link")
			return nil
		}
		if err := os.Remove(link); err != nil {
			return err
		}
	} else if _, err := os.Lstat(link); err == nil {
		// Regular file in sites-enabled; leave it to the operator.
		return fmt.Errorf("%s exists and is not a symlink", link)
	}

	if err := ensureDir(filepath.Dir(link), 0o755); err != nil {
		return err
	}
	return os.Symlink(available, link)
}

// validateNginx gates the reload on nginx's own syntax check. A broken
// generated vhost must never take the proxy down.
func (d *Deployer) validateNginx(ctx context.Context) error {
	out, err := d.Exec.Capture(ctx, "", "nginx", "-t")
	if err != nil {
		return fmt.Errorf("nginx -t failed, not reloading:\n%s", out)
	}
	return nil
}

func (d *Deployer) reloadNginx(ctx context.Context) error {
	return d.Exec.Stream(ctx, "", "systemctl", "reload", "nginx")
}
