package crmdeploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Status prints the service and proxy state summary.
func (d *Deployer) Status(ctx context.Context) error {
	d.printf("project: %s\n", d.Config.Project)
	d.printf("domain:  %s\n", d.Config.Domain)
	d.printf("path:    %s\n", d.Config.ProjectDir)
	d.printf("\n")

	for _, unit := range d.Config.UnitFiles() {
		out, err := d.Exec.Capture(ctx, "", "systemctl", "is-active", unit.Name)
		state := strings.TrimSpace(out)
		if state == "" {
			state = "unknown"
		}
		mark := okStyle.Render("●")
		if err != nil || state != "active" {
			mark = failStyle.Render("●")
		}
		d.printf("%s %-28s %s\n", mark, unit.Name, state)
	}

	link := filepath.Join(NginxEnabledDir(), d.Config.VhostName())
	if _, err := os.Lstat(link); err == nil {
		d.printf("%s %-28s enabled\n", okStyle.Render("●"), "nginx site")
	} else {
		d.printf("%s %-28s not enabled\n", failStyle.Render("●"), "nginx site")
	}

	if out, err := d.Exec.Capture(ctx, "", "nginx", "-t"); err != nil {
		d.printf("%s nginx config: %s\n", failStyle.Render("●"), dimStyle.Render(strings.TrimSpace(out)))
		return fmt.Errorf("nginx config invalid")
	}
	d.printf("%s %-28s ok\n", okStyle.Render("●"), "nginx config")
	return nil
}
