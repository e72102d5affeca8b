// Package cli wires the cobra command tree for crmdeploy.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/KapsonLabs/crmdeploy/internal/crmdeploy"
	"github.com/KapsonLabs/crmdeploy/internal/logging"
	"github.com/KapsonLabs/crmdeploy/internal/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cfgPath string

	cmd := &cobra.Command{
		Use:          "crmdeploy",
		Short:        "Provision a CRM instance on a Linux host",
		Long: `crmdeploy provisions a single web application instance: virtualenv,
dependencies, migrations, static assets, systemd units, and an nginx
virtual host. Fail-fast, confirmation-gated, and safe to re-run.`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Setup(debug)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to deploy.yml (default ./deploy.yml)")

	cmd.AddCommand(
		newDeployCmd(&cfgPath),
		newRenderCmd(&cfgPath),
		newBackupCmd(&cfgPath),
		newStatusCmd(&cfgPath),
		newDoctorCmd(&cfgPath),
		newSetupCmd(&cfgPath),
	)
	return cmd
}

func loadDeployer(cfgPath string, confirm crmdeploy.Confirmer) (*crmdeploy.Deployer, error) {
	cfg, err := crmdeploy.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return crmdeploy.NewDeployer(cfg, crmdeploy.NewExecutor(), confirm), nil
}

func newDeployCmd(cfgPath *string) *cobra.Command {
	var assumeYes bool

	c := &cobra.Command{
		Use:   "deploy",
		Short: "Run the full provisioning sequence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var confirm crmdeploy.Confirmer = crmdeploy.NewTerminalConfirmer(nil, nil)
			if assumeYes {
				confirm = crmdeploy.AssumeYesConfirmer()
			}
			d, err := loadDeployer(*cfgPath, confirm)
			if err != nil {
				return err
			}
			return d.Deploy(cmd.Context())
		},
	}
	c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to prompts (keeps existing venv, skips superuser)")
	return c
}

func newRenderCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render unit files and vhost into the staging dir only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeployer(*cfgPath, crmdeploy.AssumeYesConfirmer())
			if err != nil {
				return err
			}
			return d.Render(cmd.Context())
		},
	}
}

func newBackupCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Dump the application database into the backup dir",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeployer(*cfgPath, crmdeploy.AssumeYesConfirmer())
			if err != nil {
				return err
			}
			return d.Backup(cmd.Context())
		},
	}
}

func newStatusCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show service, site, and proxy config state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeployer(*cfgPath, crmdeploy.AssumeYesConfirmer())
			if err != nil {
				return err
			}
			return d.Status(cmd.Context())
		},
	}
}

func newDoctorCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run preflight checks (warnings only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := crmdeploy.LoadConfig(*cfgPath)
			if err != nil {
				return err
			}
			crmdeploy.Doctor(cmd.Context(), crmdeploy.NewExecutor(), cfg)
			return nil
		},
	}
}

func newSetupCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive deployment wizard",
		RunE: func(*cobra.Command, []string) error {
			return tui.StartWizard(*cfgPath)
		},
	}
}
