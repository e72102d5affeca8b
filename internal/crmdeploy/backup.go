package crmdeploy

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// dumpDatabase takes a pg_dump before migrations run. Skipped when no
// DATABASE_URL is known; failure is tolerated by the deploy sequence.
func (d *Deployer) dumpDatabase(ctx context.Context) error {
	if d.Config.DatabaseURL == "" {
		log.Info().Msg("no database_url configured, dump skipped")
		return nil
	}
	ok, err := d.Confirm.Confirm(KeyDumpDB, "Dump the database before migrating?", true)
	if err != nil {
		return err
	}
	if !ok {
		log.Info().Msg("database dump skipped")
		return nil
	}
	return d.Backup(ctx)
}

// Backup writes a timestamped plain-SQL dump into the backup dir.
func (d *Deployer) Backup(ctx context.Context) error {
	if d.Config.DatabaseURL == "" {
		return fmt.Errorf("no database_url configured (deploy.yml or DATABASE_URL in .env)")
	}
	if err := ensureDir(d.Config.BackupDir, 0o750); err != nil {
		return err
	}

	ts := time.Now().UTC().Format("20060102T150405Z")
	out := filepath.Join(d.Config.BackupDir, fmt.Sprintf("%s_%s.sql", d.Config.Project, ts))

	err := d.Exec.Stream(ctx, d.Config.ProjectDir,
		"pg_dump", "--no-owner", "--dbname", d.Config.DatabaseURL, "-f", out)
	if err != nil {
		return fmt.Errorf("pg_dump: %w", err)
	}
	d.printf("wrote %s\n", out)
	return nil
}
