package main

import (
	"context"

	"github.com/desertthunder/ytag/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Configuration written to %s\n\n", path)
	r.writePlain("Edit it to point client_secrets at your Google Cloud OAuth client,\n")
	r.writePlain("then run: ytag auth login\n")

	return nil
}

// SetupDatabase creates the report database and applies migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.reportRepository(); err != nil {
		return err
	}

	r.writePlain("✓ Report database ready at %s\n", r.config.Database.Path)
	return nil
}
