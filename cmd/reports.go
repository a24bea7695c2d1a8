package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/repositories"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/urfave/cli/v3"
)

// ReportsList prints saved report summaries, newest first.
func (r *Runner) ReportsList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.reportRepository()
	if err != nil {
		return err
	}

	reports, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(reports, true)
	}

	if len(reports) == 0 {
		r.writePlain("No saved reports. Run 'ytag analyze --save' to create one.\n")
		return nil
	}

	r.writePlain("Found %d reports:\n\n", len(reports))
	for _, report := range reports {
		r.writePlain("#%d  %s\n", report.Sequence, report.CreatedAt.Format("2006-01-02 15:04"))
		r.writePlain("    Channel: %s\n", report.ChannelTitle)
		r.writePlain("    Videos: %d, distinct tags: %d\n\n", report.VideoCount, report.TagCount)
	}

	return nil
}

// ReportsShow prints one saved report with its tag rows.
func (r *Runner) ReportsShow(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.reportRepository()
	if err != nil {
		return err
	}

	report, err := lookupReport(repo, cmd.Args().First())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}

	r.printReport(report, cmd.Int("limit"))
	return nil
}

// ReportsDelete removes one saved report.
func (r *Runner) ReportsDelete(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.reportRepository()
	if err != nil {
		return err
	}

	report, err := lookupReport(repo, cmd.Args().First())
	if err != nil {
		return err
	}

	if err := repo.Delete(report.ID); err != nil {
		return err
	}

	r.writePlain("✓ Deleted report #%d (%s)\n", report.Sequence, report.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// lookupReport resolves an argument as a sequence number or a report ID.
func lookupReport(repo *repositories.ReportRepository, arg string) (*models.Report, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: report number or ID", shared.ErrMissingArgument)
	}

	if sequence, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return repo.GetBySequence(sequence)
	}

	return repo.Get(arg)
}
