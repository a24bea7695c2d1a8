package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/ytag/internal/formatter"
	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Analyze lists every owned video and prints the aggregated tag counts.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	limit := cmd.Int("limit")
	save := cmd.Bool("save")
	outputFile := cmd.String("output")

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	engine, err := r.ensureEngine(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("starting tag analysis")

	result, err := runWithProgress(r, !useJSON, func(progress chan<- tasks.ProgressUpdate) (*tasks.AnalysisResult, error) {
		return engine.Analyze(ctx, progress)
	})
	if err != nil {
		return err
	}

	report := buildReport(result)

	if save {
		repo, err := r.reportRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(report); err != nil {
			return err
		}
		r.logger.Info("report saved", "report", report.ID, "sequence", report.Sequence)
	}

	if outputFile != "" {
		if err := formatter.WriteExport(report, format, outputFile); err != nil {
			return err
		}
		r.logger.Info("report written", "file", outputFile, "format", format)
	}

	if useJSON {
		return r.writeJSON(reportView(report, limit), pretty)
	}

	r.printReport(report, limit)
	return nil
}

// runWithProgress executes fn with a progress channel, echoing updates to
// the terminal when echo is set.
func runWithProgress[T any](r *Runner, echo bool, fn func(progress chan<- tasks.ProgressUpdate) (T, error)) (T, error) {
	progress := make(chan tasks.ProgressUpdate, 50)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if echo {
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()

	result, err := fn(progress)
	close(progress)
	wg.Wait()

	return result, err
}

// buildReport converts an analysis result into a persistable report.
func buildReport(result *tasks.AnalysisResult) *models.Report {
	return &models.Report{
		ChannelTitle: result.ChannelTitle,
		VideoCount:   result.VideoCount,
		TagCount:     len(result.Tags),
		Tags:         result.Tags,
	}
}

// reportView trims a report's tags for display without mutating the original.
func reportView(report *models.Report, limit int) *models.Report {
	if limit <= 0 || limit >= len(report.Tags) {
		return report
	}
	view := *report
	view.Tags = report.Tags[:limit]
	return &view
}

func (r *Runner) printReport(report *models.Report, limit int) {
	r.writePlainHeader(fmt.Sprintf("Tag report: %s", report.ChannelTitle))
	r.writePlain("Videos: %d\n", report.VideoCount)
	r.writePlain("Distinct tags: %d\n\n", report.TagCount)

	if report.TagCount == 0 {
		r.writePlain("No tags found on your videos.\n")
		return
	}

	shown := reportView(report, limit)
	for i, tag := range shown.Tags {
		r.writePlain("%4d. %s (%d)\n", i+1, tag.Tag, tag.Count)
	}
	if hidden := report.TagCount - len(shown.Tags); hidden > 0 {
		r.writePlain("\n... and %d more (use --limit 0 to show all)\n", hidden)
	}

	r.writePlain("\nNext: ytag playlist create --tag <tag>\n")
}
