package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/desertthunder/ytag/internal/tags"
	"github.com/desertthunder/ytag/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate analyzes the channel, collects every video carrying the
// given tag, and builds a playlist from them.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	tag := cmd.String("tag")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	visibility, err := models.ParseVisibility(cmd.String("visibility"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	engine, err := r.ensureEngine(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("building playlist", "tag", tag)

	analysis, err := runWithProgress(r, !useJSON, func(progress chan<- tasks.ProgressUpdate) (*tasks.AnalysisResult, error) {
		return engine.Analyze(ctx, progress)
	})
	if err != nil {
		return err
	}

	videoIDs := tags.VideosWithTag(analysis.Videos, tag)
	if len(videoIDs) == 0 {
		return fmt.Errorf("%w: no videos tagged %q (tags match exactly; run 'ytag analyze' to see them)", shared.ErrInvalidArgument, tag)
	}

	req := tasks.PlaylistRequest{
		Tag:         tag,
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Visibility:  visibility,
		VideoIDs:    videoIDs,
	}

	result, err := runWithProgress(r, !useJSON, func(progress chan<- tasks.ProgressUpdate) (*tasks.PlaylistResult, error) {
		return engine.CreatePlaylist(ctx, req, progress)
	})
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlainln("✓ Playlist created: %s", result.Playlist.Title)
	r.writePlain("  URL: %s\n", result.Playlist.URL())
	r.writePlain("  Added %d of %d videos\n", result.Inserted, result.Requested)

	if len(result.Failures) > 0 {
		r.writePlainln("⚠ %d videos could not be added:", len(result.Failures))
		for _, failure := range result.Failures {
			r.writePlain("  ✗ %s: %v\n", failure.VideoID, failure.Err)
		}
	}

	return nil
}
