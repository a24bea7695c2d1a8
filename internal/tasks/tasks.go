// package tasks implements the tag analysis and playlist creation workflows.
//
// The core abstraction is Engine, which orchestrates YouTube API calls through
// a [services.Service] and emits progress updates via channels for non-blocking
// status reporting to CLI/UI layers. API calls are paced with a rate limiter;
// failed calls are never retried.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/services"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/desertthunder/ytag/internal/tags"
	"golang.org/x/time/rate"
)

// AnalysisResult contains all data from a full tag analysis run.
type AnalysisResult struct {
	ChannelTitle string            // Title of the authenticated channel
	Videos       []models.Video    // Every owned video with its tags, in listing order
	Tags         []models.TagCount // Aggregated counts, sorted
	VideoCount   int               // Number of videos listed
}

// InsertionError records a single video that could not be added to a playlist.
type InsertionError struct {
	VideoID string
	Err     error
}

func (e InsertionError) Error() string {
	return fmt.Sprintf("failed to insert %s: %v", e.VideoID, e.Err)
}

func (e InsertionError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the wrapped error as its message string.
func (e InsertionError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		VideoID string `json:"video_id"`
		Error   string `json:"error"`
	}{VideoID: e.VideoID, Error: msg})
}

// PlaylistRequest describes the playlist to build from an analysis.
type PlaylistRequest struct {
	Tag         string            // Tag the videos were selected by
	Title       string            // Playlist title; defaults to DefaultPlaylistTitle(Tag) when empty
	Description string            // Playlist description
	Visibility  models.Visibility // Privacy status for the new playlist
	VideoIDs    []string          // Videos to insert, in order
}

// PlaylistResult contains the outcome of a playlist build, including
// per-video failures. The operation is partial on failure: the playlist
// exists with every video inserted before and after any failures.
type PlaylistResult struct {
	Playlist  *models.Playlist
	Requested int
	Inserted  int
	Failures  []InsertionError
}

// Engine defines the long-running operations the CLI and TUI drive.
type Engine interface {
	// Analyze lists every video owned by the authenticated channel and
	// aggregates tag frequencies.
	Analyze(ctx context.Context, progress chan<- ProgressUpdate) (*AnalysisResult, error)

	// CreatePlaylist creates a playlist and fills it with the requested
	// videos, collecting per-video insertion failures.
	CreatePlaylist(ctx context.Context, req PlaylistRequest, progress chan<- ProgressUpdate) (*PlaylistResult, error)
}

// TagEngine implements Engine against a [services.Service].
type TagEngine struct {
	svc     services.Service
	limiter *rate.Limiter
}

// NewTagEngine creates a TagEngine pacing its API calls at rps requests
// per second. Zero or negative rps disables pacing.
func NewTagEngine(svc services.Service, rps float64) *TagEngine {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &TagEngine{svc: svc, limiter: rate.NewLimiter(limit, 1)}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *TagEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// wait blocks until the limiter permits the next API call.
func (e *TagEngine) wait(ctx context.Context) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return nil
}

// Analyze performs a full tag analysis of the authenticated channel.
//
// Listing and tag fetches fail fast: any API error aborts the run and is
// returned to the caller. An account with no uploads yields an empty result.
func (e *TagEngine) Analyze(ctx context.Context, progress chan<- ProgressUpdate) (*AnalysisResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: %s service not initialized", shared.ErrServiceUnavailable, "video")
	}

	result := &AnalysisResult{}

	e.sendProgress(progress, fetchChannelUpdate())

	var videoIDs []string
	pageToken := ""
	for page := 1; ; page++ {
		if err := e.wait(ctx); err != nil {
			return nil, err
		}

		videoPage, err := e.svc.ListOwnedVideos(ctx, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list videos: %w", err)
		}

		videoIDs = append(videoIDs, videoPage.VideoIDs...)
		result.ChannelTitle = videoPage.ChannelTitle

		e.sendProgress(progress, listVideosUpdate(page, len(videoIDs)))

		pageToken = videoPage.NextPageToken
		if pageToken == "" {
			break
		}
	}

	result.VideoCount = len(videoIDs)
	e.sendProgress(progress, listVideosDoneUpdate(result.ChannelTitle, result.VideoCount))

	if len(videoIDs) == 0 {
		result.Videos = []models.Video{}
		result.Tags = []models.TagCount{}
		return result, nil
	}

	batches := services.ChunkIDs(videoIDs, services.MaxBatchSize)
	for i, batch := range batches {
		e.sendProgress(progress, fetchTagsUpdate(i+1, len(batches)))

		if err := e.wait(ctx); err != nil {
			return nil, err
		}

		videos, err := e.svc.GetVideoTags(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video tags: %w", err)
		}
		result.Videos = append(result.Videos, videos...)
	}

	result.Tags = tags.Aggregate(result.Videos)
	e.sendProgress(progress, aggregateUpdate(len(result.Tags)))

	return result, nil
}

// CreatePlaylist creates the playlist first, then inserts videos one at a
// time in the requested order.
//
// Playlist creation failure aborts the operation. Insertion failures do
// not: each failed video is recorded in the result and the run continues
// with the remaining videos. A canceled context stops between calls.
func (e *TagEngine) CreatePlaylist(ctx context.Context, req PlaylistRequest, progress chan<- ProgressUpdate) (*PlaylistResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: %s service not initialized", shared.ErrServiceUnavailable, "video")
	}
	if len(req.VideoIDs) == 0 {
		return nil, fmt.Errorf("%w: no videos to add", shared.ErrInvalidArgument)
	}

	title := req.Title
	if title == "" {
		title = DefaultPlaylistTitle(req.Tag)
	}

	e.sendProgress(progress, createPlaylistUpdate(title))

	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	playlist, err := e.svc.CreatePlaylist(ctx, title, req.Description, req.Visibility)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	e.sendProgress(progress, playlistCreatedUpdate(playlist))

	result := &PlaylistResult{Playlist: playlist, Requested: len(req.VideoIDs)}
	total := len(req.VideoIDs)

	for i, videoID := range req.VideoIDs {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}

		e.sendProgress(progress, insertVideoUpdate(i+1, total, videoID))

		if err := e.wait(ctx); err != nil {
			return result, err
		}

		if err := e.svc.InsertPlaylistItem(ctx, playlist.ID, videoID); err != nil {
			result.Failures = append(result.Failures, InsertionError{VideoID: videoID, Err: err})
			e.sendProgress(progress, insertFailedUpdate(i+1, total, videoID, err))
			continue
		}

		result.Inserted++
		playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	}

	return result, nil
}

// DefaultPlaylistTitle derives a playlist title from a tag, e.g.
// "lo-fi beats" becomes "Lo-fi Beats (tagged)".
func DefaultPlaylistTitle(tag string) string {
	words := strings.Fields(tag)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	if len(words) == 0 {
		return "Tagged videos"
	}
	return strings.Join(words, " ") + " (tagged)"
}
