// YouTube Data API v3 [Service] implementation.
//
// Talks to the real API through google.golang.org/api/youtube/v3 using
// an OAuth token source supplied by the caller.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeService implements the Service interface against the YouTube Data API.
type YouTubeService struct {
	api      *youtube.Service
	pageSize int64

	// uploads playlist ID and channel title, resolved lazily on first
	// call to ListOwnedVideos
	uploadsID    string
	channelTitle string
}

// NewYouTubeService creates a new YouTube Data API service instance
// authenticated by the given token source.
func NewYouTubeService(ctx context.Context, ts oauth2.TokenSource, pageSize int) (*YouTubeService, error) {
	api, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}

	if pageSize <= 0 || pageSize > MaxBatchSize {
		pageSize = MaxBatchSize
	}

	return &YouTubeService{api: api, pageSize: int64(pageSize)}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// resolveUploads looks up the authenticated channel and caches its
// uploads playlist ID and title.
func (y *YouTubeService) resolveUploads(ctx context.Context) error {
	if y.uploadsID != "" {
		return nil
	}

	resp, err := y.api.Channels.List([]string{"contentDetails", "snippet"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return mapAPIError(err)
	}

	if len(resp.Items) == 0 {
		return fmt.Errorf("%w: no channel for authenticated account", shared.ErrAPIRequest)
	}

	channel := resp.Items[0]
	y.uploadsID = channel.ContentDetails.RelatedPlaylists.Uploads
	y.channelTitle = channel.Snippet.Title

	return nil
}

// ListOwnedVideos retrieves one page of the channel's uploads playlist.
func (y *YouTubeService) ListOwnedVideos(ctx context.Context, pageToken string) (*VideoPage, error) {
	if err := y.resolveUploads(ctx); err != nil {
		return nil, err
	}

	call := y.api.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(y.uploadsID).
		MaxResults(y.pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, mapAPIError(err)
	}

	page := &VideoPage{
		VideoIDs:      make([]string, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
		ChannelTitle:  y.channelTitle,
	}
	for _, item := range resp.Items {
		page.VideoIDs = append(page.VideoIDs, item.ContentDetails.VideoId)
	}

	return page, nil
}

// GetVideoTags retrieves snippet metadata for a batch of videos.
//
// The API silently drops IDs it cannot resolve (deleted or private
// videos), so the result may be shorter than videoIDs.
func (y *YouTubeService) GetVideoTags(ctx context.Context, videoIDs []string) ([]models.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds %d video IDs", shared.ErrInvalidArgument, len(videoIDs), MaxBatchSize)
	}

	resp, err := y.api.Videos.List([]string{"snippet"}).Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError(err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		video := models.Video{ID: item.Id, Title: item.Snippet.Title, Tags: item.Snippet.Tags}
		if video.Tags == nil {
			video.Tags = []string{}
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// CreatePlaylist creates an empty playlist on the authenticated channel.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, visibility models.Visibility) (*models.Playlist, error) {
	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube.PlaylistStatus{
			PrivacyStatus: visibility.String(),
		},
	}

	created, err := y.api.Playlists.Insert([]string{"snippet", "status"}, playlist).Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError(err)
	}

	return &models.Playlist{
		ID:          created.Id,
		Title:       created.Snippet.Title,
		Description: created.Snippet.Description,
		Visibility:  visibility,
	}, nil
}

// InsertPlaylistItem appends a video to the end of a playlist.
func (y *YouTubeService) InsertPlaylistItem(ctx context.Context, playlistID, videoID string) error {
	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	if _, err := y.api.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do(); err != nil {
		return mapAPIError(err)
	}

	return nil
}

// mapAPIError translates googleapi errors into the application's
// sentinel errors so callers can match with errors.Is.
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	switch apiErr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", shared.ErrTokenExpired, apiErr.Message)
	case http.StatusForbidden:
		for _, e := range apiErr.Errors {
			if e.Reason == "quotaExceeded" || e.Reason == "rateLimitExceeded" || e.Reason == "dailyLimitExceeded" {
				return fmt.Errorf("%w: %s", shared.ErrQuotaExceeded, apiErr.Message)
			}
		}
		return fmt.Errorf("%w: %s", shared.ErrAuthRequired, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, apiErr.Message)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, apiErr.Message)
	default:
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, apiErr.Code, apiErr.Message)
	}
}

// ChunkIDs splits ids into batches of at most size elements, preserving order.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxBatchSize
	}

	var batches [][]string
	for len(ids) > 0 {
		n := min(size, len(ids))
		batches = append(batches, ids[:n])
		ids = ids[n:]
	}
	return batches
}
