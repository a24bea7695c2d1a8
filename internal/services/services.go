// package services defines interface Service for the YouTube Data API operations
// the application depends on.
package services

import (
	"context"

	"github.com/desertthunder/ytag/internal/models"
)

// MaxBatchSize is the largest number of video IDs the videos.list
// endpoint accepts in one call.
const MaxBatchSize = 50

// VideoPage is one page of the authenticated channel's uploads.
type VideoPage struct {
	VideoIDs      []string
	NextPageToken string
	ChannelTitle  string
}

// Service defines the interface for the video platform backing the
// application. Implementations wrap the YouTube Data API; tests
// substitute fakes.
type Service interface {
	// ListOwnedVideos retrieves one page of the authenticated channel's
	// uploaded videos. Pass an empty pageToken for the first page; a
	// returned VideoPage with an empty NextPageToken is the last page.
	ListOwnedVideos(ctx context.Context, pageToken string) (*VideoPage, error)

	// GetVideoTags retrieves tag metadata for up to MaxBatchSize videos.
	// The result preserves the order of videoIDs.
	GetVideoTags(ctx context.Context, videoIDs []string) ([]models.Video, error)

	// CreatePlaylist creates an empty playlist on the authenticated channel.
	CreatePlaylist(ctx context.Context, title, description string, visibility models.Visibility) (*models.Playlist, error)

	// InsertPlaylistItem appends a single video to a playlist.
	InsertPlaylistItem(ctx context.Context, playlistID, videoID string) error

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}
