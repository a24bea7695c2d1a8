package tasks

import (
	"fmt"

	"github.com/desertthunder/ytag/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase (0 when unknown)
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchChannel Phase = iota
	ListVideos
	FetchTags
	AggregateTags
	CreatePlaylist
	InsertVideos
)

func (p Phase) String() string {
	switch p {
	case FetchChannel:
		return "fetch_channel"
	case ListVideos:
		return "list_videos"
	case FetchTags:
		return "fetch_tags"
	case AggregateTags:
		return "aggregate_tags"
	case CreatePlaylist:
		return "create_playlist"
	case InsertVideos:
		return "insert_videos"
	default:
		return ""
	}
}

func fetchChannelUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Step:    1,
		Total:   1,
		Message: "Looking up your channel...",
	}
}

func listVideosUpdate(page, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListVideos,
		Step:    page,
		Message: fmt.Sprintf("Listing uploads (page %d, %d videos so far)...", page, found),
	}
}

func listVideosDoneUpdate(channel string, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListVideos,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d videos on %s", found, channel),
	}
}

func fetchTagsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTags,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching video tags...", step, total),
	}
}

func aggregateUpdate(tagCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AggregateTags,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Aggregated %d distinct tags", tagCount),
	}
}

func createPlaylistUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q...", title),
	}
}

func playlistCreatedUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Title, pl.ID),
		Data:    pl,
	}
}

func insertVideoUpdate(step, total int, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding %s...", step, total, videoID),
	}
}

func insertFailedUpdate(step, total int, videoID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, videoID, err),
	}
}
