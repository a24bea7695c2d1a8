// package models defines the domain types shared across services, tasks, and storage.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Video is a single video owned by the authenticated channel.
// Tags holds the uploader-assigned keywords; videos without tags
// carry an empty slice.
type Video struct {
	ID    string   `json:"id"`
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags"`
}

// TagCount is one row of an aggregation result.
//
// Count always equals len(VideoIDs); VideoIDs preserves the order in
// which the videos were listed from the channel.
type TagCount struct {
	Tag      string   `json:"tag"`
	Count    int      `json:"count"`
	VideoIDs []string `json:"video_ids"`
}

// Visibility is the privacy status applied to a created playlist.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
	VisibilityUnlisted
)

// String returns the API privacy status value for the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityUnlisted:
		return "unlisted"
	default:
		return "private"
	}
}

// ParseVisibility converts a privacy status string to a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private", "":
		return VisibilityPrivate, nil
	case "public":
		return VisibilityPublic, nil
	case "unlisted":
		return VisibilityUnlisted, nil
	default:
		return VisibilityPrivate, fmt.Errorf("unknown visibility %q", s)
	}
}

// Playlist is a playlist created on the authenticated channel.
type Playlist struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	VideoIDs    []string   `json:"video_ids,omitempty"`
}

// URL returns the public watch URL for the playlist.
func (p *Playlist) URL() string {
	return "https://www.youtube.com/playlist?list=" + p.ID
}

// Report is a saved tag analysis run.
type Report struct {
	ID           string     `json:"id"`
	Sequence     int64      `json:"sequence"`
	ChannelTitle string     `json:"channel_title"`
	VideoCount   int        `json:"video_count"`
	TagCount     int        `json:"tag_count"`
	CreatedAt    time.Time  `json:"created_at"`
	Tags         []TagCount `json:"tags,omitempty"`
}
