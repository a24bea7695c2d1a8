// package tags aggregates tag frequencies across a channel's videos.
//
// Aggregation is pure and deterministic: the same set of videos always
// produces the same ordered result regardless of input order.
package tags

import (
	"sort"

	"github.com/desertthunder/ytag/internal/models"
)

// Aggregate counts how many videos carry each tag and returns the
// counts sorted by count descending, then tag ascending.
//
// A tag repeated on a single video is counted once for that video.
// Tags are compared exactly, with no normalization of case or
// whitespace. VideoIDs in each row preserve input video order.
func Aggregate(videos []models.Video) []models.TagCount {
	byTag := make(map[string][]string)

	for _, video := range videos {
		seen := make(map[string]struct{}, len(video.Tags))
		for _, tag := range video.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			byTag[tag] = append(byTag[tag], video.ID)
		}
	}

	counts := make([]models.TagCount, 0, len(byTag))
	for tag, ids := range byTag {
		counts = append(counts, models.TagCount{Tag: tag, Count: len(ids), VideoIDs: ids})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})

	return counts
}

// VideosWithTag returns the IDs of videos carrying the given tag,
// preserving input order. The match is exact.
func VideosWithTag(videos []models.Video, tag string) []string {
	var ids []string
	for _, video := range videos {
		for _, t := range video.Tags {
			if t == tag {
				ids = append(ids, video.ID)
				break
			}
		}
	}
	return ids
}
