package models

import "time"

// PlaybackPhase is the navigation state of a playback selection.
type PlaybackPhase string

const (
	// PhaseIdle applies to films, which have no season/episode concept.
	PhaseIdle            PlaybackPhase = "idle"
	PhaseSeasonSelected  PlaybackPhase = "season_selected"
	PhaseEpisodeSelected PlaybackPhase = "episode_selected"
)

// PlaybackSelection is the viewer-controlled state of a player.
type PlaybackSelection struct {
	ContentID int64         `json:"contentId"`
	Kind      MediaKind     `json:"kind"`
	SourceID  string        `json:"sourceId"`
	Season    int           `json:"season"`
	Episode   int           `json:"episode"`
	Phase     PlaybackPhase `json:"phase"`
}

// PlaybackSession ties a selection to a viewer for the lifetime of a player.
type PlaybackSession struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Selection PlaybackSelection `json:"selection"`
	Seasons   []Season          `json:"seasons,omitempty"`
	EmbedURL  string            `json:"embedUrl"`
	CreatedAt time.Time         `json:"createdAt"`
	LastSeen  time.Time         `json:"lastSeen"`
}

// IsIdle reports whether the session has not been touched within ttl.
func (s PlaybackSession) IsIdle(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.LastSeen) > ttl
}

// SourceInfo is the public description of an embed provider.
type SourceInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
