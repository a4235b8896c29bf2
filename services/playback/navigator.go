package playback

import (
	"errors"
	"fmt"
	"sort"

	"freeflix/models"
)

var (
	ErrNotSeries         = errors.New("content is not a series")
	ErrEpisodeOutOfRange = errors.New("episode out of range")
)

// Navigator holds the season/episode position for one title. Films stay
// idle; for series the position is always a known season and an episode
// inside that season's range.
type Navigator struct {
	kind    models.MediaKind
	seasons []models.Season // sorted by number, never empty for series
	season  int
	episode int
	phase   models.PlaybackPhase
}

// NewNavigator creates a navigator positioned at the start of the title.
// Seasons with a non-positive number or episode count are ignored.
func NewNavigator(kind models.MediaKind, seasons []models.Season) *Navigator {
	n := &Navigator{kind: kind}
	if kind == models.KindSeries {
		n.seasons = usableSeasons(seasons)
	}
	n.Reset()
	return n
}

func usableSeasons(in []models.Season) []models.Season {
	out := make([]models.Season, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, s := range in {
		if s.Number < 1 || s.EpisodeCount < 1 || seen[s.Number] {
			continue
		}
		seen[s.Number] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		out = append(out, models.FallbackSeasons...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Reset returns to the initial position: idle for films, season 1 (or the
// first known season) episode 1 for series.
func (n *Navigator) Reset() {
	if n.kind != models.KindSeries {
		n.phase = models.PhaseIdle
		n.season, n.episode = 0, 0
		return
	}
	n.season = n.seasons[0].Number
	if _, ok := n.indexOf(1); ok {
		n.season = 1
	}
	n.episode = 1
	n.phase = models.PhaseSeasonSelected
}

// Season returns the current season number (0 for films).
func (n *Navigator) Season() int { return n.season }

// Episode returns the current episode number (0 for films).
func (n *Navigator) Episode() int { return n.episode }

// Phase returns the navigation phase.
func (n *Navigator) Phase() models.PlaybackPhase { return n.phase }

// Seasons returns the navigable seasons.
func (n *Navigator) Seasons() []models.Season {
	out := make([]models.Season, len(n.seasons))
	copy(out, n.seasons)
	return out
}

// EpisodeCount returns the number of episodes in the given season, or 0 if
// the season is unknown.
func (n *Navigator) EpisodeCount(season int) int {
	if i, ok := n.indexOf(season); ok {
		return n.seasons[i].EpisodeCount
	}
	return 0
}

func (n *Navigator) indexOf(season int) (int, bool) {
	for i, s := range n.seasons {
		if s.Number == season {
			return i, true
		}
	}
	return -1, false
}

// SelectSeason moves to season num and rewinds to its first episode.
// An unknown season clamps to the nearest known one, preferring the lower on ties.
func (n *Navigator) SelectSeason(num int) error {
	if n.kind != models.KindSeries {
		return ErrNotSeries
	}
	n.season = n.nearestSeason(num)
	n.episode = 1
	n.phase = models.PhaseSeasonSelected
	return nil
}

func (n *Navigator) nearestSeason(num int) int {
	best := n.seasons[0].Number
	bestDist := abs(best - num)
	for _, s := range n.seasons[1:] {
		if d := abs(s.Number - num); d < bestDist {
			best, bestDist = s.Number, d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SelectEpisode jumps to episode num of the current season. Out-of-range
// requests are rejected and leave the position unchanged.
func (n *Navigator) SelectEpisode(num int) error {
	if n.kind != models.KindSeries {
		return ErrNotSeries
	}
	count := n.EpisodeCount(n.season)
	if num < 1 || num > count {
		return fmt.Errorf("season %d has %d episodes, got %d: %w", n.season, count, num, ErrEpisodeOutOfRange)
	}
	n.episode = num
	n.phase = models.PhaseEpisodeSelected
	return nil
}

// NextEpisode advances one episode, rolling into the first episode of the
// next known season. It reports false when already at the very last episode.
func (n *Navigator) NextEpisode() bool {
	if n.kind != models.KindSeries {
		return false
	}
	i, _ := n.indexOf(n.season)
	switch {
	case n.episode < n.seasons[i].EpisodeCount:
		n.episode++
	case i+1 < len(n.seasons):
		n.season = n.seasons[i+1].Number
		n.episode = 1
	default:
		return false
	}
	n.phase = models.PhaseEpisodeSelected
	return true
}

// PrevEpisode goes back one episode, rolling into the last episode of the
// previous known season. It reports false when already at the very first episode.
func (n *Navigator) PrevEpisode() bool {
	if n.kind != models.KindSeries {
		return false
	}
	i, _ := n.indexOf(n.season)
	switch {
	case n.episode > 1:
		n.episode--
	case i > 0:
		n.season = n.seasons[i-1].Number
		n.episode = n.seasons[i-1].EpisodeCount
	default:
		return false
	}
	n.phase = models.PhaseEpisodeSelected
	return true
}

// Restore moves to (season, episode) when both are valid for this title and
// reports whether it did. Used to carry state across a navigation.
func (n *Navigator) Restore(season, episode int) bool {
	if n.kind != models.KindSeries {
		return false
	}
	count := n.EpisodeCount(season)
	if count == 0 || episode < 1 || episode > count {
		return false
	}
	n.season, n.episode = season, episode
	n.phase = models.PhaseEpisodeSelected
	return true
}
