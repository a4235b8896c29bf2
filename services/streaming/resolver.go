package streaming

import (
	"fmt"

	"freeflix/models"
)

// Resolve builds the embed URL for a title on the given provider. Each
// provider has its own grammar, so there is one branch per provider id.
// Season and episode are ignored for films. An empty string means the input
// is incomplete and no frame should be rendered.
func Resolve(src SourceTemplate, contentID int64, kind models.MediaKind, season, episode int) string {
	if contentID <= 0 || !kind.Valid() || src.BaseURL == "" {
		return ""
	}
	if kind == models.KindSeries && (season < 1 || episode < 1) {
		return ""
	}

	base := src.BaseURL
	switch src.ID {
	case SourceVidFast, SourceVidSrcCC, SourceVidSrcXYZ, SourceVidSrcPro:
		// Path-segment grammar: /movie/{id} and /tv/{id}/{season}/{episode}.
		if kind == models.KindFilm {
			return fmt.Sprintf("%s/movie/%d", base, contentID)
		}
		return fmt.Sprintf("%s/tv/%d/%d/%d", base, contentID, season, episode)

	case SourceEmbedAPI:
		if kind == models.KindFilm {
			return fmt.Sprintf("%s/?id=%d", base, contentID)
		}
		return fmt.Sprintf("%s/?id=%d&s=%d&e=%d", base, contentID, season, episode)

	case SourceSuperEmbed:
		if kind == models.KindFilm {
			return fmt.Sprintf("%s/?video_id=%d&tmdb=1", base, contentID)
		}
		return fmt.Sprintf("%s/?video_id=%d&tmdb=1&s=%d&e=%d", base, contentID, season, episode)

	default:
		return ""
	}
}

// ResolveSelection resolves a playback selection against the catalog.
func ResolveSelection(sel models.PlaybackSelection) (string, error) {
	src, ok := Lookup(sel.SourceID)
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", sel.SourceID, ErrUnknownSource)
	}
	return Resolve(src, sel.ContentID, sel.Kind, sel.Season, sel.Episode), nil
}
