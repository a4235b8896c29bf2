package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"freeflix/models"
	playbacksvc "freeflix/services/playback"
	"freeflix/services/streaming"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PlayerPageHandler renders the HTML player for /player/{kind}/{id}. The
// page state lives in a playback session whose id travels in the query
// string, so every link on the page is a plain GET.
type PlayerPageHandler struct {
	Sessions playbackService
}

func NewPlayerPageHandler(s playbackService) *PlayerPageHandler {
	return &PlayerPageHandler{Sessions: s}
}

type playerPageData struct {
	Session  models.PlaybackSession
	IsSeries bool
	BasePath string
	Sources  []models.SourceInfo
	Episodes []int
}

func (h *PlayerPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := contentRoute(r)
	if !ok {
		renderNotFound(w)
		return
	}
	q := r.URL.Query()

	source := strings.TrimSpace(q.Get("source"))
	if source != "" {
		if _, known := streaming.Lookup(source); !known {
			log.Printf("[player-page] ignoring unknown source %q", source)
			source = ""
		}
	}

	session, err := h.Sessions.Open(r.Context(), playbacksvc.OpenRequest{
		Kind:      kind,
		ContentID: id,
		SessionID: q.Get("session"),
		SourceID:  source,
	})
	if err != nil {
		if errors.Is(err, playbacksvc.ErrContentNotFound) || errors.Is(err, playbacksvc.ErrInvalidContentID) {
			renderNotFound(w)
			return
		}
		log.Printf("[player-page] open %s/%d failed: %v", kind, id, err)
		http.Error(w, "failed to load player", http.StatusBadGateway)
		return
	}

	basePath := "/player/" + string(kind) + "/" + strconv.FormatInt(id, 10)
	if kind == models.KindSeries {
		action := q.Get("action")
		session = h.applyNavigation(session, action, q.Get("season"), q.Get("episode"))
		// prev/next are relative moves; redirect so a reload does not repeat them.
		if action != "" {
			http.Redirect(w, r, basePath+"?session="+url.QueryEscape(session.ID), http.StatusSeeOther)
			return
		}
	}

	data := playerPageData{
		Session:  session,
		IsSeries: kind == models.KindSeries,
		BasePath: basePath,
		Episodes: episodeNumbers(session),
	}
	for _, src := range streaming.Sources() {
		data.Sources = append(data.Sources, src.Info())
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "player.html", data); err != nil {
		log.Printf("[player-page] render failed: %v", err)
		http.Error(w, "failed to render player", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// applyNavigation applies the page's query actions in a fixed order: season,
// then episode, then prev/next. Rejected changes keep the previous state.
func (h *PlayerPageHandler) applyNavigation(session models.PlaybackSession, action, season, episode string) models.PlaybackSession {
	apply := func(next models.PlaybackSession, err error) {
		if err != nil {
			log.Printf("[player-page] session %s: %v", session.ID, err)
			return
		}
		session = next
	}
	if n, err := strconv.Atoi(season); err == nil {
		apply(h.Sessions.SelectSeason(session.ID, n))
	}
	if n, err := strconv.Atoi(episode); err == nil {
		apply(h.Sessions.SelectEpisode(session.ID, n))
	}
	switch strings.ToLower(action) {
	case "next":
		apply(h.Sessions.Next(session.ID))
	case "prev":
		apply(h.Sessions.Prev(session.ID))
	}
	return session
}

func episodeNumbers(session models.PlaybackSession) []int {
	for _, s := range session.Seasons {
		if s.Number != session.Selection.Season {
			continue
		}
		out := make([]int, s.EpisodeCount)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	return nil
}

func renderNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := pageTemplates.ExecuteTemplate(w, "not_found.html", nil); err != nil {
		log.Printf("[player-page] render not found: %v", err)
	}
}
