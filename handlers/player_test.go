package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"freeflix/models"
	playbacksvc "freeflix/services/playback"
)

type fakeDetailSource struct {
	details map[int64]*models.ContentDetail
}

func (f *fakeDetailSource) Detail(_ context.Context, id int64, kind models.MediaKind) (*models.ContentDetail, error) {
	d, ok := f.details[id]
	if !ok || d.Kind != kind {
		return nil, nil
	}
	return d, nil
}

func newTestPlaybackService(t *testing.T) *playbacksvc.Service {
	t.Helper()
	details := &fakeDetailSource{details: map[int64]*models.ContentDetail{
		550: {ContentSummary: models.ContentSummary{ID: 550, DisplayName: "Fight Club", Kind: models.KindFilm}},
		1399: {
			ContentSummary: models.ContentSummary{ID: 1399, DisplayName: "Game of Thrones", Kind: models.KindSeries},
			Seasons: []models.Season{
				{Number: 1, EpisodeCount: 8},
				{Number: 2, EpisodeCount: 10},
			},
		},
	}}
	svc := playbacksvc.NewService(details, "vidsrc-cc", playbacksvc.DefaultSessionTTL)
	t.Cleanup(svc.Shutdown)
	return svc
}

func newPlayerRouter(t *testing.T) (*mux.Router, *playbacksvc.Service) {
	t.Helper()
	svc := newTestPlaybackService(t)
	h := NewPlayerHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/player/{kind}/{id}/sessions", h.Open).Methods(http.MethodPost)
	r.HandleFunc("/api/player/sessions/{sessionID}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/player/sessions/{sessionID}", h.Close).Methods(http.MethodDelete)
	r.HandleFunc("/api/player/sessions/{sessionID}/{action}", h.Action).Methods(http.MethodPost)
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) models.PlaybackSession {
	t.Helper()
	var s models.PlaybackSession
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return s
}

func TestPlayerHandler_OpenFilm(t *testing.T) {
	r, _ := newPlayerRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/player/movie/550/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	s := decodeSession(t, rec)
	if s.ID == "" {
		t.Fatal("expected session id")
	}
	if s.EmbedURL != "https://vidsrc.cc/v2/embed/movie/550" {
		t.Fatalf("unexpected embed url %q", s.EmbedURL)
	}
	if s.Selection.Phase != models.PhaseIdle {
		t.Fatalf("expected idle phase for film, got %s", s.Selection.Phase)
	}
}

func TestPlayerHandler_OpenNotFound(t *testing.T) {
	r, _ := newPlayerRouter(t)

	for _, path := range []string{
		"/api/player/movie/999/sessions",
		"/api/player/cartoon/550/sessions",
		"/api/player/movie/0/sessions",
		"/api/player/tv/550/sessions",
	} {
		rec := doJSON(t, r, http.MethodPost, path, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", path, rec.Code)
		}
		var body map[string]string
		json.NewDecoder(rec.Body).Decode(&body)
		if body["error"] != "content not found" {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}
}

func TestPlayerHandler_OpenUnknownSource(t *testing.T) {
	r, _ := newPlayerRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/player/movie/550/sessions", map[string]any{"sourceId": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPlayerHandler_SeriesNavigation(t *testing.T) {
	r, _ := newPlayerRouter(t)

	s := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/player/tv/1399/sessions", nil))
	if s.Selection.Season != 1 || s.Selection.Episode != 1 {
		t.Fatalf("expected S1E1, got S%dE%d", s.Selection.Season, s.Selection.Episode)
	}
	base := "/api/player/sessions/" + s.ID

	rec := doJSON(t, r, http.MethodPost, base+"/episode", map[string]any{"episode": 8})
	if rec.Code != http.StatusOK {
		t.Fatalf("episode: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/next", nil)
	s = decodeSession(t, rec)
	if s.Selection.Season != 2 || s.Selection.Episode != 1 {
		t.Fatalf("next across season: got S%dE%d", s.Selection.Season, s.Selection.Episode)
	}
	if s.EmbedURL != "https://vidsrc.cc/v2/embed/tv/1399/2/1" {
		t.Fatalf("unexpected embed url %q", s.EmbedURL)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/episode", map[string]any{"episode": 11})
	if rec.Code != http.StatusConflict {
		t.Fatalf("out of range episode: expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/prev", nil)
	s = decodeSession(t, rec)
	if s.Selection.Season != 1 || s.Selection.Episode != 8 {
		t.Fatalf("prev across season: got S%dE%d", s.Selection.Season, s.Selection.Episode)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/season", map[string]any{"season": 2})
	s = decodeSession(t, rec)
	if s.Selection.Season != 2 || s.Selection.Episode != 1 {
		t.Fatalf("season: got S%dE%d", s.Selection.Season, s.Selection.Episode)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/source", map[string]any{"sourceId": "embed-api"})
	s = decodeSession(t, rec)
	if s.EmbedURL != "https://player.embed-api.stream/?id=1399&s=2&e=1" {
		t.Fatalf("unexpected embed url after source switch %q", s.EmbedURL)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/source", map[string]any{"sourceId": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown source: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, base+"/rewind", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown action: expected 404, got %d", rec.Code)
	}
}

func TestPlayerHandler_FilmRejectsEpisodeNavigation(t *testing.T) {
	r, _ := newPlayerRouter(t)

	s := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/player/movie/550/sessions", nil))
	rec := doJSON(t, r, http.MethodPost, "/api/player/sessions/"+s.ID+"/next", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestPlayerHandler_GetAndClose(t *testing.T) {
	r, svc := newPlayerRouter(t)

	s := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/player/movie/550/sessions", nil))
	path := "/api/player/sessions/" + s.ID

	if rec := doJSON(t, r, http.MethodGet, path, nil); rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("close: expected 204, got %d", rec.Code)
	}
	if svc.Count() != 0 {
		t.Fatalf("expected no sessions, got %d", svc.Count())
	}
	if rec := doJSON(t, r, http.MethodGet, path, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after close: expected 404, got %d", rec.Code)
	}
}

func TestPlayerHandler_RejectsUnknownFields(t *testing.T) {
	r, _ := newPlayerRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/player/movie/550/sessions", map[string]any{"bogus": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
